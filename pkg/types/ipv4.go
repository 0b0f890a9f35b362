// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package types

import (
	"encoding/binary"
	"net"
	"net/netip"
)

// IPv4 is the binary representation of a packed IPv4 address.
type IPv4 [4]byte

func (v4 IPv4) IP() net.IP {
	return v4[:]
}

func (v4 IPv4) Addr() netip.Addr {
	return netip.AddrFrom4(v4)
}

// Uint32 returns the address as a host order integer.
func (v4 IPv4) Uint32() uint32 {
	return binary.BigEndian.Uint32(v4[:])
}

func (v4 IPv4) String() string {
	return v4.Addr().String()
}

func (v4 IPv4) MarshalText() ([]byte, error) {
	return []byte(v4.String()), nil
}

func (v4 *IPv4) UnmarshalText(text []byte) error {
	addr, err := netip.ParseAddr(string(text))
	if err != nil {
		return err
	}
	if !addr.Is4() {
		return &net.ParseError{Type: "IPv4 address", Text: string(text)}
	}
	*v4 = addr.As4()
	return nil
}
