// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package types

import (
	"encoding/binary"
	"net"
	"net/netip"
)

// IPv6 is the binary representation for encoding in binary structs. It is
// also the 16 byte record used to serialize a single 128-bit address, most
// significant byte first.
type IPv6 [16]byte

// IPv6FromWords builds the big-endian record for the given high and low
// 64-bit halves.
func IPv6FromWords(hi, lo uint64) IPv6 {
	var v6 IPv6
	binary.BigEndian.PutUint64(v6[:8], hi)
	binary.BigEndian.PutUint64(v6[8:], lo)
	return v6
}

// Words returns the high and low 64-bit halves of the record.
func (v6 IPv6) Words() (hi, lo uint64) {
	return binary.BigEndian.Uint64(v6[:8]), binary.BigEndian.Uint64(v6[8:])
}

func (v6 IPv6) IP() net.IP {
	return v6[:]
}

func (v6 IPv6) Addr() netip.Addr {
	return netip.AddrFrom16(v6)
}

func (v6 IPv6) String() string {
	return v6.Addr().String()
}

func (v6 IPv6) MarshalText() ([]byte, error) {
	return []byte(v6.String()), nil
}

func (v6 *IPv6) UnmarshalText(text []byte) error {
	addr, err := netip.ParseAddr(string(text))
	if err != nil {
		return err
	}
	*v6 = addr.As16()
	return nil
}
