// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package types

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// MACAddr is the binary representation of a 48-bit hardware address.
type MACAddr [6]byte

// MACAddrFromUint64 returns the hardware address held in the low 48 bits of v.
func MACAddrFromUint64(v uint64) MACAddr {
	var m MACAddr
	for i := 5; i >= 0; i-- {
		m[i] = byte(v)
		v >>= 8
	}
	return m
}

// ParseMACAddr parses a hardware address written as colon or dash separated
// octets, or as a bare 12 digit hexadecimal string.
func ParseMACAddr(s string) (MACAddr, error) {
	hex := strings.NewReplacer(":", "", "-", "", ".", "").Replace(s)
	if len(hex) == 0 || len(hex) > 12 {
		return MACAddr{}, fmt.Errorf("invalid MAC address %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 64)
	if err != nil {
		return MACAddr{}, fmt.Errorf("invalid MAC address %q: %w", s, err)
	}
	return MACAddrFromUint64(v), nil
}

func (m MACAddr) hardwareAddr() net.HardwareAddr {
	return m[:]
}

// Uint64 returns the address as an integer in the low 48 bits.
func (m MACAddr) Uint64() uint64 {
	var v uint64
	for _, b := range m {
		v = v<<8 | uint64(b)
	}
	return v
}

func (m MACAddr) HardwareAddr() net.HardwareAddr {
	return m.hardwareAddr()
}

func (m MACAddr) String() string {
	return m.hardwareAddr().String()
}

func (m MACAddr) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *MACAddr) UnmarshalText(text []byte) error {
	parsed, err := ParseMACAddr(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
