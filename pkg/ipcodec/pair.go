// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package ipcodec

import (
	"math"
	"net/netip"

	"github.com/cilium/ipcolumn/pkg/types"
)

const (
	// RecordSize is the size in bytes of one encoded address.
	RecordSize = 16

	// IPv4Max is the largest value of Lo for which an address with Hi == 0
	// is an IPv4 address.
	IPv4Max = math.MaxUint32
)

// Pair is the two word encoding of a 128-bit address, Hi*2^64 + Lo.
type Pair struct {
	Hi uint64
	Lo uint64
}

// NA is the reserved encoding of a missing value.
var NA = Pair{}

// IsNA reports whether p is the missing value encoding.
func (p Pair) IsNA() bool {
	return p.Hi|p.Lo == 0
}

// IsIPv4 reports whether p fits in the IPv4 address space.
func (p Pair) IsIPv4() bool {
	return p.Hi == 0 && p.Lo <= IPv4Max
}

// Version returns 4 for addresses in the IPv4 space and 6 otherwise.
func (p Pair) Version() int {
	if p.IsIPv4() {
		return 4
	}
	return 6
}

// Compare returns -1, 0 or +1 comparing p and q as unsigned 128-bit
// integers.
func (p Pair) Compare(q Pair) int {
	switch {
	case p.Hi < q.Hi:
		return -1
	case p.Hi > q.Hi:
		return 1
	case p.Lo < q.Lo:
		return -1
	case p.Lo > q.Lo:
		return 1
	}
	return 0
}

// Less reports whether p orders before q.
func (p Pair) Less(q Pair) bool {
	return p.Hi < q.Hi || (p.Hi == q.Hi && p.Lo < q.Lo)
}

// Addr returns p as an address. Values in the IPv4 space become 4 byte
// addresses, everything else a 16 byte address.
func (p Pair) Addr() netip.Addr {
	if p.IsIPv4() {
		v := uint32(p.Lo)
		return netip.AddrFrom4([4]byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)})
	}
	return netip.AddrFrom16(ToBytes(p))
}

// String implements fmt.Stringer, see Format.
func (p Pair) String() string {
	return Format(p)
}

// FromAddr encodes an address. IPv4 addresses occupy the low 32 bits,
// IPv6 addresses, including IPv4-mapped ones, use all 128 bits. Zones are
// dropped.
func FromAddr(addr netip.Addr) Pair {
	if addr.Is4() {
		return Pair{Lo: uint64(types.IPv4(addr.As4()).Uint32())}
	}
	return FromBytes(addr.As16())
}
