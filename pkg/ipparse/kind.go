// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package ipparse

import (
	"math/big"
	"net"
	"net/netip"

	"lukechampine.com/uint128"

	"github.com/cilium/ipcolumn/pkg/ipcodec"
	"github.com/cilium/ipcolumn/pkg/types"
)

// Kind is the shape of a parser input. Every input is classified exactly
// once and each Kind is handled by a single parsing function.
type Kind int

const (
	// KindUnknown is any input the parser does not accept.
	KindUnknown Kind = iota
	// KindEncoded is a buffer of already encoded pairs.
	KindEncoded
	// KindScalarText is a single address string.
	KindScalarText
	// KindScalarInt is a single integer of any width.
	KindScalarInt
	// KindScalarBytes is a single packed address.
	KindScalarBytes
	// KindScalarAddr is a single native address value.
	KindScalarAddr
	// KindPair is a single pre-encoded (hi, lo) pair.
	KindPair
	// KindBulkInt is a homogeneous slice of machine integers.
	KindBulkInt
	// KindBulkMixed is any other slice, parsed element by element.
	KindBulkMixed
)

func (k Kind) String() string {
	switch k {
	case KindEncoded:
		return "encoded"
	case KindScalarText:
		return "scalar-text"
	case KindScalarInt:
		return "scalar-int"
	case KindScalarBytes:
		return "scalar-bytes"
	case KindScalarAddr:
		return "scalar-addr"
	case KindPair:
		return "pair"
	case KindBulkInt:
		return "bulk-int"
	case KindBulkMixed:
		return "bulk-mixed"
	}
	return "unknown"
}

// IsScalar reports whether k is a single value.
func (k Kind) IsScalar() bool {
	switch k {
	case KindScalarText, KindScalarInt, KindScalarBytes, KindScalarAddr, KindPair:
		return true
	}
	return false
}

// PairSource is implemented by columns which already hold encoded
// addresses. The returned slice is used without copying.
type PairSource interface {
	Pairs() []ipcodec.Pair
}

// Classify returns the Kind of v.
func Classify(v any) Kind {
	switch v.(type) {
	case PairSource, []ipcodec.Pair:
		return KindEncoded
	case string:
		return KindScalarText
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		*big.Int, uint128.Uint128:
		return KindScalarInt
	case []byte, [16]byte, [4]byte, types.IPv6, types.IPv4:
		return KindScalarBytes
	case netip.Addr, net.IP:
		return KindScalarAddr
	case ipcodec.Pair, [2]uint64:
		return KindPair
	case []int, []int8, []int16, []int32, []int64,
		[]uint, []uint16, []uint32, []uint64:
		return KindBulkInt
	case []string, []any, [][]byte, []netip.Addr, []net.IP,
		[]*big.Int, []uint128.Uint128, [][16]byte, []types.IPv6,
		[][4]byte, []types.IPv4, [][2]uint64:
		return KindBulkMixed
	}
	return KindUnknown
}
