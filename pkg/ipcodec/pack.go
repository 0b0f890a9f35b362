// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package ipcodec

import (
	"fmt"
	"math/big"

	"lukechampine.com/uint128"

	"github.com/cilium/ipcolumn/pkg/column"
)

// Pack splits a 128-bit unsigned integer into its words.
func Pack(v *big.Int) (Pair, error) {
	if v == nil || v.Sign() < 0 || v.BitLen() > 128 {
		return Pair{}, fmt.Errorf("%w: %v", column.ErrRange, v)
	}
	return PackUint128(uint128.FromBig(v)), nil
}

// PackUint128 splits u into its words.
func PackUint128(u uint128.Uint128) Pair {
	return Pair{Hi: u.Hi, Lo: u.Lo}
}

// PackInt64 encodes a machine integer.
func PackInt64(v int64) (Pair, error) {
	if v < 0 {
		return Pair{}, fmt.Errorf("%w: %d", column.ErrRange, v)
	}
	return Pair{Lo: uint64(v)}, nil
}

// Unpack joins the words of p into one 128-bit integer.
func Unpack(p Pair) uint128.Uint128 {
	return uint128.New(p.Lo, p.Hi)
}

// Big returns p as an unbounded integer.
func (p Pair) Big() *big.Int {
	return Unpack(p).Big()
}
