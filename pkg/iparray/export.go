// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package iparray

import (
	"math/big"
	"net/netip"

	"lukechampine.com/uint128"

	"github.com/cilium/ipcolumn/pkg/ipcodec"
)

// ToIntegers returns every entry as an unbounded integer.
func (a *Array) ToIntegers() []*big.Int {
	vals := a.col.Values()
	out := make([]*big.Int, len(vals))
	for i, p := range vals {
		out[i] = p.Big()
	}
	return out
}

func (a *Array) ToUint128s() []uint128.Uint128 {
	vals := a.col.Values()
	out := make([]uint128.Uint128, len(vals))
	for i, p := range vals {
		out[i] = ipcodec.Unpack(p)
	}
	return out
}

// ToAddrs returns every entry as an address. Missing entries become the zero
// netip.Addr.
func (a *Array) ToAddrs() []netip.Addr {
	vals := a.col.Values()
	out := make([]netip.Addr, len(vals))
	for i, p := range vals {
		if !p.IsNA() {
			out[i] = p.Addr()
		}
	}
	return out
}
