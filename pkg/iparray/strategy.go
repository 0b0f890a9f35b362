// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package iparray

import (
	"github.com/cilium/ipcolumn/pkg/column"
	"github.com/cilium/ipcolumn/pkg/ipcodec"
	"github.com/cilium/ipcolumn/pkg/types"
)

// Strategy is the element strategy of address columns.
var Strategy column.Strategy[ipcodec.Pair] = pairStrategy{}

type pairStrategy struct{}

func (pairStrategy) Name() string { return "IPArray" }

func (pairStrategy) Width() int { return ipcodec.RecordSize }

func (pairStrategy) NA() ipcodec.Pair { return ipcodec.NA }

func (pairStrategy) IsNA(p ipcodec.Pair) bool { return p.IsNA() }

func (pairStrategy) Compare(a, b ipcodec.Pair) int { return a.Compare(b) }

func (pairStrategy) Format(p ipcodec.Pair) string { return ipcodec.Format(p) }

func (pairStrategy) Put(buf []byte, p ipcodec.Pair) {
	rec := ipcodec.ToBytes(p)
	copy(buf, rec[:])
}

func (pairStrategy) Get(buf []byte) ipcodec.Pair {
	var rec types.IPv6
	copy(rec[:], buf)
	return ipcodec.FromBytes(rec)
}
