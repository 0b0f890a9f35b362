// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package ipcodec

import "github.com/cilium/ipcolumn/pkg/types"

// ToBytes returns the big-endian record of p, eight bytes of Hi followed by
// eight bytes of Lo.
func ToBytes(p Pair) types.IPv6 {
	return types.IPv6FromWords(p.Hi, p.Lo)
}

// FromBytes decodes a big-endian record.
func FromBytes(b types.IPv6) Pair {
	hi, lo := b.Words()
	return Pair{Hi: hi, Lo: lo}
}
