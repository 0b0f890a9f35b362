// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package iparray

import (
	"fmt"
	"math"

	"github.com/cilium/ipcolumn/pkg/column"
	"github.com/cilium/ipcolumn/pkg/ipcodec"
	"github.com/cilium/ipcolumn/pkg/ipparse"
)

// Range returns the addresses from start up to but excluding stop, spaced by
// step. start and stop accept any scalar address form. An empty array is
// returned when stop is not after start.
func Range(start, stop any, step uint64) (*Array, error) {
	if step == 0 {
		return nil, fmt.Errorf("%w: step must be positive", column.ErrValue)
	}
	from, err := ipparse.ParseScalar(start)
	if err != nil {
		return nil, err
	}
	to, err := ipparse.ParseScalar(stop)
	if err != nil {
		return nil, err
	}
	if to.Compare(from) <= 0 {
		return FromPairs(nil, false), nil
	}

	lo, hi := ipcodec.Unpack(from), ipcodec.Unpack(to)
	q, r := hi.Sub(lo).QuoRem64(step)
	if r != 0 {
		q = q.Add64(1)
	}
	if q.Hi != 0 || q.Lo > math.MaxInt32 {
		return nil, fmt.Errorf("%w: range of %s addresses is too large", column.ErrRange, q)
	}

	pairs := make([]ipcodec.Pair, q.Lo)
	cur := lo
	for i := range pairs {
		pairs[i] = ipcodec.PackUint128(cur)
		if i < len(pairs)-1 {
			cur = cur.Add64(step)
		}
	}
	return FromPairs(pairs, false), nil
}
