// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package iparray

import (
	"github.com/sirupsen/logrus"

	"github.com/cilium/ipcolumn/pkg/column"
	"github.com/cilium/ipcolumn/pkg/ipcodec"
	"github.com/cilium/ipcolumn/pkg/ipparse"
	"github.com/cilium/ipcolumn/pkg/logging"
	"github.com/cilium/ipcolumn/pkg/logging/logfields"
)

// Take gathers the entries at indices into a new array. With allowFill, -1
// yields fillValue (missing when nil) and any smaller index is an error.
// Without it, negative indices count from the end.
func (a *Array) Take(indices []int, allowFill bool, fillValue any) (*Array, error) {
	fill := ipcodec.NA
	if allowFill && fillValue != nil {
		p, err := ipparse.ParseScalar(fillValue)
		if err != nil {
			return nil, err
		}
		fill = p
	}
	col, err := a.col.Take(indices, allowFill, fill)
	if err != nil {
		return nil, err
	}
	return wrap(col), nil
}

// Concat returns a new array holding the entries of arrays in order.
func Concat(arrays ...*Array) *Array {
	cols := make([]*column.Column[ipcodec.Pair], len(arrays))
	for i, arr := range arrays {
		cols[i] = arr.col
	}
	return wrap(column.Concat(Strategy, cols...))
}

// Unique returns the distinct entries in order of first appearance.
func (a *Array) Unique() *Array {
	return wrap(a.col.Unique())
}

// Factorize labels every entry with the position of its value in uniques.
// Missing entries are labelled naSentinel and excluded from uniques; all
// other labels are contiguous from 0 in order of first appearance.
func (a *Array) Factorize(naSentinel int) ([]int, *Array) {
	labels, uniques := a.col.FactorizeNA(naSentinel)
	return labels, wrap(uniques)
}

// IsIn reports per entry whether it equals one of the target addresses or
// lies in one of the target networks. targets may be an *Array, a single
// address or network, or a sequence of them. Missing entries are never
// members.
func (a *Array) IsIn(targets any) ([]bool, error) {
	t, err := ipparse.ParseTargets(targets)
	if err != nil {
		return nil, err
	}

	if logging.CanLogAt(log.Logger, logrus.DebugLevel) {
		log.WithFields(logrus.Fields{
			logfields.Length:   a.Len(),
			logfields.Targets:  t.NumAddrs(),
			logfields.Networks: len(t.Networks()),
		}).Debug("Evaluating membership")
	}

	return a.mask(t.Contains), nil
}
