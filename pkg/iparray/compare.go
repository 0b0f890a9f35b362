// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package iparray

import (
	"fmt"

	"github.com/cilium/ipcolumn/pkg/column"
)

// Compare applies op elementwise between a and other, which must be an
// *Array. Positions where either side is missing are false for every
// operator, so two missing entries are never equal.
func (a *Array) Compare(op column.Op, other any) ([]bool, error) {
	b, ok := other.(*Array)
	if !ok {
		return nil, fmt.Errorf("%w: cannot compare IPArray with %T", column.ErrType, other)
	}
	return a.col.Compare(op, b.col)
}

func (a *Array) Eq(other *Array) ([]bool, error) { return a.col.Compare(column.OpEq, other.col) }
func (a *Array) Ne(other *Array) ([]bool, error) { return a.col.Compare(column.OpNe, other.col) }
func (a *Array) Lt(other *Array) ([]bool, error) { return a.col.Compare(column.OpLt, other.col) }
func (a *Array) Le(other *Array) ([]bool, error) { return a.col.Compare(column.OpLe, other.col) }
func (a *Array) Gt(other *Array) ([]bool, error) { return a.col.Compare(column.OpGt, other.col) }
func (a *Array) Ge(other *Array) ([]bool, error) { return a.col.Compare(column.OpGe, other.col) }

// Equals reports whether other is an *Array holding exactly the same
// encoded values. Missing entries match missing entries.
func (a *Array) Equals(other any) (bool, error) {
	b, ok := other.(*Array)
	if !ok {
		return false, fmt.Errorf("%w: cannot compare IPArray with %T", column.ErrType, other)
	}
	return a.col.Equals(b.col), nil
}

// Argsort returns the positions which would sort the array in unsigned
// order. Missing entries sort first.
func (a *Array) Argsort() []int {
	return a.col.Argsort()
}

// Sorted returns a sorted copy of a.
func (a *Array) Sorted() *Array {
	col, _ := a.col.Take(a.col.Argsort(), false, Strategy.NA())
	return wrap(col)
}
