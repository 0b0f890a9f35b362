// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package column

import (
	"fmt"
	"slices"
	"strings"
)

// Column is an ordered, fixed-length sequence of values stored contiguously.
// A Column is not safe for concurrent mutation.
type Column[T comparable] struct {
	strategy Strategy[T]
	data     []T
}

// New returns a column adopting data. The column aliases data, callers
// wanting an independent column must copy it first.
func New[T comparable](s Strategy[T], data []T) *Column[T] {
	if data == nil {
		data = []T{}
	}
	return &Column[T]{strategy: s, data: data}
}

// Strategy returns the element strategy of the column.
func (c *Column[T]) Strategy() Strategy[T] {
	return c.strategy
}

// Len returns the number of elements.
func (c *Column[T]) Len() int {
	return len(c.data)
}

// NBytes returns the serialized size of the column.
func (c *Column[T]) NBytes() int {
	return len(c.data) * c.strategy.Width()
}

// Values returns the backing slice. Writes to it are visible in the column.
func (c *Column[T]) Values() []T {
	return c.data
}

func (c *Column[T]) checkIndex(i int) error {
	if i < 0 || i >= len(c.data) {
		return fmt.Errorf("%w: %d for length %d", ErrIndex, i, len(c.data))
	}
	return nil
}

func (c *Column[T]) checkRange(start, stop int) error {
	if start < 0 || stop > len(c.data) || start > stop {
		return fmt.Errorf("%w: [%d:%d] for length %d", ErrIndex, start, stop, len(c.data))
	}
	return nil
}

// At returns the element at position i.
func (c *Column[T]) At(i int) (T, error) {
	if err := c.checkIndex(i); err != nil {
		var zero T
		return zero, err
	}
	return c.data[i], nil
}

// Slice returns a view of the elements in [start, stop). The view shares
// storage with c, so later writes to either are visible in both.
func (c *Column[T]) Slice(start, stop int) (*Column[T], error) {
	if err := c.checkRange(start, stop); err != nil {
		return nil, err
	}
	return &Column[T]{strategy: c.strategy, data: c.data[start:stop:stop]}, nil
}

// Copy returns an independent copy of c.
func (c *Column[T]) Copy() *Column[T] {
	return New(c.strategy, slices.Clone(c.data))
}

// Set assigns v to position i.
func (c *Column[T]) Set(i int, v T) error {
	if err := c.checkIndex(i); err != nil {
		return err
	}
	c.data[i] = v
	return nil
}

// SetRange assigns vals to the positions [start, stop). A single value is
// assigned to every position, otherwise len(vals) must equal stop-start.
func (c *Column[T]) SetRange(start, stop int, vals []T) error {
	if err := c.checkRange(start, stop); err != nil {
		return err
	}
	switch len(vals) {
	case 1:
		for i := start; i < stop; i++ {
			c.data[i] = vals[0]
		}
	case stop - start:
		copy(c.data[start:stop], vals)
	default:
		return fmt.Errorf("%w: cannot assign %d values to %d positions", ErrValue, len(vals), stop-start)
	}
	return nil
}

// IsNA returns a mask which is true where the element is missing.
func (c *Column[T]) IsNA() []bool {
	mask := make([]bool, len(c.data))
	for i, v := range c.data {
		mask[i] = c.strategy.IsNA(v)
	}
	return mask
}

// Compare applies op elementwise between c and other. A position where either
// side is missing is always false, whatever the operator. A column of length
// one is broadcast against the other operand.
func (c *Column[T]) Compare(op Op, other *Column[T]) ([]bool, error) {
	n, m := len(c.data), len(other.data)
	size := n
	switch {
	case n == m:
	case m == 1:
	case n == 1:
		size = m
	default:
		return nil, fmt.Errorf("%w: operands of length %d and %d cannot be compared", ErrValue, n, m)
	}

	mask := make([]bool, size)
	for i := range mask {
		a := c.data[0]
		if n > 1 {
			a = c.data[i]
		}
		b := other.data[0]
		if m > 1 {
			b = other.data[i]
		}
		mask[i] = c.cmp(op, a, b)
	}
	return mask, nil
}

// CompareValue applies op between every element and v.
func (c *Column[T]) CompareValue(op Op, v T) []bool {
	mask := make([]bool, len(c.data))
	for i, a := range c.data {
		mask[i] = c.cmp(op, a, v)
	}
	return mask
}

func (c *Column[T]) cmp(op Op, a, b T) bool {
	if c.strategy.IsNA(a) || c.strategy.IsNA(b) {
		return false
	}
	return op.eval(c.strategy.Compare(a, b))
}

// Equals reports whether c and other hold the same elements in the same
// order. Unlike Compare, missing values in the same position are equal.
func (c *Column[T]) Equals(other *Column[T]) bool {
	return slices.Equal(c.data, other.data)
}

// Take gathers the elements at indices into a new column. When allowFill is
// set, index -1 yields fill and any other negative index is an error.
// Otherwise negative indices count from the end.
func (c *Column[T]) Take(indices []int, allowFill bool, fill T) (*Column[T], error) {
	n := len(c.data)
	out := make([]T, len(indices))
	for i, idx := range indices {
		switch {
		case allowFill && idx == -1:
			out[i] = fill
			continue
		case allowFill && idx < -1:
			return nil, fmt.Errorf("%w: %d, indices must be >= -1 when filling", ErrIndex, idx)
		case idx < 0:
			idx += n
		}
		if idx < 0 || idx >= n {
			return nil, fmt.Errorf("%w: %d for length %d", ErrIndex, indices[i], n)
		}
		out[i] = c.data[idx]
	}
	return New(c.strategy, out), nil
}

// Concat returns a new column holding the elements of cols in order.
func Concat[T comparable](s Strategy[T], cols ...*Column[T]) *Column[T] {
	size := 0
	for _, col := range cols {
		size += len(col.data)
	}
	out := make([]T, 0, size)
	for _, col := range cols {
		out = append(out, col.data...)
	}
	return New(s, out)
}

// Unique returns the distinct elements in order of first appearance.
func (c *Column[T]) Unique() *Column[T] {
	seen := make(map[T]struct{}, len(c.data))
	out := make([]T, 0)
	for _, v := range c.data {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return New(c.strategy, out)
}

// Factorize labels every element with the position of its value in the
// returned uniques. Labels are assigned in order of first appearance; the
// missing value is treated like any other value.
func (c *Column[T]) Factorize() ([]int, *Column[T]) {
	index := make(map[T]int, len(c.data))
	labels := make([]int, len(c.data))
	uniques := make([]T, 0)
	for i, v := range c.data {
		label, ok := index[v]
		if !ok {
			label = len(uniques)
			index[v] = label
			uniques = append(uniques, v)
		}
		labels[i] = label
	}
	return labels, New(c.strategy, uniques)
}

// FactorizeNA is like Factorize but labels missing elements naSentinel and
// leaves them out of uniques. The structural labels are remapped: the label
// of the missing value becomes naSentinel and every larger label moves down
// by one, so the remaining labels stay contiguous from 0.
func (c *Column[T]) FactorizeNA(naSentinel int) ([]int, *Column[T]) {
	labels, uniques := c.Factorize()

	na := slices.IndexFunc(uniques.data, c.strategy.IsNA)
	if na < 0 {
		return labels, uniques
	}
	for i, l := range labels {
		switch {
		case l == na:
			labels[i] = naSentinel
		case l > na:
			labels[i] = l - 1
		}
	}
	uniques.data = slices.Delete(uniques.data, na, na+1)
	return labels, uniques
}

// Argsort returns the positions which would sort the column. The sort is
// stable and uses the strategy ordering for every element, missing included.
func (c *Column[T]) Argsort() []int {
	idx := make([]int, len(c.data))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		return c.strategy.Compare(c.data[a], c.data[b])
	})
	return idx
}

// Bytes serializes the column as concatenated fixed-width records.
func (c *Column[T]) Bytes() []byte {
	w := c.strategy.Width()
	buf := make([]byte, len(c.data)*w)
	for i, v := range c.data {
		c.strategy.Put(buf[i*w:(i+1)*w], v)
	}
	return buf
}

// FromBytes decodes a buffer of concatenated fixed-width records.
func FromBytes[T comparable](s Strategy[T], buf []byte) (*Column[T], error) {
	w := s.Width()
	if len(buf)%w != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a multiple of %d", ErrFormat, len(buf), w)
	}
	out := make([]T, len(buf)/w)
	for i := range out {
		out[i] = s.Get(buf[i*w : (i+1)*w])
	}
	return New(s, out), nil
}

// Strings returns the text of every element.
func (c *Column[T]) Strings() []string {
	out := make([]string, len(c.data))
	for i, v := range c.data {
		out[i] = c.strategy.Format(v)
	}
	return out
}

// String returns the representation of the column, e.g.
// IPArray(['192.168.1.1', 'NA']).
func (c *Column[T]) String() string {
	var b strings.Builder
	b.WriteString(c.strategy.Name())
	b.WriteString("([")
	for i, v := range c.data {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('\'')
		b.WriteString(c.strategy.Format(v))
		b.WriteByte('\'')
	}
	b.WriteString("])")
	return b.String()
}
