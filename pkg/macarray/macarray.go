// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

// Package macarray implements a column of 48-bit hardware addresses. The
// all-zero address is the missing value.
package macarray

import (
	"cmp"
	"fmt"
	"net"

	"github.com/cilium/ipcolumn/pkg/column"
	"github.com/cilium/ipcolumn/pkg/types"
)

const (
	// RecordSize is the size in bytes of one serialized address.
	RecordSize = 6

	maxMAC = 1<<48 - 1
)

// Strategy is the element strategy of hardware address columns.
var Strategy column.Strategy[uint64] = macStrategy{}

type macStrategy struct{}

func (macStrategy) Name() string            { return "MACArray" }
func (macStrategy) Width() int              { return RecordSize }
func (macStrategy) NA() uint64              { return 0 }
func (macStrategy) IsNA(v uint64) bool      { return v == 0 }
func (macStrategy) Compare(a, b uint64) int { return cmp.Compare(a, b) }

func (macStrategy) Format(v uint64) string {
	if v == 0 {
		return "NA"
	}
	return types.MACAddrFromUint64(v).String()
}

func (macStrategy) Put(buf []byte, v uint64) {
	m := types.MACAddrFromUint64(v)
	copy(buf, m[:])
}

func (macStrategy) Get(buf []byte) uint64 {
	var m types.MACAddr
	copy(m[:], buf)
	return m.Uint64()
}

// Array is a fixed-length column of hardware addresses.
type Array struct {
	col *column.Column[uint64]
}

func wrap(col *column.Column[uint64]) *Array {
	return &Array{col: col}
}

// New parses values, a single address or a slice of addresses, into an
// array. Addresses may be text, integers, net.HardwareAddr or
// types.MACAddr.
func New(values any) (*Array, error) {
	var (
		vals []uint64
		err  error
	)
	switch v := values.(type) {
	case []uint64:
		vals, err = each(v)
	case []string:
		vals, err = each(v)
	case []int:
		vals, err = each(v)
	case []net.HardwareAddr:
		vals, err = each(v)
	case []types.MACAddr:
		vals, err = each(v)
	case []any:
		vals, err = each(v)
	default:
		var x uint64
		x, err = parse(values)
		vals = []uint64{x}
	}
	if err != nil {
		return nil, err
	}
	return wrap(column.New(Strategy, vals)), nil
}

func each[E any](in []E) ([]uint64, error) {
	out := make([]uint64, len(in))
	for i, v := range in {
		x, err := parse(v)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = x
	}
	return out, nil
}

func parse(v any) (uint64, error) {
	switch v := v.(type) {
	case string:
		m, err := types.ParseMACAddr(v)
		if err != nil {
			return 0, fmt.Errorf("%w: %w", column.ErrParse, err)
		}
		return m.Uint64(), nil
	case int:
		if v < 0 || uint64(v) > maxMAC {
			return 0, fmt.Errorf("%w: %d is not a 48-bit address", column.ErrRange, v)
		}
		return uint64(v), nil
	case uint64:
		if v > maxMAC {
			return 0, fmt.Errorf("%w: %d is not a 48-bit address", column.ErrRange, v)
		}
		return v, nil
	case net.HardwareAddr:
		if len(v) != RecordSize {
			return 0, fmt.Errorf("%w: %v is not a 48-bit address", column.ErrParse, v)
		}
		var m types.MACAddr
		copy(m[:], v)
		return m.Uint64(), nil
	case types.MACAddr:
		return v.Uint64(), nil
	}
	return 0, fmt.Errorf("%w: unsupported value %v of type %T", column.ErrParse, v, v)
}

// FromBytes decodes concatenated 6 byte records.
func FromBytes(buf []byte) (*Array, error) {
	col, err := column.FromBytes(Strategy, buf)
	if err != nil {
		return nil, err
	}
	return wrap(col), nil
}

func (a *Array) Len() int { return a.col.Len() }

// Values returns the backing buffer of addresses in the low 48 bits.
func (a *Array) Values() []uint64 { return a.col.Values() }

func (a *Array) Get(i int) (uint64, error) { return a.col.At(i) }

// Set parses value and stores it at position i.
func (a *Array) Set(i int, value any) error {
	v, err := parse(value)
	if err != nil {
		return err
	}
	return a.col.Set(i, v)
}

func (a *Array) Copy() *Array { return wrap(a.col.Copy()) }

func (a *Array) IsNA() []bool { return a.col.IsNA() }

// Take gathers the entries at indices. With allowFill, -1 yields fillValue,
// or a missing entry when fillValue is nil.
func (a *Array) Take(indices []int, allowFill bool, fillValue any) (*Array, error) {
	var fill uint64
	if fillValue != nil {
		v, err := parse(fillValue)
		if err != nil {
			return nil, err
		}
		fill = v
	}
	col, err := a.col.Take(indices, allowFill, fill)
	if err != nil {
		return nil, err
	}
	return wrap(col), nil
}

// Concat returns a new array holding the entries of arrays in order.
func Concat(arrays ...*Array) *Array {
	cols := make([]*column.Column[uint64], len(arrays))
	for i, arr := range arrays {
		cols[i] = arr.col
	}
	return wrap(column.Concat(Strategy, cols...))
}

func (a *Array) Unique() *Array { return wrap(a.col.Unique()) }

// Factorize labels missing entries with naSentinel and excludes them from
// uniques.
func (a *Array) Factorize(naSentinel int) ([]int, *Array) {
	labels, uniques := a.col.FactorizeNA(naSentinel)
	return labels, wrap(uniques)
}

// Equals reports whether other is an *Array with identical entries.
func (a *Array) Equals(other any) (bool, error) {
	b, ok := other.(*Array)
	if !ok {
		return false, fmt.Errorf("%w: cannot compare MACArray with %T", column.ErrType, other)
	}
	return a.col.Equals(b.col), nil
}

func (a *Array) Eq(other *Array) ([]bool, error) { return a.col.Compare(column.OpEq, other.col) }
func (a *Array) Ne(other *Array) ([]bool, error) { return a.col.Compare(column.OpNe, other.col) }
func (a *Array) Lt(other *Array) ([]bool, error) { return a.col.Compare(column.OpLt, other.col) }
func (a *Array) Le(other *Array) ([]bool, error) { return a.col.Compare(column.OpLe, other.col) }
func (a *Array) Gt(other *Array) ([]bool, error) { return a.col.Compare(column.OpGt, other.col) }
func (a *Array) Ge(other *Array) ([]bool, error) { return a.col.Compare(column.OpGe, other.col) }

// ToHardwareAddrs returns every entry as a net.HardwareAddr. Missing entries
// are nil.
func (a *Array) ToHardwareAddrs() []net.HardwareAddr {
	vals := a.col.Values()
	out := make([]net.HardwareAddr, len(vals))
	for i, v := range vals {
		if v != 0 {
			out[i] = types.MACAddrFromUint64(v).HardwareAddr()
		}
	}
	return out
}

func (a *Array) Packed() []byte { return a.col.Bytes() }

func (a *Array) Strings() []string { return a.col.Strings() }

func (a *Array) String() string { return a.col.String() }
