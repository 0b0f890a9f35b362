// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package iparray

import (
	"fmt"
	"math/big"
	"net/netip"

	"github.com/cilium/ipcolumn/pkg/column"
	"github.com/cilium/ipcolumn/pkg/ipcodec"
	"github.com/cilium/ipcolumn/pkg/ipparse"
	"github.com/cilium/ipcolumn/pkg/logging"
	"github.com/cilium/ipcolumn/pkg/logging/logfields"
)

var log = logging.DefaultLogger.WithField(logfields.LogSubsys, "iparray")

// Array is a fixed-length column of 128-bit addresses. The all-zero address
// doubles as the missing value, so a real 0.0.0.0 or :: cannot be told apart
// from a missing entry.
type Array struct {
	col *column.Column[ipcodec.Pair]
}

// New parses values into an array. Encoded inputs, including another
// *Array, are adopted without copying.
func New(values any) (*Array, error) {
	pairs, err := ipparse.Parse(values)
	if err != nil {
		return nil, err
	}
	return FromPairs(pairs, false), nil
}

// MustNew is like New but panics on error. It is meant for tests and
// package level variables.
func MustNew(values any) *Array {
	a, err := New(values)
	if err != nil {
		panic(err)
	}
	return a
}

// FromPairs returns an array over pairs. Unless clone is set the array
// aliases pairs.
func FromPairs(pairs []ipcodec.Pair, clone bool) *Array {
	col := column.New(Strategy, pairs)
	if clone {
		col = col.Copy()
	}
	return &Array{col: col}
}

// FromIntegers encodes unbounded integers.
func FromIntegers(vals []*big.Int) (*Array, error) {
	pairs := make([]ipcodec.Pair, len(vals))
	for i, v := range vals {
		p, err := ipcodec.Pack(v)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		pairs[i] = p
	}
	return FromPairs(pairs, false), nil
}

// FromBytes decodes concatenated 16 byte big-endian records. The result never
// aliases buf.
func FromBytes(buf []byte) (*Array, error) {
	col, err := column.FromBytes(Strategy, buf)
	if err != nil {
		return nil, err
	}
	return &Array{col: col}, nil
}

func wrap(col *column.Column[ipcodec.Pair]) *Array {
	return &Array{col: col}
}

// Pairs returns the backing encoded buffer.
func (a *Array) Pairs() []ipcodec.Pair {
	return a.col.Values()
}

func (a *Array) Len() int {
	return a.col.Len()
}

// NBytes returns the size of the serialized array.
func (a *Array) NBytes() int {
	return a.col.NBytes()
}

// Get returns the encoded address at position i.
func (a *Array) Get(i int) (ipcodec.Pair, error) {
	return a.col.At(i)
}

// Addr returns the address at position i. A missing entry yields the zero
// netip.Addr.
func (a *Array) Addr(i int) (netip.Addr, error) {
	p, err := a.col.At(i)
	if err != nil || p.IsNA() {
		return netip.Addr{}, err
	}
	return p.Addr(), nil
}

// Slice returns a view of [start, stop) sharing storage with a.
func (a *Array) Slice(start, stop int) (*Array, error) {
	col, err := a.col.Slice(start, stop)
	if err != nil {
		return nil, err
	}
	return wrap(col), nil
}

func (a *Array) Copy() *Array {
	return wrap(a.col.Copy())
}

// Set parses value and stores it at position i.
func (a *Array) Set(i int, value any) error {
	p, err := ipparse.ParseScalar(value)
	if err != nil {
		return err
	}
	return a.col.Set(i, p)
}

// SetRange parses value and stores it in [start, stop). A single value is
// assigned to every position.
func (a *Array) SetRange(start, stop int, value any) error {
	pairs, err := ipparse.Parse(value)
	if err != nil {
		return err
	}
	return a.col.SetRange(start, stop, pairs)
}

// IsNA returns a mask which is true where the entry is missing.
func (a *Array) IsNA() []bool {
	return a.col.IsNA()
}

// Packed serializes the array as concatenated 16 byte big-endian records.
func (a *Array) Packed() []byte {
	return a.col.Bytes()
}

// ToBytes is an alias of Packed.
func (a *Array) ToBytes() []byte {
	return a.Packed()
}

func (a *Array) Strings() []string {
	return a.col.Strings()
}

func (a *Array) String() string {
	return a.col.String()
}
