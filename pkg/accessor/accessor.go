// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

// Package accessor projects address column operations onto row labels.
package accessor

import (
	"fmt"
	"math/big"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/cilium/ipcolumn/pkg/column"
	"github.com/cilium/ipcolumn/pkg/iparray"
	"github.com/cilium/ipcolumn/pkg/logging"
	"github.com/cilium/ipcolumn/pkg/logging/logfields"
	"github.com/cilium/ipcolumn/pkg/option"
)

var log = logging.DefaultLogger.WithField(logfields.LogSubsys, "accessor")

// Series is a row-labeled result.
type Series[L, V any] struct {
	Index  []L
	Name   string
	Values []V
}

// Len returns the number of rows.
func (s Series[L, V]) Len() int {
	return len(s.Values)
}

// Factory builds accessors sharing one configuration.
type Factory struct {
	cfg *option.ColumnConfig
}

// NewFactory returns a factory using cfg, or option.Config when cfg is nil.
func NewFactory(cfg *option.ColumnConfig) *Factory {
	if cfg == nil {
		cfg = option.Config
	}
	return &Factory{cfg: cfg}
}

// Accessor is a read-only row-labeled view of an address column.
type Accessor[L any] struct {
	arr        *iparray.Array
	index      []L
	name       string
	naSentinel int
}

// New returns an accessor over values, which must be an *iparray.Array with
// one element per label.
func New[L any](f *Factory, values any, labels []L, name string) (*Accessor[L], error) {
	arr, ok := values.(*iparray.Array)
	if !ok {
		return nil, fmt.Errorf("%w: accessor requires an IPArray column, got %T", column.ErrAttribute, values)
	}
	if len(labels) != arr.Len() {
		return nil, fmt.Errorf("%w: %d labels for %d values", column.ErrValue, len(labels), arr.Len())
	}

	log.WithFields(logrus.Fields{
		logfields.Name:       name,
		logfields.Length:     arr.Len(),
		logfields.NASentinel: f.cfg.FactorizeNASentinel,
	}).Debug("Created accessor")

	return &Accessor[L]{
		arr:        arr,
		index:      labels,
		name:       name,
		naSentinel: f.cfg.FactorizeNASentinel,
	}, nil
}

func series[L, V any](a *Accessor[L], vals []V) Series[L, V] {
	return Series[L, V]{
		Index:  slices.Clone(a.index),
		Name:   a.name,
		Values: vals,
	}
}

// Name returns the name copied to every result.
func (a *Accessor[L]) Name() string {
	return a.name
}

func (a *Accessor[L]) IsIPv4() Series[L, bool] { return series(a, a.arr.IsIPv4()) }

func (a *Accessor[L]) IsIPv6() Series[L, bool] { return series(a, a.arr.IsIPv6()) }

func (a *Accessor[L]) Version() Series[L, int] { return series(a, a.arr.Version()) }

func (a *Accessor[L]) IsMulticast() Series[L, bool] { return series(a, a.arr.IsMulticast()) }

func (a *Accessor[L]) IsPrivate() Series[L, bool] { return series(a, a.arr.IsPrivate()) }

func (a *Accessor[L]) IsGlobal() Series[L, bool] { return series(a, a.arr.IsGlobal()) }

func (a *Accessor[L]) IsUnspecified() Series[L, bool] { return series(a, a.arr.IsUnspecified()) }

func (a *Accessor[L]) IsReserved() Series[L, bool] { return series(a, a.arr.IsReserved()) }

func (a *Accessor[L]) IsLoopback() Series[L, bool] { return series(a, a.arr.IsLoopback()) }

func (a *Accessor[L]) IsLinkLocal() Series[L, bool] { return series(a, a.arr.IsLinkLocal()) }

func (a *Accessor[L]) IsNA() Series[L, bool] { return series(a, a.arr.IsNA()) }

func (a *Accessor[L]) ToIntegers() Series[L, *big.Int] { return series(a, a.arr.ToIntegers()) }

// IsIn reports per row whether the address is one of targets, see
// iparray.Array.IsIn.
func (a *Accessor[L]) IsIn(targets any) (Series[L, bool], error) {
	mask, err := a.arr.IsIn(targets)
	if err != nil {
		return Series[L, bool]{}, err
	}
	return series(a, mask), nil
}

// Factorize labels every row with the configured sentinel for missing
// addresses.
func (a *Accessor[L]) Factorize() (Series[L, int], *iparray.Array) {
	labels, uniques := a.arr.Factorize(a.naSentinel)
	return series(a, labels), uniques
}
