// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package ipparse

import (
	"fmt"
	"net"
	"net/netip"
	"reflect"

	iradix "github.com/hashicorp/go-immutable-radix/v2"

	"github.com/cilium/ipcolumn/pkg/column"
	"github.com/cilium/ipcolumn/pkg/ipcodec"
)

// Target is a single membership target: either an address or a network.
type Target struct {
	Addr      ipcodec.Pair
	Network   Network
	IsNetwork bool
}

// Targets is a parsed set of membership targets. Addresses are kept in a
// hash set, networks in a radix tree keyed by their prefix bits.
type Targets struct {
	addrs    map[ipcodec.Pair]struct{}
	networks []Network
	txn      *iradix.Txn[Network]
	prefixes *iradix.Tree[Network]
}

func newTargets() *Targets {
	return &Targets{
		addrs: make(map[ipcodec.Pair]struct{}),
		txn:   iradix.New[Network]().Txn(),
	}
}

// NumAddrs returns the number of distinct target addresses.
func (t *Targets) NumAddrs() int {
	return len(t.addrs)
}

// Networks returns the target networks in the order they were given.
func (t *Targets) Networks() []Network {
	return t.networks
}

// Contains reports whether p is one of the addresses or lies in one of the
// networks. The missing value is never a member.
func (t *Targets) Contains(p ipcodec.Pair) bool {
	if p.IsNA() {
		return false
	}
	if _, ok := t.addrs[p]; ok {
		return true
	}
	if t.prefixes == nil || t.prefixes.Len() == 0 {
		return false
	}
	_, _, ok := t.prefixes.Root().LongestPrefix(bitKey(p))
	return ok
}

func (t *Targets) add(tg Target) {
	if !tg.IsNetwork {
		t.addrs[tg.Addr] = struct{}{}
		return
	}
	t.networks = append(t.networks, tg.Network)
	// Networks bounded by the missing value never match anything.
	if tg.Network.Lo.IsNA() || tg.Network.Hi.IsNA() {
		return
	}
	t.txn.Insert(tg.Network.key(), tg.Network)
}

func (t *Targets) commit() *Targets {
	t.prefixes = t.txn.Commit()
	t.txn = nil
	return t
}

// ParseTarget parses v as an address, and failing that as a network.
func ParseTarget(v any) (Target, error) {
	switch v.(type) {
	case Network, netip.Prefix, *net.IPNet:
		n, err := ParseNetwork(v)
		if err != nil {
			return Target{}, err
		}
		return Target{Network: n, IsNetwork: true}, nil
	}
	if Classify(v).IsScalar() {
		if p, err := ParseScalar(v); err == nil {
			return Target{Addr: p}, nil
		}
	}
	if s, ok := v.(string); ok {
		n, err := ParseNetwork(s)
		if err != nil {
			return Target{}, fmt.Errorf("%w: %q is neither an address nor a network", column.ErrValue, s)
		}
		return Target{Network: n, IsNetwork: true}, nil
	}
	return Target{}, fmt.Errorf("%w: %v of type %T is neither an address nor a network", column.ErrValue, v, v)
}

// ParseTargets parses the argument of a membership test. It accepts encoded
// arrays, a single target, or any slice of targets. A string is always a
// single target.
func ParseTargets(v any) (*Targets, error) {
	t := newTargets()

	switch v := v.(type) {
	case PairSource:
		if isNilSource(v) {
			return nil, fmt.Errorf("%w: nil %T target", column.ErrValue, v)
		}
		for _, p := range v.Pairs() {
			t.addrs[p] = struct{}{}
		}
		return t.commit(), nil
	case []ipcodec.Pair:
		for _, p := range v {
			t.addrs[p] = struct{}{}
		}
		return t.commit(), nil
	case []any:
		for i, e := range v {
			tg, err := ParseTarget(e)
			if err != nil {
				return nil, fmt.Errorf("target %d: %w", i, err)
			}
			t.add(tg)
		}
		return t.commit(), nil
	}

	if tg, err := ParseTarget(v); err == nil {
		t.add(tg)
		return t.commit(), nil
	} else if _, ok := v.([]byte); ok {
		return nil, err
	}

	rv := reflect.ValueOf(v)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, fmt.Errorf("%w: %v of type %T is neither an address nor a network", column.ErrValue, v, v)
	}
	for i := 0; i < rv.Len(); i++ {
		tg, err := ParseTarget(rv.Index(i).Interface())
		if err != nil {
			return nil, fmt.Errorf("target %d: %w", i, err)
		}
		t.add(tg)
	}
	return t.commit(), nil
}
