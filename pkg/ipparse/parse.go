// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package ipparse

import (
	"fmt"
	"math/big"
	"net"
	"net/netip"
	"reflect"

	"github.com/sirupsen/logrus"
	"go4.org/netipx"
	"golang.org/x/exp/constraints"
	"lukechampine.com/uint128"

	"github.com/cilium/ipcolumn/pkg/column"
	"github.com/cilium/ipcolumn/pkg/ipcodec"
	"github.com/cilium/ipcolumn/pkg/logging"
	"github.com/cilium/ipcolumn/pkg/logging/logfields"
	"github.com/cilium/ipcolumn/pkg/types"
)

var log = logging.DefaultLogger.WithField(logfields.LogSubsys, "ipparse")

// Parse converts values into encoded addresses. Accepted inputs are a
// PairSource or []ipcodec.Pair (returned as is), a single scalar, a slice of
// machine integers (each taken as the low 64 bits of an address) or a slice
// of scalars. A single failing element fails the whole parse.
func Parse(values any) ([]ipcodec.Pair, error) {
	kind := Classify(values)
	switch kind {
	case KindEncoded:
		if src, ok := values.(PairSource); ok && isNilSource(src) {
			return nil, fmt.Errorf("%w: nil %T", column.ErrParse, values)
		}
		return encoded(values), nil
	case KindScalarText, KindScalarInt, KindScalarBytes, KindScalarAddr, KindPair:
		p, err := ParseScalar(values)
		if err != nil {
			return nil, err
		}
		return []ipcodec.Pair{p}, nil
	case KindBulkInt:
		return parseBulkInt(values)
	case KindBulkMixed:
		return parseBulkMixed(values)
	}
	return nil, fmt.Errorf("%w: unsupported input of type %T", column.ErrParse, values)
}

// isNilSource reports whether src is a nil pointer hiding behind the
// interface.
func isNilSource(src PairSource) bool {
	rv := reflect.ValueOf(src)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

func encoded(values any) []ipcodec.Pair {
	switch v := values.(type) {
	case PairSource:
		return v.Pairs()
	case []ipcodec.Pair:
		return v
	}
	return nil
}

// ParseScalar converts a single scalar into its encoding.
func ParseScalar(v any) (ipcodec.Pair, error) {
	switch v := v.(type) {
	case string:
		return ParseText(v)
	case int:
		return ipcodec.PackInt64(int64(v))
	case int8:
		return ipcodec.PackInt64(int64(v))
	case int16:
		return ipcodec.PackInt64(int64(v))
	case int32:
		return ipcodec.PackInt64(int64(v))
	case int64:
		return ipcodec.PackInt64(v)
	case uint:
		return ipcodec.Pair{Lo: uint64(v)}, nil
	case uint8:
		return ipcodec.Pair{Lo: uint64(v)}, nil
	case uint16:
		return ipcodec.Pair{Lo: uint64(v)}, nil
	case uint32:
		return ipcodec.Pair{Lo: uint64(v)}, nil
	case uint64:
		return ipcodec.Pair{Lo: v}, nil
	case *big.Int:
		return ipcodec.Pack(v)
	case uint128.Uint128:
		return ipcodec.PackUint128(v), nil
	case []byte:
		return parsePacked(v)
	case [16]byte:
		return ipcodec.FromBytes(v), nil
	case types.IPv6:
		return ipcodec.FromBytes(v), nil
	case [4]byte:
		return ipcodec.Pair{Lo: uint64(types.IPv4(v).Uint32())}, nil
	case types.IPv4:
		return ipcodec.Pair{Lo: uint64(v.Uint32())}, nil
	case netip.Addr:
		if !v.IsValid() {
			return ipcodec.Pair{}, fmt.Errorf("%w: invalid address value", column.ErrParse)
		}
		return ipcodec.FromAddr(v.WithZone("")), nil
	case net.IP:
		addr, ok := netipx.FromStdIP(v)
		if !ok {
			return ipcodec.Pair{}, fmt.Errorf("%w: invalid address %v", column.ErrParse, []byte(v))
		}
		return ipcodec.FromAddr(addr), nil
	case ipcodec.Pair:
		return v, nil
	case [2]uint64:
		return ipcodec.Pair{Hi: v[0], Lo: v[1]}, nil
	}
	return ipcodec.Pair{}, fmt.Errorf("%w: unsupported value %v of type %T", column.ErrParse, v, v)
}

// ParseText parses IPv4 dotted decimal or IPv6 text. Zoned addresses are
// rejected.
func ParseText(s string) (ipcodec.Pair, error) {
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return ipcodec.Pair{}, fmt.Errorf("%w: %q: %w", column.ErrParse, s, err)
	}
	if addr.Zone() != "" {
		return ipcodec.Pair{}, fmt.Errorf("%w: %q: zoned addresses are not supported", column.ErrParse, s)
	}
	return ipcodec.FromAddr(addr), nil
}

// parsePacked accepts 16 byte big-endian records and 4 byte packed IPv4
// addresses.
func parsePacked(b []byte) (ipcodec.Pair, error) {
	switch len(b) {
	case ipcodec.RecordSize:
		var rec types.IPv6
		copy(rec[:], b)
		return ipcodec.FromBytes(rec), nil
	case net.IPv4len:
		var v4 types.IPv4
		copy(v4[:], b)
		return ipcodec.Pair{Lo: uint64(v4.Uint32())}, nil
	}
	return ipcodec.Pair{}, fmt.Errorf("%w: packed address must be 4 or 16 bytes, got %d", column.ErrParse, len(b))
}

func parseBulkInt(values any) ([]ipcodec.Pair, error) {
	var (
		pairs []ipcodec.Pair
		err   error
	)
	switch v := values.(type) {
	case []int:
		pairs, err = fromIntegers(v)
	case []int8:
		pairs, err = fromIntegers(v)
	case []int16:
		pairs, err = fromIntegers(v)
	case []int32:
		pairs, err = fromIntegers(v)
	case []int64:
		pairs, err = fromIntegers(v)
	case []uint:
		pairs, err = fromIntegers(v)
	case []uint16:
		pairs, err = fromIntegers(v)
	case []uint32:
		pairs, err = fromIntegers(v)
	case []uint64:
		pairs, err = fromIntegers(v)
	default:
		return nil, fmt.Errorf("%w: unsupported integer buffer %T", column.ErrParse, values)
	}
	if err != nil {
		return nil, err
	}

	if logging.CanLogAt(log.Logger, logrus.DebugLevel) {
		log.WithFields(logrus.Fields{
			logfields.Kind:  KindBulkInt,
			logfields.Count: len(pairs),
		}).Debug("Parsed integer buffer")
	}
	return pairs, nil
}

// fromIntegers treats every value as the low 64 bits of an address.
func fromIntegers[I constraints.Integer](vals []I) ([]ipcodec.Pair, error) {
	pairs := make([]ipcodec.Pair, len(vals))
	for i, v := range vals {
		if v < 0 {
			return nil, fmt.Errorf("%w: %d at position %d", column.ErrRange, v, i)
		}
		pairs[i] = ipcodec.Pair{Lo: uint64(v)}
	}
	return pairs, nil
}

func parseBulkMixed(values any) ([]ipcodec.Pair, error) {
	switch v := values.(type) {
	case []string:
		return each(v)
	case []any:
		return each(v)
	case [][]byte:
		return each(v)
	case []netip.Addr:
		return each(v)
	case []net.IP:
		return each(v)
	case []*big.Int:
		return each(v)
	case []uint128.Uint128:
		return each(v)
	case [][16]byte:
		return each(v)
	case []types.IPv6:
		return each(v)
	case [][4]byte:
		return each(v)
	case []types.IPv4:
		return each(v)
	case [][2]uint64:
		return each(v)
	}
	return nil, fmt.Errorf("%w: unsupported sequence %T", column.ErrParse, values)
}

// each parses every element of vals as a scalar.
func each[E any](vals []E) ([]ipcodec.Pair, error) {
	pairs := make([]ipcodec.Pair, len(vals))
	for i, v := range vals {
		if kind := Classify(v); !kind.IsScalar() {
			return nil, fmt.Errorf("%w: element %d of kind %s is not a scalar", column.ErrParse, i, kind)
		}
		p, err := ParseScalar(v)
		if err != nil {
			log.WithError(err).WithField(logfields.Value, v).Debug("Failed to parse element")
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		pairs[i] = p
	}
	return pairs, nil
}
