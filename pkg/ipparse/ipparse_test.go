// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package ipparse

import (
	"math/big"
	"math/rand"
	"net"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/require"
	"lukechampine.com/uint128"

	"github.com/cilium/ipcolumn/pkg/column"
	"github.com/cilium/ipcolumn/pkg/ipcodec"
	"github.com/cilium/ipcolumn/pkg/option"
	"github.com/cilium/ipcolumn/pkg/types"
)

type pairs []ipcodec.Pair

func (p pairs) Pairs() []ipcodec.Pair { return p }

func TestClassify(t *testing.T) {
	tests := []struct {
		in   any
		want Kind
	}{
		{in: pairs{}, want: KindEncoded},
		{in: []ipcodec.Pair{}, want: KindEncoded},
		{in: "192.168.1.1", want: KindScalarText},
		{in: 5, want: KindScalarInt},
		{in: uint64(5), want: KindScalarInt},
		{in: big.NewInt(5), want: KindScalarInt},
		{in: uint128.From64(5), want: KindScalarInt},
		{in: []byte{1, 2, 3, 4}, want: KindScalarBytes},
		{in: [16]byte{}, want: KindScalarBytes},
		{in: types.IPv4{1, 2, 3, 4}, want: KindScalarBytes},
		{in: netip.MustParseAddr("::1"), want: KindScalarAddr},
		{in: net.ParseIP("::1"), want: KindScalarAddr},
		{in: ipcodec.Pair{Lo: 1}, want: KindPair},
		{in: [2]uint64{0, 1}, want: KindPair},
		{in: []int{1, 2}, want: KindBulkInt},
		{in: []uint64{1, 2}, want: KindBulkInt},
		{in: []string{"::1"}, want: KindBulkMixed},
		{in: []any{"::1", 5}, want: KindBulkMixed},
		{in: 1.5, want: KindUnknown},
		{in: nil, want: KindUnknown},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, Classify(tt.in), "%T", tt.in)
	}
	require.True(t, KindPair.IsScalar())
	require.False(t, KindBulkInt.IsScalar())
	require.Equal(t, "bulk-int", KindBulkInt.String())
}

func TestParseText(t *testing.T) {
	p, err := ParseText("192.168.1.1")
	require.NoError(t, err)
	require.Equal(t, ipcodec.Pair{Lo: 3232235777}, p)

	p, err = ParseText("2001:db8:85a3::8a2e:370:7334")
	require.NoError(t, err)
	require.Equal(t, ipcodec.Pair{Hi: 0x20010db885a30000, Lo: 0x00008a2e03707334}, p)

	for _, in := range []string{"", "not an ip", "256.1.1.1", "1.2.3", "fe80::1%eth0", "10.0.0.0/8"} {
		_, err := ParseText(in)
		require.ErrorIs(t, err, column.ErrParse, in)
	}
}

func TestParseScalars(t *testing.T) {
	v6 := ipcodec.Pair{Hi: 0x20010db800000000, Lo: 1}
	tests := []struct {
		name string
		in   any
		want ipcodec.Pair
	}{
		{name: "int", in: 3232235777, want: ipcodec.Pair{Lo: 3232235777}},
		{name: "uint32", in: uint32(1), want: ipcodec.Pair{Lo: 1}},
		{name: "big", in: new(big.Int).Lsh(big.NewInt(1), 64), want: ipcodec.Pair{Hi: 1}},
		{name: "uint128", in: uint128.New(1, 2), want: ipcodec.Pair{Hi: 2, Lo: 1}},
		{name: "packed-v4", in: []byte{192, 168, 1, 1}, want: ipcodec.Pair{Lo: 3232235777}},
		{name: "packed-v6", in: []byte(net.ParseIP("2001:db8::1").To16()), want: v6},
		{name: "array-v6", in: [16]byte(netip.MustParseAddr("2001:db8::1").As16()), want: v6},
		{name: "types-v6", in: types.IPv6(netip.MustParseAddr("2001:db8::1").As16()), want: v6},
		{name: "array-v4", in: [4]byte{10, 0, 0, 1}, want: ipcodec.Pair{Lo: 0x0a000001}},
		{name: "netip", in: netip.MustParseAddr("2001:db8::1"), want: v6},
		{name: "netip-v4", in: netip.MustParseAddr("10.0.0.1"), want: ipcodec.Pair{Lo: 0x0a000001}},
		{name: "pair", in: v6, want: v6},
		{name: "words", in: [2]uint64{v6.Hi, v6.Lo}, want: v6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParseScalar(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.want, p)
		})
	}
}

func TestParseScalarErrors(t *testing.T) {
	_, err := ParseScalar(-1)
	require.ErrorIs(t, err, column.ErrRange)

	_, err = ParseScalar(new(big.Int).Lsh(big.NewInt(1), 128))
	require.ErrorIs(t, err, column.ErrRange)

	_, err = ParseScalar([]byte{1, 2, 3})
	require.ErrorIs(t, err, column.ErrParse)

	_, err = ParseScalar(netip.Addr{})
	require.ErrorIs(t, err, column.ErrParse)

	_, err = ParseScalar(3.5)
	require.ErrorIs(t, err, column.ErrParse)
}

func TestParse(t *testing.T) {
	got, err := Parse([]string{"192.168.1.1", "::1"})
	require.NoError(t, err)
	require.Equal(t, []ipcodec.Pair{{Lo: 3232235777}, {Lo: 1}}, got)

	got, err = Parse("10.0.0.1")
	require.NoError(t, err)
	require.Equal(t, []ipcodec.Pair{{Lo: 0x0a000001}}, got)

	got, err = Parse([]int{1, 2, 3})
	require.NoError(t, err)
	require.Equal(t, []ipcodec.Pair{{Lo: 1}, {Lo: 2}, {Lo: 3}}, got)

	got, err = Parse([]any{"::2", 7, netip.MustParseAddr("10.0.0.1")})
	require.NoError(t, err)
	require.Equal(t, []ipcodec.Pair{{Lo: 2}, {Lo: 7}, {Lo: 0x0a000001}}, got)

	src := pairs{{Hi: 1, Lo: 2}}
	got, err = Parse(src)
	require.NoError(t, err)
	require.Equal(t, []ipcodec.Pair(src), got)

	got, err = Parse([]string{})
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]string{"192.168.1.1", "not an ip"})
	require.ErrorIs(t, err, column.ErrParse)

	_, err = Parse([]int{1, -2})
	require.ErrorIs(t, err, column.ErrRange)

	_, err = Parse([]any{"::1", []string{"::2"}})
	require.ErrorIs(t, err, column.ErrParse)

	_, err = Parse(map[string]int{})
	require.ErrorIs(t, err, column.ErrParse)
}

func TestParseNetwork(t *testing.T) {
	n, err := ParseNetworkWith("10.0.0.0/8", true)
	require.NoError(t, err)
	require.Equal(t, ipcodec.Pair{Lo: 0x0a000000}, n.Lo)
	require.Equal(t, ipcodec.Pair{Lo: 0x0affffff}, n.Hi)
	require.Equal(t, "10.0.0.0/8", n.String())
	require.True(t, n.Contains(ipcodec.Pair{Lo: 0x0a010203}))
	require.False(t, n.Contains(ipcodec.Pair{Lo: 0x0b000000}))

	n, err = ParseNetworkWith("2001:db8::/32", true)
	require.NoError(t, err)
	require.Equal(t, ipcodec.Pair{Hi: 0x20010db800000000}, n.Lo)
	require.Equal(t, ipcodec.Pair{Hi: 0x20010db8ffffffff, Lo: ^uint64(0)}, n.Hi)

	n, err = ParseNetworkWith("192.168.1.1", true)
	require.NoError(t, err)
	require.Equal(t, n.Lo, n.Hi)

	_, err = ParseNetworkWith("10.0.0.1/8", true)
	require.ErrorIs(t, err, column.ErrValue)

	n, err = ParseNetworkWith("10.0.0.1/8", false)
	require.NoError(t, err)
	require.Equal(t, "10.0.0.0/8", n.String())

	_, ipnet, err := net.ParseCIDR("172.16.0.0/12")
	require.NoError(t, err)
	n, err = ParseNetworkWith(ipnet, true)
	require.NoError(t, err)
	require.Equal(t, ipcodec.Pair{Lo: 0xac100000}, n.Lo)

	for _, in := range []string{"0.0.0.0/0", "0.0.0.0/8", "::/0", "0.0.0.0"} {
		n, err = ParseNetworkWith(in, true)
		require.NoError(t, err)
		require.True(t, n.Lo.IsNA(), in)
		require.False(t, n.Contains(ipcodec.NA), in)
		require.False(t, n.Contains(ipcodec.Pair{Lo: 1}), in)
		require.False(t, n.Contains(ipcodec.Pair{Lo: 0x0a000001}), in)
		require.False(t, n.Contains(ipcodec.Pair{Hi: 0x20010db800000000, Lo: 1}), in)
	}

	for _, in := range []any{"garbage", "10.0.0.0/33", 42} {
		_, err := ParseNetworkWith(in, true)
		require.ErrorIs(t, err, column.ErrValue, in)
	}
}

func TestParseNetworkUsesConfig(t *testing.T) {
	old := option.Config.StrictNetworks
	defer func() { option.Config.StrictNetworks = old }()

	option.Config.StrictNetworks = false
	_, err := ParseNetwork("10.0.0.1/8")
	require.NoError(t, err)

	option.Config.StrictNetworks = true
	_, err = ParseNetwork("10.0.0.1/8")
	require.ErrorIs(t, err, column.ErrValue)
}

func TestParseTargets(t *testing.T) {
	ts, err := ParseTargets([]string{"192.168.1.1", "10.0.0.0/8"})
	require.NoError(t, err)
	require.Equal(t, 1, ts.NumAddrs())
	require.Len(t, ts.Networks(), 1)
	require.True(t, ts.Contains(ipcodec.Pair{Lo: 3232235777}))
	require.True(t, ts.Contains(ipcodec.Pair{Lo: 0x0a0a0a0a}))
	require.False(t, ts.Contains(ipcodec.Pair{Lo: 3232235778}))

	ts, err = ParseTargets("10.0.0.0/8")
	require.NoError(t, err)
	require.Len(t, ts.Networks(), 1)

	ts, err = ParseTargets("0.0.0.0")
	require.NoError(t, err)
	require.False(t, ts.Contains(ipcodec.NA))

	ts, err = ParseTargets(pairs{{Lo: 1}, {Lo: 2}})
	require.NoError(t, err)
	require.True(t, ts.Contains(ipcodec.Pair{Lo: 2}))

	ts, err = ParseTargets([]uint64{5})
	require.NoError(t, err)
	require.True(t, ts.Contains(ipcodec.Pair{Lo: 5}))

	ts, err = ParseTargets([]any{netip.MustParsePrefix("2001:db8::/32"), "::1"})
	require.NoError(t, err)
	require.True(t, ts.Contains(ipcodec.Pair{Hi: 0x20010db800000000, Lo: 9}))
	require.True(t, ts.Contains(ipcodec.Pair{Lo: 1}))

	_, err = ParseTargets("neither")
	require.ErrorIs(t, err, column.ErrValue)

	_, err = ParseTargets([]string{"::1", "neither"})
	require.ErrorIs(t, err, column.ErrValue)

	_, err = ParseTargets(1.5)
	require.ErrorIs(t, err, column.ErrValue)
}

func TestParseTargetsNetworkOnMissingBound(t *testing.T) {
	ts, err := ParseTargets([]string{"0.0.0.0/0", "::/0", "0.0.0.0/8"})
	require.NoError(t, err)
	require.Len(t, ts.Networks(), 3)
	for _, p := range []ipcodec.Pair{{Lo: 1}, {Lo: 0x0a000001}, {Hi: 0x20010db800000000, Lo: 1}} {
		require.False(t, ts.Contains(p), p.String())
	}

	ts, err = ParseTargets([]string{"0.0.0.0/0", "10.0.0.0/8"})
	require.NoError(t, err)
	require.True(t, ts.Contains(ipcodec.Pair{Lo: 0x0a000001}))
	require.False(t, ts.Contains(ipcodec.Pair{Lo: 0x0b000001}))
}

// The prefix tree lookup must agree with the inclusive range check of every
// single network.
func TestTargetsAgreeWithRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	randomPair := func(v4 bool) ipcodec.Pair {
		if v4 {
			return ipcodec.Pair{Lo: uint64(rng.Uint32())}
		}
		return ipcodec.Pair{Hi: rng.Uint64(), Lo: rng.Uint64()}
	}

	for i := 0; i < 500; i++ {
		v4 := i%2 == 0
		base := randomPair(v4).Addr()
		prefix := netip.PrefixFrom(base, rng.Intn(base.BitLen()+1)).Masked()

		n, err := ParseNetworkWith(prefix, true)
		require.NoError(t, err)
		ts, err := ParseTargets(n)
		require.NoError(t, err)

		candidates := []ipcodec.Pair{n.Lo, n.Hi, randomPair(v4), randomPair(!v4)}
		lo, hi := ipcodec.Unpack(n.Lo), ipcodec.Unpack(n.Hi)
		if !lo.IsZero() {
			candidates = append(candidates, ipcodec.PackUint128(lo.Sub64(1)))
		}
		if !hi.Equals(uint128.Max) {
			candidates = append(candidates, ipcodec.PackUint128(hi.Add64(1)))
		}
		for _, p := range candidates {
			require.Equal(t, n.Contains(p), ts.Contains(p), "%s in %s", p, prefix)
		}
	}
}

type boxedPairs struct {
	pairs []ipcodec.Pair
}

func (b *boxedPairs) Pairs() []ipcodec.Pair { return b.pairs }

func TestNilPairSource(t *testing.T) {
	var src *boxedPairs

	_, err := Parse(src)
	require.ErrorIs(t, err, column.ErrParse)

	_, err = ParseTargets(src)
	require.ErrorIs(t, err, column.ErrValue)

	got, err := Parse(&boxedPairs{pairs: []ipcodec.Pair{{Lo: 1}}})
	require.NoError(t, err)
	require.Equal(t, []ipcodec.Pair{{Lo: 1}}, got)
}
