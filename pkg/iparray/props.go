// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package iparray

import (
	"net/netip"

	"go4.org/netipx"

	"github.com/cilium/ipcolumn/pkg/ipcodec"
)

var (
	privateSet = mustIPSet(
		"0.0.0.0/8",
		"10.0.0.0/8",
		"127.0.0.0/8",
		"169.254.0.0/16",
		"172.16.0.0/12",
		"192.0.0.0/29",
		"192.0.0.170/31",
		"192.0.2.0/24",
		"192.168.0.0/16",
		"198.18.0.0/15",
		"198.51.100.0/24",
		"203.0.113.0/24",
		"240.0.0.0/4",
		"255.255.255.255/32",
		"::1/128",
		"::/128",
		"::ffff:0:0/96",
		"100::/64",
		"2001::/23",
		"2001:2::/48",
		"2001:db8::/32",
		"2001:10::/28",
		"fc00::/7",
		"fe80::/10",
	)

	// Shared address space, neither private nor global.
	sharedSet = mustIPSet("100.64.0.0/10")

	reservedSet = mustIPSet(
		"240.0.0.0/4",
		"::/8",
		"100::/8",
		"200::/7",
		"400::/6",
		"800::/5",
		"1000::/4",
		"4000::/3",
		"6000::/3",
		"8000::/3",
		"a000::/3",
		"c000::/3",
		"e000::/4",
		"f000::/5",
		"f800::/6",
		"fe00::/9",
	)
)

func mustIPSet(prefixes ...string) *netipx.IPSet {
	var b netipx.IPSetBuilder
	for _, p := range prefixes {
		b.AddPrefix(netip.MustParsePrefix(p))
	}
	s, err := b.IPSet()
	if err != nil {
		panic(err)
	}
	return s
}

func (a *Array) mask(fn func(ipcodec.Pair) bool) []bool {
	vals := a.col.Values()
	out := make([]bool, len(vals))
	for i, p := range vals {
		out[i] = fn(p)
	}
	return out
}

func (a *Array) addrMask(fn func(netip.Addr) bool) []bool {
	return a.mask(func(p ipcodec.Pair) bool { return fn(p.Addr()) })
}

// IsIPv4 reports per entry whether the value lies in the IPv4 space. The
// missing value counts as IPv4.
func (a *Array) IsIPv4() []bool {
	return a.mask(ipcodec.Pair.IsIPv4)
}

func (a *Array) IsIPv6() []bool {
	return a.mask(func(p ipcodec.Pair) bool { return !p.IsIPv4() })
}

// Version returns 4 or 6 per entry.
func (a *Array) Version() []int {
	vals := a.col.Values()
	out := make([]int, len(vals))
	for i, p := range vals {
		out[i] = p.Version()
	}
	return out
}

func (a *Array) IsMulticast() []bool {
	return a.addrMask(netip.Addr.IsMulticast)
}

func (a *Array) IsPrivate() []bool {
	return a.addrMask(privateSet.Contains)
}

// IsGlobal reports per entry whether the address is globally routable,
// that is neither private nor in the shared address space.
func (a *Array) IsGlobal() []bool {
	return a.addrMask(func(addr netip.Addr) bool {
		return !privateSet.Contains(addr) && !sharedSet.Contains(addr)
	})
}

// IsUnspecified is true for 0.0.0.0 and ::, which includes every missing
// entry.
func (a *Array) IsUnspecified() []bool {
	return a.addrMask(netip.Addr.IsUnspecified)
}

func (a *Array) IsReserved() []bool {
	return a.addrMask(reservedSet.Contains)
}

func (a *Array) IsLoopback() []bool {
	return a.addrMask(netip.Addr.IsLoopback)
}

func (a *Array) IsLinkLocal() []bool {
	return a.addrMask(netip.Addr.IsLinkLocalUnicast)
}
