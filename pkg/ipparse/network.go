// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package ipparse

import (
	"fmt"
	"net"
	"net/netip"
	"strings"

	"go4.org/netipx"

	"github.com/cilium/ipcolumn/pkg/column"
	"github.com/cilium/ipcolumn/pkg/ipcodec"
	"github.com/cilium/ipcolumn/pkg/logging/logfields"
	"github.com/cilium/ipcolumn/pkg/option"
)

// Network is a CIDR block together with its inclusive range of encoded
// addresses.
type Network struct {
	Prefix netip.Prefix
	Lo, Hi ipcodec.Pair
}

func (n Network) String() string {
	return n.Prefix.String()
}

// Contains reports whether p lies in the network, bounds included. Both
// bounds compare like array elements: a missing p never matches, and a
// network whose lower bound encodes as the missing value, such as
// 0.0.0.0/8 or ::/0, contains nothing.
func (n Network) Contains(p ipcodec.Pair) bool {
	if p.IsNA() || n.Lo.IsNA() || n.Hi.IsNA() {
		return false
	}
	return n.Lo.Compare(p) <= 0 && p.Compare(n.Hi) <= 0
}

// key returns the prefix of the network over the 128-bit encoding, one byte
// per bit. IPv4 networks sit behind 96 zero bits.
func (n Network) key() []byte {
	bits := n.Prefix.Bits()
	if n.Prefix.Addr().Is4() {
		bits += 128 - 32
	}
	return bitKey(n.Lo)[:bits]
}

// bitKey spells out the 128 bits of p, most significant first.
func bitKey(p ipcodec.Pair) []byte {
	key := make([]byte, 128)
	for i := 0; i < 64; i++ {
		key[i] = byte((p.Hi >> (63 - i)) & 1)
		key[64+i] = byte((p.Lo >> (63 - i)) & 1)
	}
	return key
}

// ParseNetwork parses v as a network using the configured strictness.
func ParseNetwork(v any) (Network, error) {
	return ParseNetworkWith(v, option.Config.StrictNetworks)
}

// ParseNetworkWith parses v as a network. v may be CIDR text, a bare address
// (taken as a single host network), a netip.Prefix, a *net.IPNet or an
// already parsed Network. In strict mode a prefix with host bits set is
// rejected.
func ParseNetworkWith(v any, strict bool) (Network, error) {
	var prefix netip.Prefix
	switch v := v.(type) {
	case Network:
		return v, nil
	case string:
		p, err := parsePrefixText(v)
		if err != nil {
			return Network{}, err
		}
		prefix = p
	case netip.Prefix:
		prefix = v
	case *net.IPNet:
		p, ok := netipx.FromStdIPNet(v)
		if !ok {
			return Network{}, fmt.Errorf("%w: invalid network %v", column.ErrValue, v)
		}
		prefix = p
	default:
		return Network{}, fmt.Errorf("%w: %v of type %T is not a network", column.ErrValue, v, v)
	}
	if !prefix.IsValid() {
		return Network{}, fmt.Errorf("%w: invalid network %v", column.ErrValue, prefix)
	}

	if masked := prefix.Masked(); masked != prefix {
		if strict {
			return Network{}, fmt.Errorf("%w: %s has host bits set", column.ErrValue, prefix)
		}
		log.WithField(logfields.Network, prefix).Debug("Masking host bits of network")
		prefix = masked
	}

	r := netipx.RangeOfPrefix(prefix)
	return Network{
		Prefix: prefix,
		Lo:     ipcodec.FromAddr(r.From()),
		Hi:     ipcodec.FromAddr(r.To()),
	}, nil
}

func parsePrefixText(s string) (netip.Prefix, error) {
	if !strings.Contains(s, "/") {
		addr, err := netip.ParseAddr(s)
		if err != nil || addr.Zone() != "" {
			return netip.Prefix{}, fmt.Errorf("%w: %q is not a network", column.ErrValue, s)
		}
		return netip.PrefixFrom(addr, addr.BitLen()), nil
	}
	p, err := netip.ParsePrefix(s)
	if err != nil {
		return netip.Prefix{}, fmt.Errorf("%w: %q is not a network: %w", column.ErrValue, s, err)
	}
	return p, nil
}
