// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package types

import (
	"net"

	check "github.com/cilium/checkmate"

	"github.com/cilium/ipcolumn/pkg/comparator"
)

var testIPv6Address IPv6 = [16]byte{240, 13, 0, 0, 0, 0, 0, 0, 172, 16, 0, 20, 0, 0, 0, 1}

type IPv6Suite struct{}

var _ = check.Suite(&IPv6Suite{})

func (s *IPv6Suite) TestIP(c *check.C) {
	var expectedAddress net.IP = []byte{240, 13, 0, 0, 0, 0, 0, 0, 172, 16, 0, 20, 0, 0, 0, 1}
	c.Assert(testIPv6Address.IP(), comparator.DeepEquals, expectedAddress)
}

func (s *IPv6Suite) TestString(c *check.C) {
	c.Assert(testIPv6Address.String(), check.Equals, "f00d::ac10:14:0:1")
}

func (s *IPv6Suite) TestWords(c *check.C) {
	hi, lo := testIPv6Address.Words()
	c.Assert(hi, check.Equals, uint64(0xf00d000000000000))
	c.Assert(lo, check.Equals, uint64(0xac10001400000001))
	c.Assert(IPv6FromWords(hi, lo), check.Equals, testIPv6Address)
}

func (s *IPv6Suite) TestWordsBoundary(c *check.C) {
	v6 := IPv6FromWords(0, 1<<63)
	c.Assert(v6[7], check.Equals, byte(0))
	c.Assert(v6[8], check.Equals, byte(0x80))

	v6 = IPv6FromWords(1, 0)
	c.Assert(v6[7], check.Equals, byte(1))
	c.Assert(v6.String(), check.Equals, "0:0:0:1::")
}

func (s *IPv6Suite) TestMarshalText(c *check.C) {
	text, err := testIPv6Address.MarshalText()
	c.Assert(err, check.IsNil)

	var v6 IPv6
	c.Assert(v6.UnmarshalText(text), check.IsNil)
	c.Assert(v6, check.Equals, testIPv6Address)

	c.Assert(v6.UnmarshalText([]byte("not-an-address")), check.NotNil)
}
