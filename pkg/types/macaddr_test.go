// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package types

import (
	"net"

	check "github.com/cilium/checkmate"

	"github.com/cilium/ipcolumn/pkg/comparator"
)

var testMACAddress MACAddr = [6]byte{1, 2, 3, 4, 5, 6}

type MACAddrSuite struct{}

var _ = check.Suite(&MACAddrSuite{})

func (s *MACAddrSuite) TestHardwareAddr(c *check.C) {
	var expectedAddress net.HardwareAddr = []byte{1, 2, 3, 4, 5, 6}
	c.Assert(testMACAddress.hardwareAddr(), comparator.DeepEquals, expectedAddress)
}

func (s *MACAddrSuite) TestString(c *check.C) {
	c.Assert(testMACAddress.String(), check.Equals, "01:02:03:04:05:06")
}

func (s *MACAddrSuite) TestUint64(c *check.C) {
	c.Assert(testMACAddress.Uint64(), check.Equals, uint64(0x010203040506))
	c.Assert(MACAddrFromUint64(0x010203040506), check.Equals, testMACAddress)
}

func (s *MACAddrSuite) TestParseMACAddr(c *check.C) {
	for _, text := range []string{
		"01:02:03:04:05:06",
		"01-02-03-04-05-06",
		"010203040506",
		"0102.0304.0506",
	} {
		m, err := ParseMACAddr(text)
		c.Assert(err, check.IsNil)
		c.Assert(m, check.Equals, testMACAddress)
	}

	for _, text := range []string{"", "zz:02:03:04:05:06", "01:02:03:04:05:06:07"} {
		_, err := ParseMACAddr(text)
		c.Assert(err, check.NotNil)
	}
}
