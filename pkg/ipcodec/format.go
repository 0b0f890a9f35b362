// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package ipcodec

// NAText is the text of a missing value.
const NAText = "NA"

// Format returns the text of p: NAText for the missing value, dotted decimal
// for the IPv4 space and canonical IPv6 text otherwise.
func Format(p Pair) string {
	if p.IsNA() {
		return NAText
	}
	return p.Addr().String()
}
