// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

// Package column implements a dense column of fixed-width values.
//
// The element type is described by a Strategy, which provides the missing
// value, ordering, text formatting and the big-endian record codec. Address
// and hardware address columns are both built on top of Column.
package column
