// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

// Package ipcodec converts between 128-bit addresses and their two word
// encoding.
//
// An address is stored as a Pair of unsigned 64-bit words, Hi holding the
// most significant half. IPv4 addresses occupy the low 32 bits of Lo with Hi
// set to zero. The all-zero Pair is reserved to mean "no value", which makes
// the real addresses 0.0.0.0 and :: indistinguishable from a missing element.
package ipcodec
