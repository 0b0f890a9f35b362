// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package column

// Strategy describes how the elements of a column are stored, ordered and
// rendered.
type Strategy[T comparable] interface {
	// Name is the name of the column type, e.g. "IPArray".
	Name() string

	// Width is the size in bytes of one serialized element.
	Width() int

	// NA returns the reserved missing value.
	NA() T

	// IsNA reports whether v is the missing value.
	IsNA(v T) bool

	// Compare returns -1, 0 or +1 ordering a before, equal to or after b.
	Compare(a, b T) int

	// Format returns the text of v.
	Format(v T) string

	// Put writes the record of v into buf, which holds exactly Width bytes.
	Put(buf []byte, v T)

	// Get decodes a record of exactly Width bytes.
	Get(buf []byte) T
}
