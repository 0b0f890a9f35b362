// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

package column

import "errors"

// Errors returned by the column packages. They are always wrapped
// with the offending value, use errors.Is to match them.
var (
	// ErrParse is returned for input that is neither a recognized shape nor
	// valid element text.
	ErrParse = errors.New("unable to parse value")

	// ErrRange is returned for integers outside the range of the element
	// type, or outside [0, 2^64-1] on the integer fast path.
	ErrRange = errors.New("integer out of address range")

	// ErrFormat is returned for byte buffers whose length is not a multiple
	// of the record size.
	ErrFormat = errors.New("invalid buffer length")

	// ErrIndex is returned for out of bounds positions.
	ErrIndex = errors.New("index out of bounds")

	// ErrType is returned when comparing against an incompatible type.
	ErrType = errors.New("incompatible type")

	// ErrValue is returned for membership targets that are neither an
	// address nor a network, and for mismatched operand lengths.
	ErrValue = errors.New("invalid value")

	// ErrAttribute is returned when an accessor is requested for a column
	// of the wrong element type.
	ErrAttribute = errors.New("accessor not supported")
)
