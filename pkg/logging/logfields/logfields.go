// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

// Package logfields defines common logging fields which are used across packages
package logfields

const (
	// LogSubsys is the field denoting the subsystem when logging
	LogSubsys = "subsys"

	// Count is a generic count of elements
	Count = "count"

	// Length is the number of elements in an address column
	Length = "length"

	// Kind is the classified shape of a parser input
	Kind = "kind"

	// Value is a raw input value which failed to parse
	Value = "value"

	// Network is an address range in CIDR notation
	Network = "network"

	// Targets is the number of address membership targets
	Targets = "targets"

	// Networks is the number of network membership targets
	Networks = "networks"

	// Partition is the index of a partition of a column
	Partition = "partition"

	// Partitions is the number of partitions of a column
	Partitions = "partitions"

	// Workers is the number of workers of a worker pool
	Workers = "workers"

	// Name is the name of a labeled column
	Name = "name"

	// NASentinel is the label assigned to missing elements by factorization
	NASentinel = "naSentinel"
)
