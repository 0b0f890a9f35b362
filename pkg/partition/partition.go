// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

// Package partition processes address columns split into independent
// partitions. Every partition owns its own array; results are only combined
// by concatenation or by joining per-partition masks.
package partition

import (
	"context"
	"errors"
	"fmt"

	"github.com/cilium/workerpool"
	"github.com/sirupsen/logrus"

	"github.com/cilium/ipcolumn/pkg/column"
	"github.com/cilium/ipcolumn/pkg/iparray"
	"github.com/cilium/ipcolumn/pkg/logging"
	"github.com/cilium/ipcolumn/pkg/logging/logfields"
	"github.com/cilium/ipcolumn/pkg/option"
)

var log = logging.DefaultLogger.WithField(logfields.LogSubsys, "partition")

// Set is an ordered list of partitions.
type Set struct {
	parts []*iparray.Array
}

// New returns a set over parts.
func New(parts ...*iparray.Array) *Set {
	return &Set{parts: parts}
}

// Split copies arr into n partitions of nearly equal length.
func Split(arr *iparray.Array, n int) (*Set, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: cannot split into %d partitions", column.ErrValue, n)
	}
	parts := make([]*iparray.Array, n)
	size, rem := arr.Len()/n, arr.Len()%n
	start := 0
	for i := range parts {
		stop := start + size
		if i < rem {
			stop++
		}
		view, err := arr.Slice(start, stop)
		if err != nil {
			return nil, err
		}
		parts[i] = view.Copy()
		start = stop
	}
	return New(parts...), nil
}

// Len returns the number of partitions.
func (s *Set) Len() int {
	return len(s.parts)
}

// Partition returns partition i.
func (s *Set) Partition(i int) *iparray.Array {
	return s.parts[i]
}

// Combine concatenates the partitions in order.
func (s *Set) Combine() *iparray.Array {
	return iparray.Concat(s.parts...)
}

// CombineMasks joins per-partition masks in partition order.
func CombineMasks(masks [][]bool) []bool {
	size := 0
	for _, m := range masks {
		size += len(m)
	}
	out := make([]bool, 0, size)
	for _, m := range masks {
		out = append(out, m...)
	}
	return out
}

// Scheduler runs per-partition work on a worker pool.
type Scheduler struct {
	workers int
}

// NewScheduler returns a scheduler sized by cfg, or option.Config when cfg
// is nil.
func NewScheduler(cfg *option.ColumnConfig) *Scheduler {
	if cfg == nil {
		cfg = option.Config
	}
	workers := cfg.PartitionWorkers
	if workers < 1 {
		workers = 1
	}
	return &Scheduler{workers: workers}
}

// ParseAll parses every raw partition into its own array. The first failing
// partition fails the call.
func (s *Scheduler) ParseAll(ctx context.Context, raw []any) (*Set, error) {
	parts := make([]*iparray.Array, len(raw))
	err := s.run(ctx, len(raw), func(i int) error {
		arr, err := iparray.New(raw[i])
		if err != nil {
			return err
		}
		parts[i] = arr
		return nil
	})
	if err != nil {
		return nil, err
	}
	return New(parts...), nil
}

// IsIn evaluates membership of every partition against targets and returns
// one mask per partition.
func (s *Scheduler) IsIn(ctx context.Context, set *Set, targets any) ([][]bool, error) {
	masks := make([][]bool, set.Len())
	err := s.run(ctx, set.Len(), func(i int) error {
		mask, err := set.parts[i].IsIn(targets)
		if err != nil {
			return err
		}
		masks[i] = mask
		return nil
	})
	if err != nil {
		return nil, err
	}
	return masks, nil
}

// run submits fn for every partition index and waits for all of them. The
// first failing task cancels the rest; tasks not yet started when ctx is done
// return the context error.
func (s *Scheduler) run(parent context.Context, n int, fn func(i int) error) error {
	scopedLog := log.WithFields(logrus.Fields{
		logfields.Partitions: n,
		logfields.Workers:    s.workers,
	})
	scopedLog.Debug("Scheduling partition tasks")

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	wp := workerpool.New(s.workers)
	defer wp.Close()

	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			break
		}
		err := wp.Submit(fmt.Sprintf("partition-%d", i), func(context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := fn(i); err != nil {
				cancel()
				return err
			}
			return nil
		})
		if err != nil {
			return err
		}
	}

	tasks, err := wp.Drain()
	if err != nil {
		return err
	}
	for _, t := range tasks {
		if errors.Is(t.Err(), context.Canceled) && parent.Err() == nil {
			continue
		}
		if t.Err() != nil {
			scopedLog.WithError(t.Err()).WithField(logfields.Partition, t.String()).Debug("Partition task failed")
			return fmt.Errorf("%s: %w", t, t.Err())
		}
	}
	return parent.Err()
}
