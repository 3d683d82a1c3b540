// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cpusample

import (
	"runtime"
	"sync"
	"time"

	"github.com/NVIDIA/hostprobe/pkg/telemetry"
)

// WithCores sets the number of logical cores a process can use at most.
// Process percentages are normalized by it so they stay within [0,100].
func WithCores(n int) Option {
	return func(o *options) {
		o.cores = n
	}
}

// ProcessKey identifies a process instance. StartTime guards against pid
// reuse between two enumerations.
type ProcessKey struct {
	PID       uint32
	StartTime uint64
}

// ProcessTime is the cumulative CPU time (user plus system) a process has
// consumed so far.
type ProcessTime struct {
	Key ProcessKey
	CPU time.Duration
}

type processEntry struct {
	cpu     time.Duration
	percent float64
}

// ProcessTracker applies the delta technique of Cache per process. It keeps
// the last cumulative CPU time for every process seen in the latest round and
// forgets processes that disappeared.
type ProcessTracker struct {
	mu       sync.Mutex
	throttle time.Duration
	now      func() time.Time
	cores    int

	last    time.Time
	entries map[ProcessKey]processEntry
}

// NewProcessTracker returns an empty tracker.
func NewProcessTracker(opts ...Option) *ProcessTracker {
	o := newOptions(opts)
	if o.cores <= 0 {
		o.cores = runtime.NumCPU()
	}
	return &ProcessTracker{
		throttle: o.throttle,
		now:      o.now,
		cores:    o.cores,
		entries:  make(map[ProcessKey]processEntry),
	}
}

// Observe records one enumeration round and returns the CPU percent of each
// observed process since the previous round. New processes report 0. Within
// the throttle interval the previous percentages are returned and baselines
// are kept.
func (t *ProcessTracker) Observe(times []ProcessTime) map[ProcessKey]float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	out := make(map[ProcessKey]float64, len(times))

	if !t.last.IsZero() && now.Sub(t.last) < t.throttle {
		for _, pt := range times {
			out[pt.Key] = t.entries[pt.Key].percent
		}
		return out
	}

	wall := now.Sub(t.last)
	first := t.last.IsZero()
	next := make(map[ProcessKey]processEntry, len(times))

	for _, pt := range times {
		var pct float64
		if prev, ok := t.entries[pt.Key]; ok && !first && wall > 0 && pt.CPU >= prev.cpu {
			capacity := float64(wall) * float64(t.cores)
			pct = telemetry.ClampPercent(100 * float64(pt.CPU-prev.cpu) / capacity)
		}
		next[pt.Key] = processEntry{cpu: pt.CPU, percent: pct}
		out[pt.Key] = pct
	}

	t.entries = next
	t.last = now
	return out
}

// Len returns the number of processes currently tracked.
func (t *ProcessTracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}
