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
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/NVIDIA/hostprobe/pkg/defaults"
	"github.com/NVIDIA/hostprobe/pkg/telemetry"
)

// Counter holds the cumulative busy and total time of one logical core, in
// whatever unit the OS reports (jiffies, 100ns ticks, host ticks).
type Counter struct {
	Busy  uint64
	Total uint64
}

// Reader fetches one raw counter per logical core, ordered by core index.
type Reader func(ctx context.Context) ([]Counter, error)

// Sample is the result of one sampling request.
type Sample struct {
	Aggregate float64
	PerCore   []float64
}

// Option configures a Cache or a ProcessTracker.
type Option func(*options)

type options struct {
	throttle time.Duration
	now      func() time.Time
	cores    int
}

// WithThrottle sets the minimum interval between two OS reads.
// Non-positive values disable throttling.
func WithThrottle(d time.Duration) Option {
	return func(o *options) {
		o.throttle = d
	}
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		throttle: defaults.CPUSampleThrottle,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Cache turns two time-separated reads of cumulative per-core counters into
// utilization percentages. One Cache is shared by every caller of a running
// collector; the mutex is held across the whole fetch-and-update sequence.
type Cache struct {
	mu       sync.Mutex
	throttle time.Duration
	now      func() time.Time

	sampled   bool
	last      time.Time
	counters  []Counter
	aggregate float64
	perCore   []float64
}

// New returns an empty Cache. The first Sample call records the baseline.
func New(opts ...Option) *Cache {
	o := newOptions(opts)
	return &Cache{
		throttle: o.throttle,
		now:      o.now,
	}
}

// Sample returns the current aggregate and per-core utilization.
//
// Within the throttle interval the previous result is returned without
// touching the OS. The first successful read only stores a baseline and
// reports 0 with no per-core values. When read fails the previous result is
// returned together with the error and the state is left as is.
func (c *Cache) Sample(ctx context.Context, read Reader) (Sample, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if c.sampled && now.Sub(c.last) < c.throttle {
		return c.result(), nil
	}

	if read == nil {
		return c.result(), fmt.Errorf("cpu counter reader is nil")
	}

	fresh, err := read(ctx)
	if err != nil {
		return c.result(), fmt.Errorf("failed to read cpu counters: %w", err)
	}

	if !c.sampled {
		c.store(now, fresh, 0, []float64{})
		return c.result(), nil
	}

	aggregate, perCore := Compute(c.counters, fresh)
	c.store(now, fresh, aggregate, perCore)
	return c.result(), nil
}

// Reset drops the baseline so the next Sample starts over.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sampled = false
	c.last = time.Time{}
	c.counters = nil
	c.aggregate = 0
	c.perCore = nil
}

func (c *Cache) store(at time.Time, counters []Counter, aggregate float64, perCore []float64) {
	c.sampled = true
	c.last = at
	c.counters = append([]Counter(nil), counters...)
	c.aggregate = aggregate
	c.perCore = perCore
}

func (c *Cache) result() Sample {
	perCore := make([]float64, len(c.perCore))
	copy(perCore, c.perCore)
	return Sample{Aggregate: c.aggregate, PerCore: perCore}
}

// Compute derives utilization between two counter vectors. Only the
// overlapping prefix of cores is used. A core whose busy or total counter
// went backwards reports 0 and is left out of the aggregate.
func Compute(prev, cur []Counter) (float64, []float64) {
	n := min(len(prev), len(cur))
	perCore := make([]float64, n)

	var sumBusy, sumTotal uint64
	for i := 0; i < n; i++ {
		p, c := prev[i], cur[i]
		if c.Busy < p.Busy || c.Total < p.Total {
			continue
		}
		busy := c.Busy - p.Busy
		total := c.Total - p.Total
		perCore[i] = telemetry.Percent(busy, total)
		sumBusy += busy
		sumTotal += total
	}

	return telemetry.Percent(sumBusy, sumTotal), perCore
}
