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

package snapshotter

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/NVIDIA/hostprobe/pkg/collector"
	"github.com/NVIDIA/hostprobe/pkg/header"
	"github.com/NVIDIA/hostprobe/pkg/serializer"
	"github.com/NVIDIA/hostprobe/pkg/telemetry"
)

// NodeSnapshotter collects a Snapshot of the current host and serializes it.
type NodeSnapshotter struct {
	// Version is stamped into the snapshot header.
	Version string

	// Collector is the telemetry source. If nil, collector.Default() is used.
	Collector *collector.Collector

	// Serializer receives the snapshot. If nil, stdout JSON is used.
	Serializer serializer.Serializer

	// Diagnostics, when set, must be registered with Collector; its entries
	// are drained into the snapshot.
	Diagnostics *Recorder

	// Fanout, when set and Diagnostics is nil, must be registered with
	// Collector. The snapshot subscribes its own Recorder for the duration
	// of Collect so concurrent callers do not see each other's entries.
	Fanout *Fanout

	// SampleInterval separates a baseline read from the reported one so CPU
	// values reflect that interval. Zero reports whatever the shared CPU
	// state yields, which is 0 for a fresh collector. Intervals shorter than
	// the collector's CPU throttle are raised to it.
	SampleInterval time.Duration
}

// Measure collects a snapshot and serializes it.
func (n *NodeSnapshotter) Measure(ctx context.Context) error {
	snap, err := n.Collect(ctx)
	if err != nil {
		return err
	}

	if n.Serializer == nil {
		n.Serializer = serializer.NewStdoutWriter(serializer.FormatJSON)
	}

	if err := n.Serializer.Serialize(ctx, snap); err != nil {
		slog.Error("failed to serialize", slog.String("error", err.Error()))
		return fmt.Errorf("failed to serialize: %w", err)
	}
	return nil
}

// Collect gathers identity, resources and processes concurrently. It only
// fails when ctx ends first.
func (n *NodeSnapshotter) Collect(ctx context.Context) (*Snapshot, error) {
	c := n.Collector
	if c == nil {
		c = collector.Default()
	}

	slog.Debug("starting host snapshot", "backend", c.BackendName())

	start := time.Now()
	defer func() {
		snapshotCollectionDuration.Observe(time.Since(start).Seconds())
	}()

	rec := n.Diagnostics
	if rec == nil && n.Fanout != nil {
		var unsubscribe func()
		rec, unsubscribe = n.Fanout.Subscribe()
		defer unsubscribe()
	}

	if err := n.warmUp(ctx, c); err != nil {
		snapshotCollectionTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	snap := &Snapshot{Processes: []telemetry.ProcessSnapshot{}}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer observe("identity", time.Now())
		id := c.ReadIdentity(gctx)
		mu.Lock()
		snap.Identity = id
		snap.Capabilities = c.Capabilities()
		mu.Unlock()
		return gctx.Err()
	})

	g.Go(func() error {
		defer observe("resources", time.Now())
		res := c.SampleResources(gctx)
		mu.Lock()
		snap.Resources = res
		mu.Unlock()
		return gctx.Err()
	})

	g.Go(func() error {
		defer observe("processes", time.Now())
		procs := c.ListProcesses(gctx)
		mu.Lock()
		snap.Processes = procs
		mu.Unlock()
		return gctx.Err()
	})

	if err := g.Wait(); err != nil {
		snapshotCollectionTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("snapshot collection interrupted: %w", err)
	}

	snap.Header = *header.New(header.KindSnapshot,
		header.WithMetadata(header.MetadataVersion, n.Version),
		header.WithMetadata(header.MetadataHostname, snap.Identity.Hostname),
		header.WithMetadata(header.MetadataBackend, c.BackendName()),
	)
	if rec != nil {
		snap.Diagnostics = rec.Drain()
	}

	snapshotCollectionTotal.WithLabelValues("success").Inc()
	snapshotProcessCount.Set(float64(len(snap.Processes)))

	slog.Debug("snapshot collection complete",
		slog.Int("processes", len(snap.Processes)),
		slog.Int("diagnostics", len(snap.Diagnostics)))

	return snap, nil
}

// warmUp records CPU baselines and waits SampleInterval, but never less
// than the CPU throttle.
func (n *NodeSnapshotter) warmUp(ctx context.Context, c *collector.Collector) error {
	if n.SampleInterval <= 0 {
		return nil
	}
	wait := max(n.SampleInterval, c.CPUThrottle())

	c.SampleResources(ctx)
	c.ListProcesses(ctx)

	t := time.NewTimer(wait)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return fmt.Errorf("snapshot collection interrupted: %w", ctx.Err())
	case <-t.C:
		return nil
	}
}

func observe(part string, start time.Time) {
	snapshotCollectorDuration.WithLabelValues(part).Observe(time.Since(start).Seconds())
}
