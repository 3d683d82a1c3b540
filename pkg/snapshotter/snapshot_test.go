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
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/hostprobe/pkg/collector"
	"github.com/NVIDIA/hostprobe/pkg/errors"
	"github.com/NVIDIA/hostprobe/pkg/header"
	"github.com/NVIDIA/hostprobe/pkg/platform"
	"github.com/NVIDIA/hostprobe/pkg/platform/common"
	"github.com/NVIDIA/hostprobe/pkg/serializer"
	"github.com/NVIDIA/hostprobe/pkg/telemetry"
)

type stubBackend struct {
	opts    common.Options
	samples int
}

func (s *stubBackend) Name() string { return "stub" }

func (s *stubBackend) Capabilities() telemetry.Capabilities {
	return telemetry.Capabilities{Swap: true}
}

func (s *stubBackend) ListProcesses(context.Context) []telemetry.ProcessSnapshot {
	return []telemetry.ProcessSnapshot{{PID: 1, Name: "init", Status: telemetry.StatusSleeping}}
}

func (s *stubBackend) SampleResources(context.Context) telemetry.ResourceSnapshot {
	s.samples++
	s.opts.Report("stub", "network", fmt.Errorf("no counters"))
	return telemetry.ResourceSnapshot{CPUPercent: float64(s.samples), MemoryTotal: 1024}
}

func (s *stubBackend) ReadIdentity(context.Context) telemetry.HostIdentity {
	id := telemetry.UnknownIdentity()
	id.Hostname = "node-1"
	return id
}

func (s *stubBackend) Terminate(uint32) bool { return false }

func newStubCollector(rec *Recorder, extra ...collector.Option) (*collector.Collector, *stubBackend) {
	sb := &stubBackend{}
	opts := []collector.Option{
		collector.WithFactory(collector.FactoryFunc(func(popts ...platform.Option) platform.Backend {
			for _, o := range popts {
				o(&sb.opts)
			}
			sb.opts.Normalize()
			return sb
		})),
	}
	if rec != nil {
		opts = append(opts, collector.WithDiagnostics(rec.Record))
	}
	return collector.New(append(opts, extra...)...), sb
}

type captureSerializer struct {
	got any
	err error
}

func (c *captureSerializer) Serialize(_ context.Context, doc any) error {
	c.got = doc
	return c.err
}

func TestCollect(t *testing.T) {
	rec := NewRecorder()
	c, _ := newStubCollector(rec)
	n := &NodeSnapshotter{Version: "v1.0.0", Collector: c, Diagnostics: rec}

	snap, err := n.Collect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, header.KindSnapshot, snap.Kind)
	assert.Equal(t, header.APIVersion, snap.APIVersion)
	assert.Equal(t, "v1.0.0", snap.Metadata[header.MetadataVersion])
	assert.Equal(t, "node-1", snap.Metadata[header.MetadataHostname])
	assert.Equal(t, "stub", snap.Metadata[header.MetadataBackend])

	assert.Equal(t, "node-1", snap.Identity.Hostname)
	assert.True(t, snap.Capabilities.Swap)
	assert.Equal(t, uint64(1024), snap.Resources.MemoryTotal)
	require.Len(t, snap.Processes, 1)

	require.Len(t, snap.Diagnostics, 1)
	assert.Equal(t, Diagnostic{Backend: "stub", Field: "network", Message: snap.Diagnostics[0].Message}, snap.Diagnostics[0])
	assert.Contains(t, snap.Diagnostics[0].Message, "FIELD_UNAVAILABLE")
}

func TestCollectWarmUp(t *testing.T) {
	c, sb := newStubCollector(nil, collector.WithCPUThrottle(time.Millisecond))
	n := &NodeSnapshotter{Collector: c, SampleInterval: time.Millisecond}

	snap, err := n.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, sb.samples)
	assert.Equal(t, 2.0, snap.Resources.CPUPercent)
}

func TestCollectWarmUpWaitsForThrottle(t *testing.T) {
	throttle := 50 * time.Millisecond
	c, _ := newStubCollector(nil, collector.WithCPUThrottle(throttle))
	n := &NodeSnapshotter{Collector: c, SampleInterval: time.Millisecond}

	start := time.Now()
	_, err := n.Collect(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), throttle)
}

func TestCollectWithFanout(t *testing.T) {
	fan := NewFanout()
	c, _ := newStubCollector(nil, collector.WithDiagnostics(fan.Record))
	n := &NodeSnapshotter{Collector: c, Fanout: fan}
	first, err := n.Collect(context.Background())
	require.NoError(t, err)
	require.Len(t, first.Diagnostics, 1)
	assert.Equal(t, "network", first.Diagnostics[0].Field)

	second, err := n.Collect(context.Background())
	require.NoError(t, err)
	assert.Len(t, second.Diagnostics, 1)
}

func TestCollectCanceled(t *testing.T) {
	c, _ := newStubCollector(nil)
	n := &NodeSnapshotter{Collector: c, SampleInterval: time.Hour}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := n.Collect(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMeasure(t *testing.T) {
	c, _ := newStubCollector(nil)
	cs := &captureSerializer{}
	n := &NodeSnapshotter{Collector: c, Serializer: cs}

	require.NoError(t, n.Measure(context.Background()))
	snap, ok := cs.got.(*Snapshot)
	require.True(t, ok)
	assert.Same(t, &snap.Header, snap.GetHeader())
}

func TestMeasureSerializerError(t *testing.T) {
	c, _ := newStubCollector(nil)
	n := &NodeSnapshotter{Collector: c, Serializer: &captureSerializer{err: fmt.Errorf("disk full")}}

	err := n.Measure(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestSnapshotYAMLLayout(t *testing.T) {
	c, _ := newStubCollector(nil)
	var buf bytes.Buffer
	n := &NodeSnapshotter{Collector: c, Serializer: serializer.NewWriter(serializer.FormatYAML, &buf)}
	require.NoError(t, n.Measure(context.Background()))

	var raw map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &raw))
	assert.Equal(t, "Snapshot", raw["kind"])
	assert.Contains(t, raw, "identity")
	assert.Contains(t, raw, "resources")
	assert.Contains(t, raw, "processes")
	assert.NotContains(t, raw, "diagnostics")
}

func TestRecorder(t *testing.T) {
	rec := NewRecorder()
	se := errors.NewWithContext(errors.ErrCodeFieldUnavailable, "failed to read swap",
		map[string]any{"backend": "linux", "field": "swap"})

	rec.Record(se)
	rec.Record(se)
	rec.Record(nil)

	got := rec.Drain()
	require.Len(t, got, 1)
	assert.Equal(t, "linux", got[0].Backend)
	assert.Equal(t, "swap", got[0].Field)
	assert.Empty(t, rec.Drain())

	rec.Record(se)
	assert.Len(t, rec.Drain(), 1)
}

func TestFanout(t *testing.T) {
	fan := NewFanout()
	se := errors.NewWithContext(errors.ErrCodeFieldUnavailable, "failed to read swap",
		map[string]any{"backend": "linux", "field": "swap"})

	fan.Record(errors.NewWithContext(errors.ErrCodeFieldUnavailable, "failed to read cpu",
		map[string]any{"backend": "linux", "field": "cpu"}))

	a, unsubscribeA := fan.Subscribe()
	b, unsubscribeB := fan.Subscribe()
	fan.Record(se)

	got := a.Drain()
	require.Len(t, got, 1)
	assert.Equal(t, "swap", got[0].Field)
	unsubscribeA()
	fan.Record(errors.NewWithContext(errors.ErrCodeFieldUnavailable, "failed to read network",
		map[string]any{"backend": "linux", "field": "network"}))

	assert.Empty(t, a.Drain())
	assert.Len(t, b.Drain(), 2)
	unsubscribeB()
}
