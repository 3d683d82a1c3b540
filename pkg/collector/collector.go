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

package collector

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/NVIDIA/hostprobe/pkg/cpusample"
	"github.com/NVIDIA/hostprobe/pkg/defaults"
	"github.com/NVIDIA/hostprobe/pkg/platform"
	"github.com/NVIDIA/hostprobe/pkg/platform/common"
	"github.com/NVIDIA/hostprobe/pkg/telemetry"
)

// Collector is the public entry point for host telemetry. It owns the CPU
// sampling cache shared by every call and creates the backend on first use.
// All methods are safe for concurrent use and never fail.
type Collector struct {
	factory     Factory
	throttle    time.Duration
	logger      *slog.Logger
	diagnostics common.DiagnosticsFunc

	once    sync.Once
	backend platform.Backend
	cache   *cpusample.Cache
	tracker *cpusample.ProcessTracker
}

// Option configures a Collector.
type Option func(*Collector)

// WithFactory replaces the backend factory.
func WithFactory(f Factory) Option {
	return func(c *Collector) {
		if f != nil {
			c.factory = f
		}
	}
}

// WithCPUThrottle sets the minimum interval between two CPU counter reads.
func WithCPUThrottle(d time.Duration) Option {
	return func(c *Collector) {
		c.throttle = d
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(c *Collector) {
		c.logger = l
	}
}

// WithDiagnostics registers fn to receive one structured error per field
// that could not be read. fn is called synchronously from collection calls.
func WithDiagnostics(fn common.DiagnosticsFunc) Option {
	return func(c *Collector) {
		c.diagnostics = fn
	}
}

// New returns a Collector. No OS access happens until the first call.
func New(opts ...Option) *Collector {
	c := &Collector{
		factory:  NewDefaultFactory(),
		throttle: defaults.CPUSampleThrottle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var (
	defaultOnce      sync.Once
	defaultCollector *Collector
)

// Default returns the process-wide Collector used by the package-level
// functions.
func Default() *Collector {
	defaultOnce.Do(func() {
		defaultCollector = New(WithLogger(slog.Default()))
	})
	return defaultCollector
}

func (c *Collector) init() {
	c.once.Do(func() {
		c.cache = cpusample.New(cpusample.WithThrottle(c.throttle))
		c.tracker = cpusample.NewProcessTracker(cpusample.WithThrottle(c.throttle))
		c.backend = c.factory.CreateBackend(
			platform.WithCPUCache(c.cache),
			platform.WithProcessTracker(c.tracker),
			platform.WithLogger(c.logger),
			platform.WithDiagnostics(c.diagnostics),
		)
		if c.backend == nil {
			c.backend = platform.Unsupported{}
		}
	})
}

// CPUThrottle returns the minimum interval between two CPU counter reads.
// CPU values read sooner than this after a baseline repeat the baseline.
func (c *Collector) CPUThrottle() time.Duration {
	return c.throttle
}

// Backend returns the backend in use.
func (c *Collector) Backend() platform.Backend {
	c.init()
	return c.backend
}

// BackendName returns the name of the backend in use.
func (c *Collector) BackendName() string {
	return c.Backend().Name()
}

// Capabilities reports which best-effort readings the backend computes.
func (c *Collector) Capabilities() telemetry.Capabilities {
	return c.Backend().Capabilities()
}

// ListProcesses enumerates running processes. Processes that cannot be
// read are omitted.
func (c *Collector) ListProcesses(ctx context.Context) []telemetry.ProcessSnapshot {
	procs := c.Backend().ListProcesses(ctx)
	if procs == nil {
		return []telemetry.ProcessSnapshot{}
	}
	return procs
}

// SampleResources returns CPU, memory, swap, volume and network counters.
// The CPU values of the first call are a baseline and read 0.
func (c *Collector) SampleResources(ctx context.Context) telemetry.ResourceSnapshot {
	res := c.Backend().SampleResources(ctx)
	if res.PerCorePercent == nil {
		res.PerCorePercent = []float64{}
	}
	if res.Volumes == nil {
		res.Volumes = []telemetry.VolumeUsage{}
	}
	return res
}

// ReadIdentity returns static host information.
func (c *Collector) ReadIdentity(ctx context.Context) telemetry.HostIdentity {
	return c.Backend().ReadIdentity(ctx)
}

// Terminate forcefully stops pid. It does not wait for the process to exit.
func (c *Collector) Terminate(pid uint32) bool {
	ok := c.Backend().Terminate(pid)
	if c.logger != nil {
		c.logger.Debug("terminate requested", "pid", pid, "accepted", ok)
	}
	return ok
}

// ListProcesses calls Default().ListProcesses.
func ListProcesses(ctx context.Context) []telemetry.ProcessSnapshot {
	return Default().ListProcesses(ctx)
}

// SampleResources calls Default().SampleResources.
func SampleResources(ctx context.Context) telemetry.ResourceSnapshot {
	return Default().SampleResources(ctx)
}

// ReadIdentity calls Default().ReadIdentity.
func ReadIdentity(ctx context.Context) telemetry.HostIdentity {
	return Default().ReadIdentity(ctx)
}

// Terminate calls Default().Terminate.
func Terminate(pid uint32) bool {
	return Default().Terminate(pid)
}
