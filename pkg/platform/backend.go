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

package platform

import (
	"context"
	"log/slog"

	"github.com/NVIDIA/hostprobe/pkg/cpusample"
	"github.com/NVIDIA/hostprobe/pkg/platform/common"
	"github.com/NVIDIA/hostprobe/pkg/telemetry"
)

// Backend translates one operating system's native telemetry sources into
// the canonical schema. Implementations never fail: fields that cannot be
// read keep their zero or Unknown value.
type Backend interface {
	// Name returns the backend identifier, for example "linux".
	Name() string

	// Capabilities reports which best-effort readings the backend computes.
	Capabilities() telemetry.Capabilities

	ListProcesses(ctx context.Context) []telemetry.ProcessSnapshot
	SampleResources(ctx context.Context) telemetry.ResourceSnapshot
	ReadIdentity(ctx context.Context) telemetry.HostIdentity

	// Terminate forcefully stops pid and reports whether the OS accepted it.
	Terminate(pid uint32) bool
}

// Option configures the selected backend.
type Option func(*common.Options)

// WithCPUCache shares cache with the backend. Every caller of one running
// collector must use the same cache.
func WithCPUCache(cache *cpusample.Cache) Option {
	return func(o *common.Options) {
		o.Cache = cache
	}
}

// WithProcessTracker shares the per-process CPU tracker with the backend.
func WithProcessTracker(t *cpusample.ProcessTracker) Option {
	return func(o *common.Options) {
		o.Tracker = t
	}
}

// WithLogger sets the logger for debug output on field failures.
func WithLogger(l *slog.Logger) Option {
	return func(o *common.Options) {
		o.Logger = l
	}
}

// WithDiagnostics registers a callback receiving one structured error per
// telemetry field that fell back to its default.
func WithDiagnostics(fn common.DiagnosticsFunc) Option {
	return func(o *common.Options) {
		o.Diagnostics = fn
	}
}

// New returns the backend compiled in for the current OS, or Unsupported.
func New(opts ...Option) Backend {
	o := common.Options{}
	for _, opt := range opts {
		opt(&o)
	}
	o.Normalize()
	return newNative(o)
}
