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

package common

import (
	"log/slog"

	"github.com/NVIDIA/hostprobe/pkg/cpusample"
	"github.com/NVIDIA/hostprobe/pkg/errors"
	"github.com/NVIDIA/hostprobe/pkg/logging"
)

// DiagnosticsFunc receives one report per telemetry field that fell back to
// its default value.
type DiagnosticsFunc func(*errors.StructuredError)

// Options carries the shared state and hooks every backend is built with.
type Options struct {
	// Cache is the process-wide CPU sampling cache.
	Cache *cpusample.Cache

	// Tracker turns per-process CPU time into percentages.
	Tracker *cpusample.ProcessTracker

	Logger      *slog.Logger
	Diagnostics DiagnosticsFunc
}

// Normalize fills unset fields so backends never check for nil.
func (o *Options) Normalize() {
	if o.Cache == nil {
		o.Cache = cpusample.New()
	}
	if o.Tracker == nil {
		o.Tracker = cpusample.NewProcessTracker()
	}
	if o.Logger == nil {
		o.Logger = logging.Discard()
	}
}

// Report records a field read failure for backend. It never fails and is a
// no-op for a nil error.
func (o *Options) Report(backend, field string, err error) {
	if err == nil {
		return
	}

	se := errors.WrapWithContext(errors.ErrCodeFieldUnavailable,
		"failed to read "+field, err,
		map[string]any{"backend": backend, "field": field})

	if o.Logger != nil {
		o.Logger.Debug("telemetry field unavailable",
			"backend", backend,
			"field", field,
			"error", err)
	}
	if o.Diagnostics != nil {
		o.Diagnostics(se)
	}
}
