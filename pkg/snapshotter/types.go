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
	"sync"

	"github.com/NVIDIA/hostprobe/pkg/errors"
	"github.com/NVIDIA/hostprobe/pkg/header"
	"github.com/NVIDIA/hostprobe/pkg/telemetry"
)

// Snapshotter captures a host snapshot and writes it somewhere.
type Snapshotter interface {
	Measure(ctx context.Context) error
}

// Snapshot is everything hostprobe knows about a host at one instant.
type Snapshot struct {
	header.Header `json:",inline" yaml:",inline"`

	Identity     telemetry.HostIdentity      `json:"identity" yaml:"identity"`
	Capabilities telemetry.Capabilities      `json:"capabilities" yaml:"capabilities"`
	Resources    telemetry.ResourceSnapshot  `json:"resources" yaml:"resources"`
	Processes    []telemetry.ProcessSnapshot `json:"processes" yaml:"processes"`

	// Diagnostics lists the fields that fell back to defaults while the
	// snapshot was collected.
	Diagnostics []Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// GetHeader returns the snapshot envelope.
func (s *Snapshot) GetHeader() *header.Header {
	return &s.Header
}

// Diagnostic is the serializable form of a field-unavailable report.
type Diagnostic struct {
	Backend string `json:"backend" yaml:"backend"`
	Field   string `json:"field" yaml:"field"`
	Message string `json:"message" yaml:"message"`
}

// Recorder collects diagnostics reported by a collector. Register Record
// with collector.WithDiagnostics. It is safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	entries []Diagnostic
	seen    map[string]bool
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{seen: make(map[string]bool)}
}

// Record stores se once per backend and field.
func (r *Recorder) Record(se *errors.StructuredError) {
	if se == nil {
		return
	}
	d := Diagnostic{Message: se.Error()}
	if v, ok := se.Context["backend"].(string); ok {
		d.Backend = v
	}
	if v, ok := se.Context["field"].(string); ok {
		d.Field = v
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	key := d.Backend + "/" + d.Field
	if r.seen[key] {
		return
	}
	r.seen[key] = true
	r.entries = append(r.entries, d)
}

// Drain returns the recorded diagnostics and resets the Recorder.
func (r *Recorder) Drain() []Diagnostic {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.entries
	r.entries = nil
	r.seen = make(map[string]bool)
	return out
}

// Fanout forwards diagnostics to every subscribed Recorder. Register Record
// with collector.WithDiagnostics when one Collector serves concurrent
// snapshots; each snapshot then subscribes its own Recorder.
type Fanout struct {
	mu   sync.RWMutex
	subs map[*Recorder]struct{}
}

// NewFanout returns a Fanout without subscribers.
func NewFanout() *Fanout {
	return &Fanout{subs: make(map[*Recorder]struct{})}
}

// Record passes se to every current subscriber. Without subscribers se is
// dropped.
func (f *Fanout) Record(se *errors.StructuredError) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for r := range f.subs {
		r.Record(se)
	}
}

// Subscribe registers a fresh Recorder. Call the returned func to remove it.
func (f *Fanout) Subscribe() (*Recorder, func()) {
	r := NewRecorder()
	f.mu.Lock()
	f.subs[r] = struct{}{}
	f.mu.Unlock()
	return r, func() {
		f.mu.Lock()
		delete(f.subs, r)
		f.mu.Unlock()
	}
}
