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

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/hostprobe/pkg/collector"
	"github.com/NVIDIA/hostprobe/pkg/config"
	"github.com/NVIDIA/hostprobe/pkg/errors"
	"github.com/NVIDIA/hostprobe/pkg/logging"
	"github.com/NVIDIA/hostprobe/pkg/platform"
	"github.com/NVIDIA/hostprobe/pkg/platform/common"
	"github.com/NVIDIA/hostprobe/pkg/server"
	"github.com/NVIDIA/hostprobe/pkg/snapshotter"
	"github.com/NVIDIA/hostprobe/pkg/telemetry"
)

type stubBackend struct {
	opts       common.Options
	terminated []uint32
	block      bool
	quiet      bool
}

func (s *stubBackend) Name() string { return "stub" }

func (s *stubBackend) Capabilities() telemetry.Capabilities {
	return telemetry.Capabilities{Terminate: true, Swap: true}
}

func (s *stubBackend) ListProcesses(ctx context.Context) []telemetry.ProcessSnapshot {
	if s.block {
		<-ctx.Done()
	}
	return []telemetry.ProcessSnapshot{
		{PID: 1, Name: "init", MemoryBytes: 10, CPUPercent: 1},
		{PID: 42, Name: "db", MemoryBytes: 900, CPUPercent: 30},
		{PID: 7, Name: "sshd", MemoryBytes: 50, CPUPercent: 3},
	}
}

func (s *stubBackend) SampleResources(context.Context) telemetry.ResourceSnapshot {
	if !s.quiet {
		s.opts.Report("stub", "swap", fmt.Errorf("no swap"))
	}
	return telemetry.ResourceSnapshot{CPUPercent: 12.5, PerCorePercent: []float64{}, MemoryTotal: 2048}
}

func (s *stubBackend) ReadIdentity(context.Context) telemetry.HostIdentity {
	id := telemetry.UnknownIdentity()
	id.Hostname = "node-1"
	id.OSName = "StubOS"
	return id
}

func (s *stubBackend) Terminate(pid uint32) bool {
	if pid == 0 {
		return false
	}
	s.terminated = append(s.terminated, pid)
	return true
}

func newTestHandler(t *testing.T, sb *stubBackend, opts ...HandlerOption) (*Handler, http.Handler) {
	t.Helper()
	fan := snapshotter.NewFanout()
	c := collector.New(
		collector.WithLogger(logging.Discard()),
		collector.WithCPUThrottle(time.Millisecond),
		collector.WithDiagnostics(func(se *errors.StructuredError) {
			recordFieldUnavailable(se)
			fan.Record(se)
		}),
		collector.WithFactory(collector.FactoryFunc(func(popts ...platform.Option) platform.Backend {
			for _, o := range popts {
				o(&sb.opts)
			}
			sb.opts.Normalize()
			return sb
		})),
	)

	base := []HandlerOption{WithVersion("v1.2.3"), WithFanout(fan), WithLogger(logging.Discard())}
	h := NewHandler(c, append(base, opts...)...)
	s := server.New(server.WithLogger(logging.Discard()), server.WithHandler(h.Routes()))
	return h, s.Handler()
}

func get(t *testing.T, h http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestProcessesSortAndLimit(t *testing.T) {
	_, h := newTestHandler(t, &stubBackend{})

	rec := get(t, h, http.MethodGet, "/v1/processes?sort=memory&limit=2")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	var procs []telemetry.ProcessSnapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &procs))
	require.Len(t, procs, 2)
	assert.Equal(t, uint32(42), procs[0].PID)
	assert.Equal(t, uint32(7), procs[1].PID)

	rec = get(t, h, http.MethodGet, "/v1/processes")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &procs))
	assert.Len(t, procs, 3)
	assert.Equal(t, uint32(1), procs[0].PID)
}

func TestProcessesBadQuery(t *testing.T) {
	_, h := newTestHandler(t, &stubBackend{})

	for _, target := range []string{"/v1/processes?sort=age", "/v1/processes?limit=-1", "/v1/processes?limit=x"} {
		t.Run(target, func(t *testing.T) {
			rec := get(t, h, http.MethodGet, target)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var resp server.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "INVALID_REQUEST", resp.Code)
		})
	}
}

func TestProcessesTimeout(t *testing.T) {
	_, h := newTestHandler(t, &stubBackend{block: true}, WithQueryTimeout(10*time.Millisecond))

	rec := get(t, h, http.MethodGet, "/v1/processes")
	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
}

func TestProcessesTableFormat(t *testing.T) {
	_, h := newTestHandler(t, &stubBackend{})

	rec := get(t, h, http.MethodGet, "/v1/processes?format=table&sort=cpu")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/plain"))

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "PID")
	assert.Contains(t, lines[1], "db")
}

func TestUnknownFormat(t *testing.T) {
	_, h := newTestHandler(t, &stubBackend{})
	rec := get(t, h, http.MethodGet, "/v1/identity?format=xml")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResources(t *testing.T) {
	_, h := newTestHandler(t, &stubBackend{})

	rec := get(t, h, http.MethodGet, "/v1/resources?format=yaml")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/yaml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "memoryTotal: 2048")
}

func TestIdentityAndCapabilities(t *testing.T) {
	_, h := newTestHandler(t, &stubBackend{})

	rec := get(t, h, http.MethodGet, "/v1/identity")
	require.Equal(t, http.StatusOK, rec.Code)
	var id telemetry.HostIdentity
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &id))
	assert.Equal(t, "node-1", id.Hostname)
	assert.Equal(t, telemetry.Unknown, id.CPUBrand)

	rec = get(t, h, http.MethodGet, "/v1/capabilities")
	require.Equal(t, http.StatusOK, rec.Code)
	var caps CapabilitiesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &caps))
	assert.Equal(t, "stub", caps.Backend)
	assert.True(t, caps.Capabilities.Terminate)
}

func TestSnapshot(t *testing.T) {
	_, h := newTestHandler(t, &stubBackend{})

	rec := get(t, h, http.MethodGet, "/v1/snapshot?interval=1ms")
	require.Equal(t, http.StatusOK, rec.Code)

	var snap snapshotter.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, "v1.2.3", snap.Metadata["version"])
	assert.Equal(t, "stub", snap.Metadata["backend"])
	assert.Len(t, snap.Processes, 3)
	require.NotEmpty(t, snap.Diagnostics)
	assert.Equal(t, "swap", snap.Diagnostics[0].Field)

	rec = get(t, h, http.MethodGet, "/v1/snapshot?interval=1h")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSnapshotDiagnosticsAreScopedToRequest(t *testing.T) {
	sb := &stubBackend{}
	_, h := newTestHandler(t, sb)

	// A field reported by an earlier query must not show up in a later
	// snapshot that read it successfully.
	require.Equal(t, http.StatusOK, get(t, h, http.MethodGet, "/v1/resources").Code)
	sb.quiet = true

	rec := get(t, h, http.MethodGet, "/v1/snapshot")
	require.Equal(t, http.StatusOK, rec.Code)
	var snap snapshotter.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Empty(t, snap.Diagnostics)

	sb.quiet = false
	for range 2 {
		rec = get(t, h, http.MethodGet, "/v1/snapshot")
		require.Equal(t, http.StatusOK, rec.Code)
		snap = snapshotter.Snapshot{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
		require.Len(t, snap.Diagnostics, 1)
		assert.Equal(t, "swap", snap.Diagnostics[0].Field)
	}
}

func TestTerminate(t *testing.T) {
	sb := &stubBackend{}
	_, h := newTestHandler(t, sb)

	rec := get(t, h, http.MethodPost, "/v1/processes/4242/terminate")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp TerminateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, TerminateResponse{PID: 4242, Terminated: true}, resp)
	assert.Equal(t, []uint32{4242}, sb.terminated)

	rec = get(t, h, http.MethodPost, "/v1/processes/0/terminate")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Terminated)

	for _, bad := range []string{"abc", "-1", "4294967296"} {
		rec = get(t, h, http.MethodPost, "/v1/processes/"+bad+"/terminate")
		assert.Equal(t, http.StatusBadRequest, rec.Code, bad)
	}

	// Only POST is routed; the catch-all root answers anything else.
	rec = get(t, h, http.MethodGet, "/v1/processes/1/terminate")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, []uint32{4242}, sb.terminated)
}

func TestNewServerExposesHostMetrics(t *testing.T) {
	cfg := config.Default()
	s := NewServer(cfg, server.WithLogger(logging.Discard()))

	rec := get(t, s.Handler(), http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "hostprobe_host_info")
	assert.Contains(t, rec.Body.String(), "hostprobe_processes")
}

func TestConstants(t *testing.T) {
	assert.Equal(t, "hostprobed", name)
	assert.Equal(t, "dev", versionDefault)
	assert.NotEmpty(t, commit)
	assert.NotEmpty(t, date)
}
