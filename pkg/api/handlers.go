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
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/NVIDIA/hostprobe/pkg/collector"
	"github.com/NVIDIA/hostprobe/pkg/defaults"
	"github.com/NVIDIA/hostprobe/pkg/errors"
	"github.com/NVIDIA/hostprobe/pkg/serializer"
	"github.com/NVIDIA/hostprobe/pkg/server"
	"github.com/NVIDIA/hostprobe/pkg/snapshotter"
	"github.com/NVIDIA/hostprobe/pkg/telemetry"
)

// maxSampleInterval bounds the ?interval= warm-up of GET /v1/snapshot.
const maxSampleInterval = 10 * time.Second

// Handler serves the hostprobe API on top of one shared Collector.
type Handler struct {
	collector       *collector.Collector
	fanout          *snapshotter.Fanout
	version         string
	queryTimeout    time.Duration
	snapshotTimeout time.Duration
	logger          *slog.Logger
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithVersion sets the version stamped into snapshot headers.
func WithVersion(v string) HandlerOption {
	return func(h *Handler) {
		h.version = v
	}
}

// WithFanout sets the diagnostics fan-out registered with the collector.
// Each snapshot request subscribes its own Recorder to it.
func WithFanout(f *snapshotter.Fanout) HandlerOption {
	return func(h *Handler) {
		h.fanout = f
	}
}

// WithQueryTimeout bounds the processes, resources and identity handlers.
func WithQueryTimeout(d time.Duration) HandlerOption {
	return func(h *Handler) {
		if d > 0 {
			h.queryTimeout = d
		}
	}
}

// WithLogger sets the handler logger.
func WithLogger(l *slog.Logger) HandlerOption {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// NewHandler returns a Handler backed by c.
func NewHandler(c *collector.Collector, opts ...HandlerOption) *Handler {
	h := &Handler{
		collector:       c,
		queryTimeout:    defaults.QueryHandlerTimeout,
		snapshotTimeout: defaults.SnapshotHandlerTimeout,
		logger:          slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes returns the API routes keyed by ServeMux pattern.
func (h *Handler) Routes() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"GET /v1/processes":                  h.Processes,
		"POST /v1/processes/{pid}/terminate": h.Terminate,
		"GET /v1/resources":                  h.Resources,
		"GET /v1/identity":                   h.Identity,
		"GET /v1/capabilities":               h.Capabilities,
		"GET /v1/snapshot":                   h.Snapshot,
	}
}

// Processes handles GET /v1/processes?sort=cpu&limit=10.
func (h *Handler) Processes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit, err := parseLimit(q.Get("limit"))
	if err != nil {
		server.WriteErrorFromErr(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.queryTimeout)
	defer cancel()

	procs := telemetry.ProcessList(h.collector.ListProcesses(ctx))
	if err := procs.SortBy(q.Get("sort")); err != nil {
		server.WriteErrorFromErr(w, r, err)
		return
	}
	if h.timedOut(ctx, w, r, "processes") {
		return
	}

	h.respond(w, r, procs.Limit(limit))
}

// Resources handles GET /v1/resources.
func (h *Handler) Resources(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.queryTimeout)
	defer cancel()

	res := h.collector.SampleResources(ctx)
	if h.timedOut(ctx, w, r, "resources") {
		return
	}
	h.respond(w, r, res)
}

// Identity handles GET /v1/identity.
func (h *Handler) Identity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.queryTimeout)
	defer cancel()

	id := h.collector.ReadIdentity(ctx)
	if h.timedOut(ctx, w, r, "identity") {
		return
	}
	h.respond(w, r, id)
}

// CapabilitiesResponse names the active backend and what it computes.
type CapabilitiesResponse struct {
	Backend      string                 `json:"backend" yaml:"backend"`
	Capabilities telemetry.Capabilities `json:"capabilities" yaml:"capabilities"`
}

// Capabilities handles GET /v1/capabilities.
func (h *Handler) Capabilities(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, CapabilitiesResponse{
		Backend:      h.collector.BackendName(),
		Capabilities: h.collector.Capabilities(),
	})
}

// Snapshot handles GET /v1/snapshot?interval=1s. The optional interval takes
// a CPU baseline first so the reported utilization covers that window;
// intervals below the collector's CPU throttle are raised to it.
func (h *Handler) Snapshot(w http.ResponseWriter, r *http.Request) {
	interval, err := parseInterval(r.URL.Query().Get("interval"))
	if err != nil {
		server.WriteErrorFromErr(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.snapshotTimeout)
	defer cancel()

	ns := &snapshotter.NodeSnapshotter{
		Version:        h.version,
		Collector:      h.collector,
		Fanout:         h.fanout,
		SampleInterval: interval,
	}

	snap, err := ns.Collect(ctx)
	if err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) {
			err = errors.Wrap(errors.ErrCodeTimeout, "snapshot collection timed out", err)
		}
		server.WriteErrorFromErr(w, r, err)
		return
	}

	h.respond(w, r, snap)
}

// TerminateResponse reports the outcome of a terminate request.
type TerminateResponse struct {
	PID        uint32 `json:"pid" yaml:"pid"`
	Terminated bool   `json:"terminated" yaml:"terminated"`
}

// Terminate handles POST /v1/processes/{pid}/terminate. The OS refusing the
// request is not an error: the response reports terminated=false.
func (h *Handler) Terminate(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("pid")
	pid, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		server.WriteErrorFromErr(w, r, errors.WrapWithContext(errors.ErrCodeInvalidRequest,
			"pid must be an unsigned 32-bit integer", err, map[string]any{"pid": raw}))
		return
	}

	ok := h.collector.Terminate(uint32(pid))
	h.logger.Info("terminate requested",
		"pid", pid,
		"terminated", ok,
		"requestID", server.RequestID(r.Context()))

	h.respond(w, r, TerminateResponse{PID: uint32(pid), Terminated: ok})
}

func (h *Handler) timedOut(ctx context.Context, w http.ResponseWriter, r *http.Request, part string) bool {
	if !stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
		return false
	}
	server.WriteErrorFromErr(w, r, errors.NewWithContext(errors.ErrCodeTimeout,
		fmt.Sprintf("%s collection timed out", part),
		map[string]any{"timeout": h.queryTimeout.String()}))
	return true
}

// respond writes v in the format chosen by ?format=, JSON by default.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Set("Cache-Control", "no-store")

	format := serializer.Format(strings.ToLower(r.URL.Query().Get("format")))
	if format == "" || format == serializer.FormatJSON {
		serializer.RespondJSON(w, http.StatusOK, v)
		return
	}
	if format.IsUnknown() {
		server.WriteErrorFromErr(w, r, errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("unknown format %q", format),
			map[string]any{"allowed": serializer.SupportedFormats()}))
		return
	}

	data, err := serializer.Marshal(format, v)
	if err != nil {
		server.WriteErrorFromErr(w, r, errors.Wrap(errors.ErrCodeInternal, "failed to serialize response", err))
		return
	}

	contentType := "text/plain; charset=utf-8"
	if format == serializer.FormatYAML {
		contentType = "application/yaml"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Warn("response write failed", "error", err)
	}
}

func parseLimit(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, errors.NewWithContext(errors.ErrCodeInvalidRequest,
			"limit must be a non-negative integer", map[string]any{"limit": s})
	}
	return n, nil
}

func parseInterval(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 || d > maxSampleInterval {
		return 0, errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("interval must be a duration between 0 and %s", maxSampleInterval),
			map[string]any{"interval": s})
	}
	return d, nil
}
