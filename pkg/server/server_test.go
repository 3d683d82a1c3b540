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

package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/hostprobe/pkg/config"
	"github.com/NVIDIA/hostprobe/pkg/errors"
	"github.com/NVIDIA/hostprobe/pkg/logging"
)

func newTestServer(t *testing.T, opts ...Option) *Server {
	t.Helper()
	base := []Option{WithLogger(logging.Discard()), WithName("test"), WithVersion("v0.0.1")}
	return New(append(base, opts...)...)
}

func do(t *testing.T, h http.Handler, method, target string, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 200, cfg.RateLimitBurst)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestConfigFrom(t *testing.T) {
	c := config.Default()
	c.Server.Address = "127.0.0.1"
	c.Server.Port = 9191
	c.Server.RateLimit = 5
	c.Server.RateLimitBurst = 7
	c.Server.ShutdownTimeout = 3 * time.Second

	cfg := ConfigFrom(c)
	assert.Equal(t, "127.0.0.1:9191", cfg.Addr())
	assert.InDelta(t, 5.0, float64(cfg.RateLimit), 0)
	assert.Equal(t, 7, cfg.RateLimitBurst)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)

	assert.Equal(t, NewConfig(), ConfigFrom(nil))
}

func TestHealthAndReady(t *testing.T) {
	s := newTestServer(t)
	h := s.Handler()

	rec := do(t, h, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "not_ready", resp.Status)

	s.SetReady(true)
	rec = do(t, h, http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// The catch-all root route answers other methods.
	rec = do(t, h, http.MethodPost, "/health", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDefaultRouteListsRoutes(t *testing.T) {
	s := newTestServer(t, WithHandler(map[string]http.HandlerFunc{
		"GET /v1/b": func(http.ResponseWriter, *http.Request) {},
		"GET /v1/a": func(http.ResponseWriter, *http.Request) {},
	}))

	rec := do(t, s.Handler(), http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var info infoResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, "test", info.Name)
	assert.Equal(t, "v0.0.1", info.Version)
	assert.Equal(t, []string{"GET /v1/a", "GET /v1/b", "GET /health", "GET /ready", "GET /metrics"}, info.Routes)

	rec = do(t, s.Handler(), http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlerGetsMiddleware(t *testing.T) {
	var gotID, gotVersion string
	s := newTestServer(t, WithHandler(map[string]http.HandlerFunc{
		"GET /v1/echo": func(w http.ResponseWriter, r *http.Request) {
			gotID = RequestID(r.Context())
			gotVersion = APIVersion(r.Context())
			w.WriteHeader(http.StatusNoContent)
		},
	}))

	rec := do(t, s.Handler(), http.MethodGet, "/v1/echo", map[string]string{
		"Accept": "application/vnd.nvidia.hostprobe.v1+json",
	})
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "v1", gotVersion)
	assert.Equal(t, "v1", rec.Header().Get("X-API-Version"))
	_, err := uuid.Parse(gotID)
	assert.NoError(t, err)
	assert.Equal(t, gotID, rec.Header().Get("X-Request-Id"))
	assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Limit"))
}

func TestMetricsEndpointUsesGatherer(t *testing.T) {
	reg := prometheus.NewRegistry()
	g := prometheus.NewGauge(prometheus.GaugeOpts{Name: "hostprobe_test_gauge", Help: "test"})
	reg.MustRegister(g)
	g.Set(42)

	s := newTestServer(t, WithGatherer(reg))
	rec := do(t, s.Handler(), http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "hostprobe_test_gauge 42")
}

func TestWithConfigCopies(t *testing.T) {
	cfg := NewConfig()
	cfg.Port = 0
	s := New(WithConfig(cfg), WithName("copy"))
	assert.Equal(t, "server", cfg.Name)
	assert.Equal(t, "copy", s.config.Name)
}

func TestStartAndShutdown(t *testing.T) {
	cfg := NewConfig()
	cfg.Address = "127.0.0.1"
	cfg.Port = 0

	ready := make(chan struct{})
	var stopped bool
	s := newTestServer(t,
		WithConfig(cfg),
		WithOnReady(func() { close(ready) }),
		WithOnShutdown(func() { stopped = true }),
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	select {
	case <-ready:
	case <-time.After(5 * time.Second):
		t.Fatal("server did not become ready")
	}
	require.NotNil(t, s.Addr())
	assert.True(t, s.IsReady())

	resp, err := http.Get(fmt.Sprintf("http://%s/health", s.Addr().String()))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.False(t, s.IsReady())
	assert.True(t, stopped)
}

func TestStartListenError(t *testing.T) {
	cfg := NewConfig()
	cfg.Address = "127.0.0.1"
	cfg.Port = 70000
	s := newTestServer(t, WithConfig(cfg))
	err := s.Start(context.Background())
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "failed to listen"))
}

func TestWriteErrorFromErr(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	rec := httptest.NewRecorder()
	WriteErrorFromErr(rec, req, errors.WrapWithContext(errors.ErrCodeInvalidRequest,
		"bad pid", fmt.Errorf("parse failure"), map[string]any{"pid": "x"}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_REQUEST", resp.Code)
	assert.Equal(t, "bad pid", resp.Message)
	assert.Equal(t, "x", resp.Details["pid"])
	assert.Equal(t, "parse failure", resp.Details["error"])
	assert.False(t, resp.Retryable)
	assert.NotEmpty(t, resp.RequestID)

	rec = httptest.NewRecorder()
	WriteErrorFromErr(rec, req, fmt.Errorf("boom"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "INTERNAL", resp.Code)
	assert.True(t, resp.Retryable)
}

func TestHTTPStatusFromCode(t *testing.T) {
	tests := []struct {
		code errors.ErrorCode
		want int
	}{
		{errors.ErrCodeInvalidRequest, http.StatusBadRequest},
		{errors.ErrCodeUnauthorized, http.StatusUnauthorized},
		{errors.ErrCodeNotFound, http.StatusNotFound},
		{errors.ErrCodeMethodNotAllowed, http.StatusMethodNotAllowed},
		{errors.ErrCodeRateLimitExceeded, http.StatusTooManyRequests},
		{errors.ErrCodeUnavailable, http.StatusServiceUnavailable},
		{errors.ErrCodeUnsupported, http.StatusNotImplemented},
		{errors.ErrCodeTimeout, http.StatusGatewayTimeout},
		{errors.ErrCodeInternal, http.StatusInternalServerError},
		{errors.ErrorCode("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatusFromCode(tt.code))
		})
	}

	assert.True(t, RetryableFromCode(errors.ErrCodeTimeout))
	assert.False(t, RetryableFromCode(errors.ErrCodeNotFound))
}
