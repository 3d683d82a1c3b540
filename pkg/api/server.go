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
	"log/slog"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/NVIDIA/hostprobe/pkg/collector"
	"github.com/NVIDIA/hostprobe/pkg/config"
	"github.com/NVIDIA/hostprobe/pkg/errors"
	"github.com/NVIDIA/hostprobe/pkg/logging"
	"github.com/NVIDIA/hostprobe/pkg/server"
	"github.com/NVIDIA/hostprobe/pkg/snapshotter"
)

const (
	name           = "hostprobed"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/NVIDIA/hostprobe/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve configures logging from LOG_LEVEL, starts the API server and blocks
// until ctx is canceled or the process is signaled. A nil cfg uses
// config.Default().
func Serve(ctx context.Context, cfg *config.Config) error {
	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	return Run(ctx, cfg)
}

// Run is Serve without logger setup, for callers that already configured
// slog.
func Run(ctx context.Context, cfg *config.Config) error {
	s := NewServer(cfg)

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}

// NewServer wires a Collector, its Prometheus collector and the API routes
// into a server.Server without starting it.
func NewServer(cfg *config.Config, opts ...server.Option) *server.Server {
	if cfg == nil {
		cfg = config.Default()
	}

	fan := snapshotter.NewFanout()
	c := collector.New(
		collector.WithCPUThrottle(cfg.Collector.CPUThrottle),
		collector.WithDiagnostics(func(se *errors.StructuredError) {
			recordFieldUnavailable(se)
			fan.Record(se)
		}),
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collector.NewPrometheusCollector(c))

	h := NewHandler(c,
		WithVersion(version),
		WithFanout(fan),
		WithQueryTimeout(cfg.Collector.Timeout),
	)

	base := []server.Option{
		server.WithConfig(server.ConfigFrom(cfg)),
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(h.Routes()),
		server.WithGatherer(prometheus.Gatherers{reg, prometheus.DefaultGatherer}),
		server.WithOnReady(func() { sdNotify(daemon.SdNotifyReady) }),
		server.WithOnShutdown(func() { sdNotify(daemon.SdNotifyStopping) }),
	}

	return server.New(append(base, opts...)...)
}

// sdNotify reports state to systemd when running as a notify service. It is
// a no-op elsewhere.
func sdNotify(state string) {
	sent, err := daemon.SdNotify(false, state)
	if err != nil {
		slog.Warn("failed to notify service manager", "state", state, "error", err)
		return
	}
	if sent {
		slog.Debug("notified service manager", "state", state)
	}
}
