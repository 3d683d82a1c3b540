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

// Package collector is the public entry point for host telemetry.
//
// # Overview
//
// A Collector delegates to the platform backend compiled in for the running
// OS and owns the CPU sampling state shared by every call:
//
//	c := collector.New(collector.WithLogger(slog.Default()))
//	procs := c.ListProcesses(ctx)
//	res := c.SampleResources(ctx)
//	id := c.ReadIdentity(ctx)
//	ok := c.Terminate(pid)
//
// Package-level functions of the same names use a process-wide Collector
// returned by Default.
//
// # Failure Model
//
// No call returns an error. Fields that cannot be read keep their zero or
// Unknown value. Register a diagnostics callback to learn which fields fell
// back:
//
//	c := collector.New(collector.WithDiagnostics(func(se *errors.StructuredError) {
//	    slog.Warn("telemetry field unavailable", "field", se.Context["field"])
//	}))
//
// # CPU Sampling
//
// CPU utilization is derived from two counter reads. The first
// SampleResources call records a baseline and reports 0; later calls report
// utilization since the previous read. Reads closer together than the
// throttle interval (400ms by default) return the cached values.
//
// # Factory Pattern
//
// The Factory interface abstracts backend creation for tests:
//
//	c := collector.New(collector.WithFactory(collector.FactoryFunc(
//	    func(opts ...platform.Option) platform.Backend { return fake },
//	)))
//
// # Prometheus
//
// NewPrometheusCollector exposes the same readings as gauges computed on
// scrape:
//
//	prometheus.MustRegister(collector.NewPrometheusCollector(c))
package collector
