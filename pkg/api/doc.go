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

// Package api wires the host collector into the hostprobed HTTP server.
//
// # Usage
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := api.Serve(ctx, cfg); err != nil {
//	    log.Fatal(err)
//	}
//
// # Endpoints
//
//	GET  /v1/processes?sort=cpu|memory|pid|name&limit=N
//	POST /v1/processes/{pid}/terminate
//	GET  /v1/resources
//	GET  /v1/identity
//	GET  /v1/capabilities
//	GET  /v1/snapshot?interval=1s
//
// Every endpoint accepts ?format=json|yaml|table. Health, readiness and
// Prometheus metrics are served by pkg/server; /metrics includes the host
// gauges of collector.PrometheusCollector.
//
// When started by systemd with Type=notify, the server sends READY=1 once
// it listens and STOPPING=1 when graceful shutdown begins.
package api
