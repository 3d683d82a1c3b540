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

// Package server implements the hostprobed HTTP frontend.
//
// The server is generic over its API routes: callers pass handlers keyed by
// net/http ServeMux patterns and the server wraps each one in its middleware
// chain:
//
//   - Prometheus RED metrics (hostprobe_http_*)
//   - API version negotiation (Accept: application/vnd.nvidia.hostprobe.v1+json)
//   - Request ID tracking via X-Request-Id
//   - Panic recovery
//   - Token bucket rate limiting (golang.org/x/time/rate)
//   - A cap on concurrently running handlers
//   - Debug request logging
//
// GET /health, GET /ready and GET /metrics are served outside the chain so
// probes and scrapes are never rate limited.
//
// # Usage
//
//	s := server.New(
//	    server.WithConfig(server.ConfigFrom(cfg)),
//	    server.WithName("hostprobed"),
//	    server.WithVersion(version),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "GET /v1/identity": h.Identity,
//	    }),
//	)
//	if err := s.Run(ctx); err != nil {
//	    return err
//	}
//
// # Errors
//
// Failed requests return an ErrorResponse. WriteErrorFromErr derives the
// status from the structured error code, so handlers can return errors from
// pkg/errors unchanged.
package server
