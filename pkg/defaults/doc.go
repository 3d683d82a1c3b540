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

// Package defaults provides centralized configuration constants for hostprobe.
//
// This package defines sampling intervals, timeout values and server limits
// used across the codebase.
//
// # Categories
//
//   - Sampling: CPU counter throttle interval
//   - Collector timeouts: For host data collection operations
//   - Handler timeouts: For HTTP request processing
//   - Server timeouts and limits: For HTTP server configuration
//   - ConfigMap and CLI timeouts: For snapshot output
//
// # Usage
//
//	import "github.com/NVIDIA/hostprobe/pkg/defaults"
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.CollectorTimeout)
//	defer cancel()
//
// # Guidelines
//
//   - CPU sampling: 400ms, long enough for a meaningful counter delta
//   - Collectors: 10s default, respects parent context deadline
//   - HTTP handlers: 15s for queries, 30s for snapshots
//   - Server shutdown: 30s for graceful shutdown
package defaults
