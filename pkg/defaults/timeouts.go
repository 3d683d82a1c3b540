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

package defaults

import "time"

// Sampling intervals.
const (
	// CPUSampleThrottle is the minimum interval between two OS reads of the
	// CPU counters. Requests within the interval get the previous result.
	CPUSampleThrottle = 400 * time.Millisecond

	// MinCPUSampleThrottle is the smallest throttle accepted from configuration.
	MinCPUSampleThrottle = 50 * time.Millisecond
)

// Collector timeouts for data collection operations.
const (
	// CollectorTimeout is the default timeout for collector operations.
	// Collectors should respect parent context deadlines when shorter.
	CollectorTimeout = 10 * time.Second
)

// Handler timeouts for HTTP request processing.
const (
	// QueryHandlerTimeout is the timeout for single telemetry queries.
	QueryHandlerTimeout = 15 * time.Second

	// SnapshotHandlerTimeout is the timeout for full snapshot requests.
	// Longer than a single query since all collectors run.
	SnapshotHandlerTimeout = 30 * time.Second
)

// Server timeouts for HTTP server configuration.
const (
	// ServerReadTimeout is the maximum duration for reading request headers.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	ServerWriteTimeout = 30 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second
)

// Server limits.
const (
	// ServerRateLimit is the default number of requests per second.
	ServerRateLimit = 100

	// ServerRateLimitBurst is the default burst size.
	ServerRateLimitBurst = 200

	// ServerMaxBulkRequests caps concurrent handler executions.
	ServerMaxBulkRequests = 32

	// ServerPort is the default listen port.
	ServerPort = 8080
)

// ConfigMap timeouts for Kubernetes ConfigMap operations.
const (
	// ConfigMapWriteTimeout is the timeout for writing to ConfigMaps.
	ConfigMapWriteTimeout = 30 * time.Second
)

// CLI timeouts for command-line operations.
const (
	// CLISnapshotTimeout is the default timeout for snapshot operations.
	CLISnapshotTimeout = 2 * time.Minute
)
