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

// Package config loads the hostprobe configuration.
//
// Values come from three layers, later ones winning:
//
//  1. Built-in defaults (see pkg/defaults)
//  2. A YAML file given with --config or HOSTPROBE_CONFIG
//  3. Environment overrides: HOSTPROBE_CPU_THROTTLE, PORT, SHUTDOWN_TIMEOUT_SECONDS
//
// Example file:
//
//	collector:
//	  cpuThrottle: 500ms
//	  timeout: 10s
//	server:
//	  port: 9100
//	  rateLimit: 50
//	  rateLimitBurst: 100
//	  shutdownTimeout: 15s
//	output:
//	  format: yaml
//
// Unknown keys are rejected. Validation failures are returned as
// INVALID_REQUEST structured errors carrying the offending field.
package config
