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

// Package platform selects the telemetry backend for the running operating
// system.
//
// Each supported OS has its own subpackage translating native sources into
// the telemetry schema:
//
//   - linux: procfs and sysfs
//   - darwin: sysctl and gopsutil
//   - windows: Win32, NT native and registry APIs
//
// The choice is made at build time through build-tagged files, so a binary
// contains exactly one native backend. Other platforms get Unsupported,
// which returns empty values instead of failing.
//
// Usage:
//
//	cache := cpusample.New()
//	b := platform.New(
//	    platform.WithCPUCache(cache),
//	    platform.WithLogger(slog.Default()),
//	)
//	res := b.SampleResources(ctx)
package platform
