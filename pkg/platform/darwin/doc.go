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

// Package darwin reads host telemetry on macOS.
//
// Processes, CPU ticks, memory, swap, volumes and network counters come from
// gopsutil, which wraps libproc, host_processor_info and getfsstat. Host
// identity comes straight from sysctl(3): kern.osproductversion,
// kern.osrelease, machdep.cpu.brand_string, hw.logicalcpu, hw.memsize and
// kern.boottime.
//
// Per-core busy time is user+nice+system; total adds idle.
package darwin
