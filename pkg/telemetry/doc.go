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

// Package telemetry defines the OS-independent schema every platform backend
// normalizes into.
//
// # Types
//
//   - ProcessSnapshot: one process from one enumeration
//   - ResourceSnapshot: CPU, memory, swap, volumes and network counters
//   - HostIdentity: OS, kernel, hostname, CPU brand, cores, memory, boot time
//   - Capabilities: which best-effort readings a backend computes
//
// # Units
//
// Memory and disk values are bytes, percentages are float64 in [0,100],
// timestamps are Unix seconds and process identifiers are host-local uint32
// values with no meaning on another host.
//
// All values are fresh per call. A zero or Unknown field means the value could
// not be read; callers should consult Capabilities before treating a zero as a
// measurement.
package telemetry
