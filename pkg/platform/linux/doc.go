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

// Package linux reads host telemetry from procfs and sysfs.
//
// Sources:
//
//   - processes: /proc/<pid>/stat and /proc/<pid>/cmdline
//   - cpu: per-core jiffies from /proc/stat
//   - memory and swap: /proc/meminfo
//   - volumes: /proc/self/mountinfo sized with statfs(2)
//   - network: /proc/net/dev filtered by /sys/class/net/<iface>/operstate
//   - identity: os-release, uname(2), /proc/cpuinfo, /proc/stat btime
//
// Per-core busy time is user+nice+system+irq+softirq+steal and total time
// adds idle and iowait. Guest time is already part of user time and is not
// added again.
package linux
