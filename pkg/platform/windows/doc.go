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

// Package windows reads host telemetry from the Win32 and NT native APIs.
//
// Sources:
//
//   - processes: toolhelp snapshot, GetProcessTimes, QueryFullProcessImageName
//   - cpu: NtQuerySystemInformation(SystemProcessorPerformanceInformation)
//   - memory and swap: GlobalMemoryStatusEx
//   - volumes: GetLogicalDrives and GetDiskFreeSpaceEx
//   - network: GetIfEntry2 counters through gopsutil
//   - identity: registry, RtlGetVersion, GetTickCount64
//
// Raw struct layouts are decoded in decode.go, which builds on every platform
// so the layout handling is tested everywhere.
package windows
