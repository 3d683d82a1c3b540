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

// Package version parses and compares dotted version numbers such as OS and
// kernel releases.
//
// Versions carry a precision (1, 2 or 3 components). Comparisons only look at
// the components both sides specify, so a minimum of "5.15" accepts any
// 5.15.x release:
//
//	kernel, err := version.ParseKernelRelease("6.8.0-45-generic")
//	minimum := version.MustParseVersion("5.15")
//	ok := kernel.Compare(minimum) >= 0
//
// Kernel releases differ per OS ("6.8.0-45-generic" on Linux, "23.4.0" on
// macOS, "10.0.22631.3447" on Windows). ParseKernelRelease keeps the first
// three numeric components and stores the remainder in Extras.
package version
