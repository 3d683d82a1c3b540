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

// Package cpusample derives CPU utilization from cumulative busy/total
// counters.
//
// No supported host exposes an instantaneous CPU percentage, so utilization is
// always computed from two reads separated in time:
//
//	percent = 100 * (busy_now - busy_prev) / (total_now - total_prev)
//
// # Cache
//
// Cache holds the last raw per-core vector and the last computed result. It
// throttles OS reads (400ms by default) so rapid polling returns the cached
// result instead of dividing by a near-zero interval:
//
//	cache := cpusample.New()
//	s, err := cache.Sample(ctx, backendReader)
//
// The first successful read is a baseline and reports 0. Counters that move
// backwards between two reads are treated as a reset: the affected core
// reports 0 for that interval. Only the overlapping prefix of cores is used
// when the core count changes.
//
// # ProcessTracker
//
// ProcessTracker applies the same technique per process, keyed by pid and
// start time, and normalizes by the number of logical cores.
package cpusample
