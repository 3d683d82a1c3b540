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

package telemetry

import "math"

// ClampPercent bounds p to [0,100]. NaN and infinities map to 0 and 100.
func ClampPercent(p float64) float64 {
	switch {
	case math.IsNaN(p), p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return p
	}
}

// Percent returns 100*part/whole clamped to [0,100], or 0 when whole is 0.
func Percent(part, whole uint64) float64 {
	if whole == 0 {
		return 0
	}
	return ClampPercent(100 * float64(part) / float64(whole))
}

// UsedFromAvailable derives a "used" counter when the OS only reports total
// and available. An available value above total yields 0.
func UsedFromAvailable(total, available uint64) uint64 {
	if available >= total {
		return 0
	}
	return total - available
}

// SecondsSince returns now-then in whole seconds, or 0 when then is in the
// future.
func SecondsSince(now, then uint64) uint64 {
	if then > now {
		return 0
	}
	return now - then
}
