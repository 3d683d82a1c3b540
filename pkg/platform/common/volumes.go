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

package common

import (
	"context"

	"github.com/shirou/gopsutil/v4/disk"

	"github.com/NVIDIA/hostprobe/pkg/telemetry"
)

// UsageFunc reports capacity of the filesystem mounted at path.
type UsageFunc func(ctx context.Context, path string) (*disk.UsageStat, error)

// VolumesFromPartitions sizes each partition with usage. Partitions that
// cannot be sized are skipped and a device mounted twice is reported once.
func VolumesFromPartitions(ctx context.Context, parts []disk.PartitionStat, usage UsageFunc) []telemetry.VolumeUsage {
	out := []telemetry.VolumeUsage{}
	seen := make(map[string]bool, len(parts))

	for _, p := range parts {
		if seen[p.Device] {
			continue
		}
		u, err := usage(ctx, p.Mountpoint)
		if err != nil || u == nil {
			continue
		}
		seen[p.Device] = true

		avail := min(u.Free, u.Total)
		out = append(out, telemetry.VolumeUsage{
			Name:       p.Device,
			MountPoint: p.Mountpoint,
			Total:      u.Total,
			Used:       telemetry.UsedFromAvailable(u.Total, avail),
			Available:  avail,
		})
	}

	return out
}
