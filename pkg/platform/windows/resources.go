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

//go:build windows

package windows

import (
	"context"

	win "golang.org/x/sys/windows"

	"github.com/NVIDIA/hostprobe/pkg/cpusample"
	"github.com/NVIDIA/hostprobe/pkg/platform/common"
	"github.com/NVIDIA/hostprobe/pkg/telemetry"
)

// SampleResources reads CPU, memory, swap, volume and network counters.
func (b *Backend) SampleResources(ctx context.Context) telemetry.ResourceSnapshot {
	res := telemetry.ResourceSnapshot{
		PerCorePercent: []float64{},
		Volumes:        []telemetry.VolumeUsage{},
	}

	s, err := b.opts.Cache.Sample(ctx, b.CPUCounters)
	if err != nil {
		b.opts.Report(Name, "cpu", err)
	}
	res.CPUPercent = s.Aggregate
	res.PerCorePercent = s.PerCore

	if ms, err := globalMemoryStatus(); err == nil {
		ms.apply(&res)
	} else {
		b.opts.Report(Name, "memory", err)
	}

	res.Volumes = b.readVolumes()

	if stats, err := b.netIO(ctx, true); err == nil {
		ifaces, err := b.interfaces()
		if err != nil {
			b.opts.Report(Name, "network.flags", err)
			ifaces = nil
		}
		res.Network = common.SumNetwork(stats, ifaces)
	} else {
		b.opts.Report(Name, "network", err)
	}

	return res
}

// CPUCounters reads per-processor kernel, user and idle time in 100ns units.
func (b *Backend) CPUCounters(_ context.Context) ([]cpusample.Counter, error) {
	times, err := queryProcessorTimes()
	if err != nil {
		return nil, err
	}
	out := make([]cpusample.Counter, 0, len(times))
	for _, t := range times {
		out = append(out, t.counter())
	}
	return out, nil
}

// readVolumes sizes every fixed and removable drive letter. Drives without
// media fail GetDiskFreeSpaceEx and are skipped.
func (b *Backend) readVolumes() []telemetry.VolumeUsage {
	out := []telemetry.VolumeUsage{}

	mask, err := win.GetLogicalDrives()
	if err != nil {
		b.opts.Report(Name, "volumes", err)
		return out
	}

	for i := 0; i < 26; i++ {
		if mask&(1<<uint(i)) == 0 {
			continue
		}
		root := driveRoot(i)
		p, err := win.UTF16PtrFromString(root)
		if err != nil {
			continue
		}
		switch win.GetDriveType(p) {
		case win.DRIVE_FIXED, win.DRIVE_REMOVABLE:
		default:
			continue
		}

		var availToCaller, total, free uint64
		if err := win.GetDiskFreeSpaceEx(p, &availToCaller, &total, &free); err != nil {
			b.opts.Logger.Debug("skipping unreadable drive", "drive", root, "error", err)
			continue
		}

		avail := min(free, total)
		out = append(out, telemetry.VolumeUsage{
			Name:       root[:2],
			MountPoint: root,
			Total:      total,
			Used:       telemetry.UsedFromAvailable(total, avail),
			Available:  avail,
		})
	}

	return out
}
