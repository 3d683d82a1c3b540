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

//go:build darwin

package darwin

import (
	"context"

	"github.com/shirou/gopsutil/v4/cpu"

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

	if vm, err := b.memory(ctx); err == nil && vm != nil {
		res.MemoryTotal = vm.Total
		res.MemoryAvailable = min(vm.Available, vm.Total)
		res.MemoryUsed = telemetry.UsedFromAvailable(res.MemoryTotal, res.MemoryAvailable)
	} else {
		b.opts.Report(Name, "memory", err)
	}

	if sw, err := b.swap(ctx); err == nil && sw != nil {
		res.SwapTotal = sw.Total
		res.SwapFree = min(sw.Free, sw.Total)
		res.SwapUsed = telemetry.UsedFromAvailable(res.SwapTotal, res.SwapFree)
	} else {
		b.opts.Report(Name, "swap", err)
	}

	if parts, err := b.partitions(ctx, false); err == nil {
		res.Volumes = common.VolumesFromPartitions(ctx, parts, b.usage)
	} else {
		b.opts.Report(Name, "volumes", err)
	}

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

// CPUCounters reads per-core host processor load ticks, converted to
// milliseconds.
func (b *Backend) CPUCounters(ctx context.Context) ([]cpusample.Counter, error) {
	times, err := b.cpuTimes(ctx, true)
	if err != nil {
		return nil, err
	}
	out := make([]cpusample.Counter, 0, len(times))
	for _, t := range times {
		out = append(out, counter(t))
	}
	return out, nil
}

func counter(t cpu.TimesStat) cpusample.Counter {
	busy := t.User + t.Nice + t.System
	total := busy + t.Idle
	return cpusample.Counter{
		Busy:  millis(busy),
		Total: millis(total),
	}
}

func millis(seconds float64) uint64 {
	if seconds <= 0 {
		return 0
	}
	return uint64(seconds*1000 + 0.5)
}
