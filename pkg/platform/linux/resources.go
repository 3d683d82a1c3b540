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

//go:build linux

package linux

import (
	"context"
	"sort"
	"strings"

	"github.com/prometheus/procfs"
	"github.com/prometheus/procfs/sysfs"

	"github.com/NVIDIA/hostprobe/pkg/cpusample"
	"github.com/NVIDIA/hostprobe/pkg/telemetry"
)

const kib = 1024

// pseudo filesystems backed by a /dev node that carry no user data.
var skippedFSTypes = map[string]bool{
	"squashfs": true,
	"iso9660":  true,
}

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

	fs, err := b.procFS()
	if err != nil {
		b.opts.Report(Name, "resources", err)
		return res
	}

	b.readMemory(fs, &res)
	res.Volumes = b.readVolumes(fs)
	res.Network = b.readNetwork(fs)

	return res
}

// CPUCounters reads per-core busy/total time from /proc/stat, ordered by
// core index. Times are in milliseconds.
func (b *Backend) CPUCounters(_ context.Context) ([]cpusample.Counter, error) {
	fs, err := b.procFS()
	if err != nil {
		return nil, err
	}
	st, err := fs.Stat()
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(st.CPU))
	for id := range st.CPU {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]cpusample.Counter, 0, len(ids))
	for _, id := range ids {
		out = append(out, counter(st.CPU[id]))
	}
	return out, nil
}

func counter(c procfs.CPUStat) cpusample.Counter {
	busy := c.User + c.Nice + c.System + c.IRQ + c.SoftIRQ + c.Steal
	total := busy + c.Idle + c.Iowait
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

func (b *Backend) readMemory(fs procfs.FS, res *telemetry.ResourceSnapshot) {
	mi, err := fs.Meminfo()
	if err != nil {
		b.opts.Report(Name, "memory", err)
		return
	}

	res.MemoryTotal = kb(mi.MemTotal)
	if mi.MemAvailable != nil {
		res.MemoryAvailable = kb(mi.MemAvailable)
	} else {
		// kernels before 3.14 have no MemAvailable
		res.MemoryAvailable = kb(mi.MemFree) + kb(mi.Buffers) + kb(mi.Cached)
	}
	res.MemoryAvailable = min(res.MemoryAvailable, res.MemoryTotal)
	res.MemoryUsed = telemetry.UsedFromAvailable(res.MemoryTotal, res.MemoryAvailable)

	res.SwapTotal = kb(mi.SwapTotal)
	res.SwapFree = min(kb(mi.SwapFree), res.SwapTotal)
	res.SwapUsed = telemetry.UsedFromAvailable(res.SwapTotal, res.SwapFree)
}

func kb(v *uint64) uint64 {
	if v == nil {
		return 0
	}
	return *v * kib
}

// readVolumes lists block-device backed mounts from /proc/self/mountinfo.
// A device mounted more than once is reported at its first mount point.
func (b *Backend) readVolumes(fs procfs.FS) []telemetry.VolumeUsage {
	out := []telemetry.VolumeUsage{}

	self, err := fs.Self()
	if err != nil {
		b.opts.Report(Name, "volumes", err)
		return out
	}
	mounts, err := self.MountInfo()
	if err != nil {
		b.opts.Report(Name, "volumes", err)
		return out
	}

	seen := make(map[string]bool)
	for _, m := range mounts {
		if !strings.HasPrefix(m.Source, "/dev/") || skippedFSTypes[m.FSType] {
			continue
		}
		if seen[m.Source] {
			continue
		}

		total, avail, err := b.statfs(m.MountPoint)
		if err != nil {
			b.opts.Logger.Debug("skipping unreadable mount", "mountPoint", m.MountPoint, "error", err)
			continue
		}
		seen[m.Source] = true

		avail = min(avail, total)
		out = append(out, telemetry.VolumeUsage{
			Name:       m.Source,
			MountPoint: m.MountPoint,
			Total:      total,
			Used:       telemetry.UsedFromAvailable(total, avail),
			Available:  avail,
		})
	}

	return out
}

// readNetwork sums /proc/net/dev counters over non-loopback interfaces that
// sysfs reports as up.
func (b *Backend) readNetwork(fs procfs.FS) telemetry.NetworkCounters {
	var n telemetry.NetworkCounters

	dev, err := fs.NetDev()
	if err != nil {
		b.opts.Report(Name, "network", err)
		return n
	}

	up, err := b.upInterfaces()
	if err != nil {
		b.opts.Report(Name, "network.operstate", err)
	}

	for name, line := range dev {
		if name == loopback {
			continue
		}
		if up != nil && !up[name] {
			continue
		}
		n.Add(telemetry.NetworkCounters{
			BytesSent:       line.TxBytes,
			BytesReceived:   line.RxBytes,
			PacketsSent:     line.TxPackets,
			PacketsReceived: line.RxPackets,
		})
	}

	return n
}

// upInterfaces returns the interfaces whose operstate is up. Virtual
// interfaces without carrier detection report "unknown" and count as up.
// A nil map means operstate could not be read.
func (b *Backend) upInterfaces() (map[string]bool, error) {
	sfs, err := sysfs.NewFS(b.sysRoot)
	if err != nil {
		return nil, err
	}
	class, err := sfs.NetClass()
	if err != nil {
		return nil, err
	}

	up := make(map[string]bool, len(class))
	for name, iface := range class {
		switch iface.OperState {
		case "up", "unknown":
			up[name] = true
		}
	}
	return up, nil
}
