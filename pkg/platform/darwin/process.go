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
	"path/filepath"
	"time"

	"github.com/shirou/gopsutil/v4/process"

	"github.com/NVIDIA/hostprobe/pkg/cpusample"
	"github.com/NVIDIA/hostprobe/pkg/telemetry"
)

var statusLabels = map[string]string{
	process.Running: telemetry.StatusRunning,
	process.Sleep:   telemetry.StatusSleeping,
	process.Idle:    telemetry.StatusIdle,
	process.Stop:    telemetry.StatusStopped,
	process.Zombie:  telemetry.StatusZombie,
	process.Wait:    telemetry.StatusDiskSleep,
	process.Lock:    telemetry.StatusDiskSleep,
	process.Blocked: telemetry.StatusDiskSleep,
}

func statusLabel(states []string) string {
	if len(states) == 0 {
		return telemetry.StatusUnknown
	}
	if l, ok := statusLabels[states[0]]; ok {
		return l
	}
	return telemetry.StatusUnknown
}

// ListProcesses enumerates every pid the kernel reports. Processes without
// a readable name are left out; other fields fall back individually.
func (b *Backend) ListProcesses(ctx context.Context) []telemetry.ProcessSnapshot {
	procs, err := b.processes(ctx)
	if err != nil {
		b.opts.Report(Name, "processes", err)
		return []telemetry.ProcessSnapshot{}
	}

	out := make([]telemetry.ProcessSnapshot, 0, len(procs))
	times := make([]cpusample.ProcessTime, 0, len(procs))

	for _, p := range procs {
		if ctx.Err() != nil {
			break
		}
		if p.Pid < 0 {
			continue
		}

		snap, created, ok := snapshot(ctx, p)
		if !ok {
			continue
		}

		var cpuTime time.Duration
		if ts, err := p.TimesWithContext(ctx); err == nil {
			cpuTime = time.Duration((ts.User + ts.System) * float64(time.Second))
		}

		out = append(out, snap)
		times = append(times, cpusample.ProcessTime{
			Key: cpusample.ProcessKey{PID: snap.PID, StartTime: created},
			CPU: cpuTime,
		})
	}

	pct := b.opts.Tracker.Observe(times)
	for i := range out {
		out[i].CPUPercent = pct[times[i].Key]
	}

	return out
}

// snapshot reads one process. created is the creation time in milliseconds.
func snapshot(ctx context.Context, p *process.Process) (telemetry.ProcessSnapshot, uint64, bool) {
	exe, _ := p.ExeWithContext(ctx)

	name, err := p.NameWithContext(ctx)
	if err != nil || name == "" {
		if exe == "" {
			return telemetry.ProcessSnapshot{}, 0, false
		}
		name = filepath.Base(exe)
	}

	snap := telemetry.ProcessSnapshot{
		PID:    uint32(p.Pid),
		Name:   name,
		Status: telemetry.StatusUnknown,
	}

	snap.Command = exe
	if cmd, err := p.CmdlineWithContext(ctx); err == nil && cmd != "" {
		snap.Command = cmd
	}
	if snap.Command == "" {
		snap.Command = name
	}

	if ppid, err := p.PpidWithContext(ctx); err == nil && ppid > 0 {
		parent := uint32(ppid)
		snap.ParentPID = &parent
	}
	if mi, err := p.MemoryInfoWithContext(ctx); err == nil && mi != nil {
		snap.MemoryBytes = mi.RSS
	}
	if st, err := p.StatusWithContext(ctx); err == nil {
		snap.Status = statusLabel(st)
	}

	var created uint64
	if ms, err := p.CreateTimeWithContext(ctx); err == nil && ms > 0 {
		created = uint64(ms)
		snap.StartTime = created / 1000
	}

	return snap, created, true
}
