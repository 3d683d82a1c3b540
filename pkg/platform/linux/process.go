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
	"math"
	"strings"
	"time"

	"github.com/prometheus/procfs"

	"github.com/NVIDIA/hostprobe/pkg/cpusample"
	"github.com/NVIDIA/hostprobe/pkg/telemetry"
)

var stateLabels = map[string]string{
	"R": telemetry.StatusRunning,
	"S": telemetry.StatusSleeping,
	"D": telemetry.StatusDiskSleep,
	"Z": telemetry.StatusZombie,
	"T": telemetry.StatusStopped,
	"t": telemetry.StatusTracing,
	"X": telemetry.StatusDead,
	"x": telemetry.StatusDead,
	"I": telemetry.StatusIdle,
}

// statusLabel maps a /proc/<pid>/stat state letter to its label.
func statusLabel(state string) string {
	if l, ok := stateLabels[state]; ok {
		return l
	}
	return telemetry.StatusUnknown
}

// ListProcesses enumerates /proc. Processes that exit or deny access while
// being read are left out.
func (b *Backend) ListProcesses(ctx context.Context) []telemetry.ProcessSnapshot {
	fs, err := b.procFS()
	if err != nil {
		b.opts.Report(Name, "processes", err)
		return []telemetry.ProcessSnapshot{}
	}

	procs, err := fs.AllProcs()
	if err != nil {
		b.opts.Report(Name, "processes", err)
		return []telemetry.ProcessSnapshot{}
	}

	var bootTime uint64
	if st, err := fs.Stat(); err == nil {
		bootTime = st.BootTime
	} else {
		b.opts.Report(Name, "process.startTime", err)
	}

	out := make([]telemetry.ProcessSnapshot, 0, len(procs))
	times := make([]cpusample.ProcessTime, 0, len(procs))

	for _, p := range procs {
		if ctx.Err() != nil {
			break
		}

		stat, err := p.Stat()
		if err != nil {
			continue
		}
		if stat.PID < 0 || uint64(stat.PID) > math.MaxUint32 {
			continue
		}

		snap := telemetry.ProcessSnapshot{
			PID:         uint32(stat.PID),
			Name:        stat.Comm,
			Command:     command(p, stat.Comm),
			MemoryBytes: uint64(max(stat.ResidentMemory(), 0)),
			Status:      statusLabel(stat.State),
		}
		if stat.PPID > 0 && uint64(stat.PPID) <= math.MaxUint32 {
			ppid := uint32(stat.PPID)
			snap.ParentPID = &ppid
		}
		if bootTime > 0 {
			snap.StartTime = bootTime + stat.Starttime/userHZ
		}

		out = append(out, snap)
		times = append(times, cpusample.ProcessTime{
			Key: cpusample.ProcessKey{PID: snap.PID, StartTime: stat.Starttime},
			CPU: time.Duration(stat.CPUTime() * float64(time.Second)),
		})
	}

	pct := b.opts.Tracker.Observe(times)
	for i := range out {
		out[i].CPUPercent = pct[times[i].Key]
	}

	return out
}

// command returns the NUL-separated cmdline joined with spaces. Kernel
// threads have an empty cmdline and fall back to their name.
func command(p procfs.Proc, name string) string {
	args, err := p.CmdLine()
	if err != nil || len(args) == 0 {
		return name
	}
	return strings.Join(args, " ")
}
