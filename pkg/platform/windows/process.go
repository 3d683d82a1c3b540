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
	"time"
	"unsafe"

	win "golang.org/x/sys/windows"

	"github.com/NVIDIA/hostprobe/pkg/cpusample"
	"github.com/NVIDIA/hostprobe/pkg/telemetry"
)

// ListProcesses walks a toolhelp process snapshot. Fields that need a
// process handle fall back to zero when access is denied.
func (b *Backend) ListProcesses(ctx context.Context) []telemetry.ProcessSnapshot {
	snap, err := win.CreateToolhelp32Snapshot(win.TH32CS_SNAPPROCESS, 0)
	if err != nil {
		b.opts.Report(Name, "processes", err)
		return []telemetry.ProcessSnapshot{}
	}
	defer win.CloseHandle(snap)

	var entry win.ProcessEntry32
	entry.Size = uint32(unsafe.Sizeof(entry))

	out := []telemetry.ProcessSnapshot{}
	times := []cpusample.ProcessTime{}

	for err = win.Process32First(snap, &entry); err == nil; err = win.Process32Next(snap, &entry) {
		if ctx.Err() != nil {
			break
		}

		ps := telemetry.ProcessSnapshot{
			PID:     entry.ProcessID,
			Name:    win.UTF16ToString(entry.ExeFile[:]),
			Command: "",
			Status:  telemetry.StatusRunning,
		}
		if entry.ParentProcessID != 0 {
			ppid := entry.ParentProcessID
			ps.ParentPID = &ppid
		}

		var created uint64
		var cpu time.Duration
		if info, ok := queryProcess(entry.ProcessID); ok {
			ps.Command = info.image
			created = info.created
			cpu = info.cpu
			if info.startUnix > 0 {
				ps.StartTime = uint64(info.startUnix)
			}
		}
		if ps.Command == "" {
			ps.Command = ps.Name
		}

		if ws, err := b.workingSet(ctx, entry.ProcessID); err == nil {
			ps.MemoryBytes = ws
		}

		out = append(out, ps)
		times = append(times, cpusample.ProcessTime{
			Key: cpusample.ProcessKey{PID: ps.PID, StartTime: created},
			CPU: cpu,
		})
	}

	pct := b.opts.Tracker.Observe(times)
	for i := range out {
		out[i].CPUPercent = pct[times[i].Key]
	}

	return out
}

type processInfo struct {
	image     string
	created   uint64
	startUnix int64
	cpu       time.Duration
}

// queryProcess opens pid with limited query rights, which works for most
// processes of other users but not for protected ones.
func queryProcess(pid uint32) (processInfo, bool) {
	if pid == 0 {
		return processInfo{}, false
	}
	h, err := win.OpenProcess(win.PROCESS_QUERY_LIMITED_INFORMATION, false, pid)
	if err != nil {
		return processInfo{}, false
	}
	defer win.CloseHandle(h)

	var info processInfo

	buf := make([]uint16, win.MAX_LONG_PATH)
	size := uint32(len(buf))
	if err := win.QueryFullProcessImageName(h, 0, &buf[0], &size); err == nil {
		info.image = win.UTF16ToString(buf[:size])
	}

	var creation, exit, kernel, user win.Filetime
	if err := win.GetProcessTimes(h, &creation, &exit, &kernel, &user); err == nil {
		info.created = filetimeTicks(creation.HighDateTime, creation.LowDateTime)
		info.startUnix = creation.Nanoseconds() / int64(time.Second)
		ticks := filetimeTicks(kernel.HighDateTime, kernel.LowDateTime) +
			filetimeTicks(user.HighDateTime, user.LowDateTime)
		info.cpu = time.Duration(ticks) * 100
	}

	return info, true
}
