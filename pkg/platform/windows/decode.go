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

package windows

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/NVIDIA/hostprobe/pkg/cpusample"
	"github.com/NVIDIA/hostprobe/pkg/telemetry"
)

const (
	// processorPerformanceSize is sizeof(SYSTEM_PROCESSOR_PERFORMANCE_INFORMATION):
	// five LARGE_INTEGER times, a ULONG interrupt count and 4 bytes of padding.
	processorPerformanceSize = 48

	// memoryStatusExSize is sizeof(MEMORYSTATUSEX).
	memoryStatusExSize = 64

	// windows11Build is the first Windows 11 build number. Windows 11 keeps
	// reporting "Windows 10" in ProductName.
	windows11Build = 22000
)

// processorTimes is one decoded SYSTEM_PROCESSOR_PERFORMANCE_INFORMATION
// entry. Times are in 100ns units and KernelTime includes IdleTime.
type processorTimes struct {
	Idle   uint64
	Kernel uint64
	User   uint64
}

// counter converts processor times into busy/total time.
func (p processorTimes) counter() cpusample.Counter {
	busy := p.User
	if p.Kernel > p.Idle {
		busy += p.Kernel - p.Idle
	}
	return cpusample.Counter{
		Busy:  busy,
		Total: p.Kernel + p.User,
	}
}

// decodeProcessorTimes decodes the NtQuerySystemInformation
// SystemProcessorPerformanceInformation buffer. Trailing partial entries
// are ignored.
func decodeProcessorTimes(buf []byte) []processorTimes {
	n := len(buf) / processorPerformanceSize
	out := make([]processorTimes, 0, n)
	for i := 0; i < n; i++ {
		e := buf[i*processorPerformanceSize:]
		out = append(out, processorTimes{
			Idle:   clampInt64(binary.LittleEndian.Uint64(e[0:8])),
			Kernel: clampInt64(binary.LittleEndian.Uint64(e[8:16])),
			User:   clampInt64(binary.LittleEndian.Uint64(e[16:24])),
		})
	}
	return out
}

// clampInt64 treats a LARGE_INTEGER with the sign bit set as 0.
func clampInt64(v uint64) uint64 {
	if v > 1<<63-1 {
		return 0
	}
	return v
}

// memoryStatus holds the MEMORYSTATUSEX fields hostprobe reports.
type memoryStatus struct {
	TotalPhys     uint64
	AvailPhys     uint64
	TotalPageFile uint64
	AvailPageFile uint64
}

// newMemoryStatusBuffer returns a MEMORYSTATUSEX buffer with dwLength set.
func newMemoryStatusBuffer() []byte {
	buf := make([]byte, memoryStatusExSize)
	binary.LittleEndian.PutUint32(buf[0:4], memoryStatusExSize)
	return buf
}

// decodeMemoryStatus decodes a MEMORYSTATUSEX buffer filled by
// GlobalMemoryStatusEx.
func decodeMemoryStatus(buf []byte) (memoryStatus, error) {
	if len(buf) < memoryStatusExSize {
		return memoryStatus{}, fmt.Errorf("memory status buffer is %d bytes, want %d", len(buf), memoryStatusExSize)
	}
	return memoryStatus{
		TotalPhys:     binary.LittleEndian.Uint64(buf[8:16]),
		AvailPhys:     binary.LittleEndian.Uint64(buf[16:24]),
		TotalPageFile: binary.LittleEndian.Uint64(buf[24:32]),
		AvailPageFile: binary.LittleEndian.Uint64(buf[32:40]),
	}, nil
}

// apply fills memory and swap fields. The page file figures are the commit
// limit, which includes physical memory, so swap is the part beyond it.
func (m memoryStatus) apply(res *telemetry.ResourceSnapshot) {
	res.MemoryTotal = m.TotalPhys
	res.MemoryAvailable = min(m.AvailPhys, m.TotalPhys)
	res.MemoryUsed = telemetry.UsedFromAvailable(res.MemoryTotal, res.MemoryAvailable)

	res.SwapTotal = telemetry.UsedFromAvailable(m.TotalPageFile, m.TotalPhys)
	res.SwapFree = min(telemetry.UsedFromAvailable(m.AvailPageFile, m.AvailPhys), res.SwapTotal)
	res.SwapUsed = telemetry.UsedFromAvailable(res.SwapTotal, res.SwapFree)
}

// filetimeTicks joins the two halves of a FILETIME into 100ns ticks.
func filetimeTicks(high, low uint32) uint64 {
	return uint64(high)<<32 | uint64(low)
}

// productName corrects the registry ProductName on Windows 11.
func productName(name string, build uint64) string {
	name = strings.TrimSpace(name)
	if build >= windows11Build && strings.Contains(name, "Windows 10") {
		return strings.Replace(name, "Windows 10", "Windows 11", 1)
	}
	return name
}

// kernelVersion formats major.minor.build and appends the update build
// revision when known.
func kernelVersion(major, minor, build uint32, ubr uint64) string {
	if ubr > 0 {
		return fmt.Sprintf("%d.%d.%d.%d", major, minor, build, ubr)
	}
	return fmt.Sprintf("%d.%d.%d", major, minor, build)
}

// driveRoot returns the root path of drive letter index i (0 is A).
func driveRoot(i int) string {
	return string(rune('A'+i)) + `:\`
}
