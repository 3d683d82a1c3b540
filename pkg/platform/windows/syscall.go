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
	"unsafe"

	win "golang.org/x/sys/windows"
)

const (
	systemProcessorPerformanceInformation = 8

	// maxGroupProcessors bounds one processor group.
	maxGroupProcessors = 64
)

var (
	modkernel32              = win.NewLazySystemDLL("kernel32.dll")
	procGlobalMemoryStatusEx = modkernel32.NewProc("GlobalMemoryStatusEx")
	procGetTickCount64       = modkernel32.NewProc("GetTickCount64")
)

// queryProcessorTimes returns one entry per logical processor of the
// calling thread's processor group.
func queryProcessorTimes() ([]processorTimes, error) {
	buf := make([]byte, maxGroupProcessors*processorPerformanceSize)
	var n uint32
	err := win.NtQuerySystemInformation(systemProcessorPerformanceInformation,
		unsafe.Pointer(&buf[0]), uint32(len(buf)), &n)
	if err != nil {
		return nil, err
	}
	return decodeProcessorTimes(buf[:min(int(n), len(buf))]), nil
}

// globalMemoryStatus calls GlobalMemoryStatusEx.
func globalMemoryStatus() (memoryStatus, error) {
	if err := procGlobalMemoryStatusEx.Find(); err != nil {
		return memoryStatus{}, err
	}
	buf := newMemoryStatusBuffer()
	r1, _, err := procGlobalMemoryStatusEx.Call(uintptr(unsafe.Pointer(&buf[0])))
	if r1 == 0 {
		return memoryStatus{}, err
	}
	return decodeMemoryStatus(buf)
}

// tickCount64 returns milliseconds since boot.
func tickCount64() (uint64, error) {
	if err := procGetTickCount64.Find(); err != nil {
		return 0, err
	}
	r1, _, _ := procGetTickCount64.Call()
	return uint64(r1), nil
}
