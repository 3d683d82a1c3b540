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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/hostprobe/pkg/cpusample"
	"github.com/NVIDIA/hostprobe/pkg/telemetry"
)

func encodeProcessor(idle, kernel, user uint64) []byte {
	b := make([]byte, processorPerformanceSize)
	binary.LittleEndian.PutUint64(b[0:8], idle)
	binary.LittleEndian.PutUint64(b[8:16], kernel)
	binary.LittleEndian.PutUint64(b[16:24], user)
	binary.LittleEndian.PutUint64(b[24:32], 7)  // dpc
	binary.LittleEndian.PutUint64(b[32:40], 9)  // interrupt
	binary.LittleEndian.PutUint32(b[40:44], 11) // interrupt count
	return b
}

func TestDecodeProcessorTimes(t *testing.T) {
	var buf []byte
	buf = append(buf, encodeProcessor(800, 1000, 500)...)
	buf = append(buf, encodeProcessor(100, 100, 0)...)
	buf = append(buf, 1, 2, 3) // partial trailing entry

	got := decodeProcessorTimes(buf)
	require.Len(t, got, 2)
	assert.Equal(t, processorTimes{Idle: 800, Kernel: 1000, User: 500}, got[0])

	// kernel time includes idle: busy = kernel - idle + user
	assert.Equal(t, cpusample.Counter{Busy: 700, Total: 1500}, got[0].counter())
	assert.Equal(t, cpusample.Counter{Busy: 0, Total: 100}, got[1].counter())
}

func TestDecodeProcessorTimes_NegativeTimes(t *testing.T) {
	got := decodeProcessorTimes(encodeProcessor(1<<63, 10, 5))
	require.Len(t, got, 1)
	assert.Zero(t, got[0].Idle)
	assert.Equal(t, cpusample.Counter{Busy: 15, Total: 15}, got[0].counter())
}

func TestDecodeProcessorTimes_Empty(t *testing.T) {
	assert.Empty(t, decodeProcessorTimes(nil))
}

func TestDecodeMemoryStatus(t *testing.T) {
	buf := newMemoryStatusBuffer()
	assert.Equal(t, uint32(memoryStatusExSize), binary.LittleEndian.Uint32(buf[0:4]))

	binary.LittleEndian.PutUint64(buf[8:16], 16<<30)  // total phys
	binary.LittleEndian.PutUint64(buf[16:24], 6<<30)  // avail phys
	binary.LittleEndian.PutUint64(buf[24:32], 20<<30) // total page file
	binary.LittleEndian.PutUint64(buf[32:40], 9<<30)  // avail page file

	ms, err := decodeMemoryStatus(buf)
	require.NoError(t, err)

	var res telemetry.ResourceSnapshot
	ms.apply(&res)

	assert.Equal(t, uint64(16<<30), res.MemoryTotal)
	assert.Equal(t, uint64(10<<30), res.MemoryUsed)
	assert.Equal(t, uint64(6<<30), res.MemoryAvailable)
	assert.Equal(t, uint64(4<<30), res.SwapTotal)
	assert.Equal(t, uint64(3<<30), res.SwapFree)
	assert.Equal(t, uint64(1<<30), res.SwapUsed)
}

func TestDecodeMemoryStatus_NoPageFile(t *testing.T) {
	ms := memoryStatus{TotalPhys: 8 << 30, AvailPhys: 2 << 30, TotalPageFile: 8 << 30, AvailPageFile: 1 << 30}
	var res telemetry.ResourceSnapshot
	ms.apply(&res)

	assert.Zero(t, res.SwapTotal)
	assert.Zero(t, res.SwapUsed)
	assert.Zero(t, res.SwapFree)
}

func TestDecodeMemoryStatus_ShortBuffer(t *testing.T) {
	_, err := decodeMemoryStatus(make([]byte, 10))
	require.Error(t, err)
}

func TestFiletimeTicks(t *testing.T) {
	assert.Equal(t, uint64(1)<<32|5, filetimeTicks(1, 5))
}

func TestProductName(t *testing.T) {
	assert.Equal(t, "Windows 11 Pro", productName("Windows 10 Pro", 22631))
	assert.Equal(t, "Windows 10 Pro", productName("Windows 10 Pro", 19045))
	assert.Equal(t, "Windows Server 2022 Standard", productName(" Windows Server 2022 Standard ", 20348))
}

func TestKernelVersion(t *testing.T) {
	assert.Equal(t, "10.0.22631.4317", kernelVersion(10, 0, 22631, 4317))
	assert.Equal(t, "10.0.19045", kernelVersion(10, 0, 19045, 0))
}

func TestDriveRoot(t *testing.T) {
	assert.Equal(t, `A:\`, driveRoot(0))
	assert.Equal(t, `C:\`, driveRoot(2))
}
