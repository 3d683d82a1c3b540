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

package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/hostprobe/pkg/errors"
)

func pids(l ProcessList) []uint32 {
	out := make([]uint32, len(l))
	for i, p := range l {
		out[i] = p.PID
	}
	return out
}

func sampleList() ProcessList {
	return ProcessList{
		{PID: 30, Name: "zsh", CPUPercent: 1, MemoryBytes: 300},
		{PID: 10, Name: "Bash", CPUPercent: 5, MemoryBytes: 100},
		{PID: 20, Name: "init", CPUPercent: 5, MemoryBytes: 900},
	}
}

func TestProcessListSortBy(t *testing.T) {
	tests := []struct {
		key  string
		want []uint32
	}{
		{key: "", want: []uint32{10, 20, 30}},
		{key: "pid", want: []uint32{10, 20, 30}},
		{key: "name", want: []uint32{10, 20, 30}},
		{key: "CPU", want: []uint32{10, 20, 30}},
		{key: "memory", want: []uint32{20, 30, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			l := sampleList()
			require.NoError(t, l.SortBy(tt.key))
			assert.Equal(t, tt.want, pids(l))
		})
	}
}

func TestProcessListSortByUnknown(t *testing.T) {
	err := sampleList().SortBy("age")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))
}

func TestProcessListLimit(t *testing.T) {
	l := sampleList()
	assert.Len(t, l.Limit(0), 3)
	assert.Len(t, l.Limit(5), 3)
	assert.Equal(t, []uint32{30, 10}, pids(l.Limit(2)))
}

func TestProcessListTable(t *testing.T) {
	ppid := uint32(1)
	l := ProcessList{{PID: 7, ParentPID: &ppid, Name: "sshd", Status: StatusSleeping, CPUPercent: 2.5, MemoryBytes: 4096, Command: "/usr/sbin/sshd -D"}}

	header, rows := l.Table()
	require.Len(t, rows, 1)
	assert.Len(t, rows[0], len(header))
	assert.Equal(t, []string{"7", "1", "sshd", "sleeping", "2.5", "4096", "0", "/usr/sbin/sshd -D"}, rows[0])

	_, rows = ProcessList{{PID: 1}}.Table()
	assert.Equal(t, "-", rows[0][1])
}
