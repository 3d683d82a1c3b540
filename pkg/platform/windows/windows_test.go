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
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/NVIDIA/hostprobe/pkg/platform/common"
)

func TestListProcessesLive(t *testing.T) {
	b := New(common.Options{})
	procs := b.ListProcesses(context.Background())
	assert.NotEmpty(t, procs)

	self := uint32(os.Getpid())
	found := false
	for _, p := range procs {
		if p.PID == self {
			found = true
			assert.NotEmpty(t, p.Command)
			assert.NotZero(t, p.StartTime)
		}
	}
	assert.True(t, found, "current process must be listed")
}

func TestSampleResourcesLive(t *testing.T) {
	b := New(common.Options{})
	res := b.SampleResources(context.Background())
	assert.NotZero(t, res.MemoryTotal)
	assert.Equal(t, res.MemoryTotal, res.MemoryUsed+res.MemoryAvailable)
	assert.NotEmpty(t, res.Volumes)
}

func TestReadIdentityLive(t *testing.T) {
	b := New(common.Options{})
	id := b.ReadIdentity(context.Background())
	assert.Contains(t, id.OSName, "Windows")
	assert.NotZero(t, id.CPUCores)
	assert.NotZero(t, id.Uptime)
}

func TestTerminateInvalid(t *testing.T) {
	b := New(common.Options{})
	assert.False(t, b.Terminate(0))
	assert.False(t, b.Terminate(0xFFFFFFF0))
}
