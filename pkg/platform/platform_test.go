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

package platform

import (
	"context"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/hostprobe/pkg/cpusample"
	"github.com/NVIDIA/hostprobe/pkg/errors"
	"github.com/NVIDIA/hostprobe/pkg/telemetry"
)

func TestUnsupported(t *testing.T) {
	var b Backend = Unsupported{}
	ctx := context.Background()

	assert.Equal(t, UnsupportedName, b.Name())
	assert.Equal(t, telemetry.Capabilities{}, b.Capabilities())

	procs := b.ListProcesses(ctx)
	require.NotNil(t, procs)
	assert.Empty(t, procs)

	res := b.SampleResources(ctx)
	assert.NotNil(t, res.PerCorePercent)
	assert.NotNil(t, res.Volumes)
	assert.Zero(t, res.CPUPercent)
	assert.Zero(t, res.MemoryTotal)

	id := b.ReadIdentity(ctx)
	assert.Equal(t, telemetry.Unknown, id.OSName)
	assert.Equal(t, telemetry.Unknown, id.Hostname)
	assert.Zero(t, id.CPUCores)

	assert.False(t, b.Terminate(1))
	assert.False(t, b.Terminate(0))
}

func TestNewSelectsNativeBackend(t *testing.T) {
	b := New()
	require.NotNil(t, b)

	switch runtime.GOOS {
	case "linux", "darwin", "windows":
		assert.Equal(t, runtime.GOOS, b.Name())
	default:
		assert.Equal(t, UnsupportedName, b.Name())
	}
}

func TestNewAppliesOptions(t *testing.T) {
	cache := cpusample.New()
	var reports []*errors.StructuredError

	b := New(
		WithCPUCache(cache),
		WithProcessTracker(cpusample.NewProcessTracker()),
		WithLogger(nil),
		WithDiagnostics(func(se *errors.StructuredError) { reports = append(reports, se) }),
	)

	ctx := context.Background()
	first := b.SampleResources(ctx)
	assert.GreaterOrEqual(t, first.CPUPercent, 0.0)
	assert.LessOrEqual(t, first.CPUPercent, 100.0)

	for _, se := range reports {
		assert.Equal(t, errors.ErrCodeFieldUnavailable, se.Code)
	}
}

func TestTerminatePidZero(t *testing.T) {
	assert.False(t, New().Terminate(0))
}
