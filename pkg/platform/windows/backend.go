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
	"net"
	"os"
	"time"

	psnet "github.com/shirou/gopsutil/v4/net"
	"github.com/shirou/gopsutil/v4/process"

	"github.com/NVIDIA/hostprobe/pkg/platform/common"
	"github.com/NVIDIA/hostprobe/pkg/telemetry"
)

// Name identifies this backend in diagnostics.
const Name = "windows"

// Backend reads Windows telemetry from the Win32 and NT native APIs.
type Backend struct {
	opts common.Options

	now        func() time.Time
	hostname   func() (string, error)
	workingSet func(ctx context.Context, pid uint32) (uint64, error)
	netIO      func(ctx context.Context, pernic bool) ([]psnet.IOCountersStat, error)
	interfaces func() ([]net.Interface, error)
}

// New returns a backend reading the live host.
func New(opts common.Options) *Backend {
	opts.Normalize()
	return &Backend{
		opts:       opts,
		now:        time.Now,
		hostname:   os.Hostname,
		workingSet: workingSet,
		netIO:      psnet.IOCountersWithContext,
		interfaces: net.Interfaces,
	}
}

// Name returns the backend name.
func (b *Backend) Name() string {
	return Name
}

// Capabilities reports every reading as supported.
func (b *Backend) Capabilities() telemetry.Capabilities {
	return telemetry.Capabilities{
		ProcessCPU:       true,
		ProcessStartTime: true,
		CPUSampling:      true,
		Swap:             true,
		Volumes:          true,
		Network:          true,
		Terminate:        true,
	}
}

func workingSet(ctx context.Context, pid uint32) (uint64, error) {
	p := &process.Process{Pid: int32(pid)}
	mi, err := p.MemoryInfoWithContext(ctx)
	if err != nil {
		return 0, err
	}
	return mi.RSS, nil
}
