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
	"net"
	"os"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
	psnet "github.com/shirou/gopsutil/v4/net"
	"github.com/shirou/gopsutil/v4/process"
	"golang.org/x/sys/unix"

	"github.com/NVIDIA/hostprobe/pkg/platform/common"
	"github.com/NVIDIA/hostprobe/pkg/telemetry"
)

// Name identifies this backend in diagnostics.
const Name = "darwin"

// Backend reads macOS telemetry through gopsutil and sysctl(3).
type Backend struct {
	opts common.Options

	now      func() time.Time
	hostname func() (string, error)

	processes  func(ctx context.Context) ([]*process.Process, error)
	cpuTimes   func(ctx context.Context, perCPU bool) ([]cpu.TimesStat, error)
	memory     func(ctx context.Context) (*mem.VirtualMemoryStat, error)
	swap       func(ctx context.Context) (*mem.SwapMemoryStat, error)
	partitions func(ctx context.Context, all bool) ([]disk.PartitionStat, error)
	usage      common.UsageFunc
	netIO      func(ctx context.Context, pernic bool) ([]psnet.IOCountersStat, error)
	interfaces func() ([]net.Interface, error)
	kill       func(pid int) error
}

// New returns a backend reading the live host.
func New(opts common.Options) *Backend {
	opts.Normalize()
	return &Backend{
		opts:       opts,
		now:        time.Now,
		hostname:   os.Hostname,
		processes:  process.ProcessesWithContext,
		cpuTimes:   cpu.TimesWithContext,
		memory:     mem.VirtualMemoryWithContext,
		swap:       mem.SwapMemoryWithContext,
		partitions: disk.PartitionsWithContext,
		usage:      disk.UsageWithContext,
		netIO:      psnet.IOCountersWithContext,
		interfaces: net.Interfaces,
		kill:       func(pid int) error { return unix.Kill(pid, unix.SIGKILL) },
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
