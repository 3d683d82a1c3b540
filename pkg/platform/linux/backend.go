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
	"os"
	"time"

	"github.com/prometheus/procfs"
	"github.com/prometheus/procfs/sysfs"
	"golang.org/x/sys/unix"

	"github.com/NVIDIA/hostprobe/pkg/kvfile"
	"github.com/NVIDIA/hostprobe/pkg/platform/common"
	"github.com/NVIDIA/hostprobe/pkg/telemetry"
)

const (
	// Name identifies this backend in diagnostics.
	Name = "linux"

	// userHZ is the clock tick rate of /proc/<pid>/stat time fields.
	userHZ = 100

	loopback = "lo"
)

// Backend reads Linux telemetry from procfs and sysfs.
type Backend struct {
	opts common.Options

	procRoot       string
	sysRoot        string
	osReleasePaths []string

	now      func() time.Time
	hostname func() (string, error)
	uname    func() (string, error)
	statfs   func(path string) (total, available uint64, err error)
	kill     func(pid int) error
}

// New returns a backend reading from the live /proc and /sys.
func New(opts common.Options) *Backend {
	return NewWithRoots(procfs.DefaultMountPoint, sysfs.DefaultMountPoint, opts)
}

// NewWithRoots returns a backend reading from alternative proc and sys
// mount points, for containers with a host /proc bind mount.
func NewWithRoots(procRoot, sysRoot string, opts common.Options) *Backend {
	opts.Normalize()
	return &Backend{
		opts:           opts,
		procRoot:       procRoot,
		sysRoot:        sysRoot,
		osReleasePaths: kvfile.DefaultOSReleasePaths,
		now:            time.Now,
		hostname:       os.Hostname,
		uname:          kernelRelease,
		statfs:         statfs,
		kill:           func(pid int) error { return unix.Kill(pid, unix.SIGKILL) },
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

func (b *Backend) procFS() (procfs.FS, error) {
	return procfs.NewFS(b.procRoot)
}

func kernelRelease() (string, error) {
	var u unix.Utsname
	if err := unix.Uname(&u); err != nil {
		return "", err
	}
	return unix.ByteSliceToString(u.Release[:]), nil
}

func statfs(path string) (uint64, uint64, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return 0, 0, err
	}
	size := uint64(st.Frsize)
	if size == 0 {
		size = uint64(st.Bsize)
	}
	return st.Blocks * size, st.Bavail * size, nil
}
