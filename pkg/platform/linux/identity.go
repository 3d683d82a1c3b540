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
	"context"
	"runtime"
	"strings"

	"github.com/NVIDIA/hostprobe/pkg/kvfile"
	"github.com/NVIDIA/hostprobe/pkg/telemetry"
)

const defaultOSName = "Linux"

// ReadIdentity reads OS, kernel, hostname, CPU and boot information. Each
// field falls back on its own.
func (b *Backend) ReadIdentity(_ context.Context) telemetry.HostIdentity {
	id := telemetry.UnknownIdentity()
	id.OSName = defaultOSName

	if rel, err := kvfile.ReadOSRelease(b.osReleasePaths...); err == nil {
		if rel.Name != "" {
			id.OSName = rel.Name
		}
		if v := rel.Version(); v != "" {
			id.OSVersion = v
		}
	} else {
		b.opts.Report(Name, "osVersion", err)
	}

	if k, err := b.uname(); err == nil && k != "" {
		id.KernelVersion = k
	} else if err != nil {
		b.opts.Report(Name, "kernelVersion", err)
	}

	if h, err := b.hostname(); err == nil && h != "" {
		id.Hostname = h
	} else if err != nil {
		b.opts.Report(Name, "hostname", err)
	}

	id.CPUCores = uint32(runtime.NumCPU())

	fs, err := b.procFS()
	if err != nil {
		b.opts.Report(Name, "identity", err)
		return id
	}

	if infos, err := fs.CPUInfo(); err == nil && len(infos) > 0 {
		id.CPUCores = uint32(len(infos))
		if brand := cpuBrand(infos[0].ModelName, infos[0].VendorID); brand != "" {
			id.CPUBrand = brand
		}
	} else if err != nil {
		b.opts.Report(Name, "cpuBrand", err)
	}

	if mi, err := fs.Meminfo(); err == nil {
		id.TotalMemory = kb(mi.MemTotal)
	} else {
		b.opts.Report(Name, "totalMemory", err)
	}

	if st, err := fs.Stat(); err == nil && st.BootTime > 0 {
		id.BootTime = st.BootTime
		id.Uptime = telemetry.SecondsSince(uint64(b.now().Unix()), st.BootTime)
	} else if err != nil {
		b.opts.Report(Name, "bootTime", err)
	}

	return id
}

func cpuBrand(model, vendor string) string {
	if m := strings.TrimSpace(model); m != "" {
		return m
	}
	return strings.TrimSpace(vendor)
}
