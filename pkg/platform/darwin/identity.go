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
	"strings"

	"golang.org/x/sys/unix"

	"github.com/NVIDIA/hostprobe/pkg/telemetry"
)

const defaultOSName = "macOS"

// ReadIdentity reads host identity from sysctl. Each field falls back on
// its own.
func (b *Backend) ReadIdentity(_ context.Context) telemetry.HostIdentity {
	id := telemetry.UnknownIdentity()
	id.OSName = defaultOSName

	id.OSVersion = b.sysctlString("kern.osproductversion", "osVersion", id.OSVersion)
	id.KernelVersion = b.sysctlString("kern.osrelease", "kernelVersion", id.KernelVersion)
	id.CPUBrand = b.sysctlString("machdep.cpu.brand_string", "cpuBrand", id.CPUBrand)

	if h, err := b.hostname(); err == nil && h != "" {
		id.Hostname = h
	} else {
		id.Hostname = b.sysctlString("kern.hostname", "hostname", id.Hostname)
	}

	if n, err := unix.SysctlUint32("hw.logicalcpu"); err == nil {
		id.CPUCores = n
	} else if n, err := unix.SysctlUint32("hw.ncpu"); err == nil {
		id.CPUCores = n
	} else {
		b.opts.Report(Name, "cpuCores", err)
	}

	if m, err := unix.SysctlUint64("hw.memsize"); err == nil {
		id.TotalMemory = m
	} else {
		b.opts.Report(Name, "totalMemory", err)
	}

	if tv, err := unix.SysctlTimeval("kern.boottime"); err == nil && tv.Sec > 0 {
		id.BootTime = uint64(tv.Sec)
		id.Uptime = telemetry.SecondsSince(uint64(b.now().Unix()), id.BootTime)
	} else {
		b.opts.Report(Name, "bootTime", err)
	}

	return id
}

func (b *Backend) sysctlString(name, field, fallback string) string {
	v, err := unix.Sysctl(name)
	if err != nil {
		b.opts.Report(Name, field, err)
		return fallback
	}
	if v = strings.TrimSpace(v); v == "" {
		return fallback
	}
	return v
}
