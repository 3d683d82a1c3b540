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
	"runtime"

	win "golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"

	"github.com/NVIDIA/hostprobe/pkg/telemetry"
)

const (
	defaultOSName = "Windows"

	currentVersionKey = `SOFTWARE\Microsoft\Windows NT\CurrentVersion`
	processorKey      = `HARDWARE\DESCRIPTION\System\CentralProcessor\0`
)

// ReadIdentity reads host identity from the registry and kernel32. Each
// field falls back on its own.
func (b *Backend) ReadIdentity(_ context.Context) telemetry.HostIdentity {
	id := telemetry.UnknownIdentity()
	id.OSName = defaultOSName

	ver := win.RtlGetVersion()
	var ubr uint64

	if k, err := registry.OpenKey(registry.LOCAL_MACHINE, currentVersionKey, registry.QUERY_VALUE); err == nil {
		if name, _, err := k.GetStringValue("ProductName"); err == nil && name != "" {
			id.OSName = productName(name, uint64(ver.BuildNumber))
		}
		if v, _, err := k.GetStringValue("DisplayVersion"); err == nil && v != "" {
			id.OSVersion = v
		} else if v, _, err := k.GetStringValue("ReleaseId"); err == nil && v != "" {
			id.OSVersion = v
		}
		ubr, _, _ = k.GetIntegerValue("UBR")
		k.Close()
	} else {
		b.opts.Report(Name, "osVersion", err)
	}

	if ver.MajorVersion > 0 {
		id.KernelVersion = kernelVersion(ver.MajorVersion, ver.MinorVersion, ver.BuildNumber, ubr)
	}

	if k, err := registry.OpenKey(registry.LOCAL_MACHINE, processorKey, registry.QUERY_VALUE); err == nil {
		if brand, _, err := k.GetStringValue("ProcessorNameString"); err == nil && brand != "" {
			id.CPUBrand = brand
		}
		k.Close()
	} else {
		b.opts.Report(Name, "cpuBrand", err)
	}

	if h, err := b.hostname(); err == nil && h != "" {
		id.Hostname = h
	} else if err != nil {
		b.opts.Report(Name, "hostname", err)
	}

	id.CPUCores = win.GetActiveProcessorCount(win.ALL_PROCESSOR_GROUPS)
	if id.CPUCores == 0 {
		id.CPUCores = uint32(runtime.NumCPU())
	}

	if ms, err := globalMemoryStatus(); err == nil {
		id.TotalMemory = ms.TotalPhys
	} else {
		b.opts.Report(Name, "totalMemory", err)
	}

	if ms, err := tickCount64(); err == nil {
		id.Uptime = ms / 1000
		id.BootTime = telemetry.SecondsSince(uint64(b.now().Unix()), id.Uptime)
	} else {
		b.opts.Report(Name, "uptime", err)
	}

	return id
}
