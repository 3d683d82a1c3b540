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

// Unknown is reported for string fields that could not be read.
const Unknown = "Unknown"

// Process status labels shared by all backends.
const (
	StatusRunning   = "running"
	StatusSleeping  = "sleeping"
	StatusDiskSleep = "disk-sleep"
	StatusStopped   = "stopped"
	StatusTracing   = "tracing-stop"
	StatusZombie    = "zombie"
	StatusDead      = "dead"
	StatusIdle      = "idle"
	StatusUnknown   = "unknown"
)

// ProcessSnapshot describes one process as observed during a single enumeration.
// Nothing ties two snapshots with the same PID across calls together.
type ProcessSnapshot struct {
	PID       uint32  `json:"pid" yaml:"pid"`
	Name      string  `json:"name" yaml:"name"`
	Command   string  `json:"command" yaml:"command"`
	ParentPID *uint32 `json:"parentPid,omitempty" yaml:"parentPid,omitempty"`

	// MemoryBytes is the resident set size.
	MemoryBytes uint64 `json:"memoryBytes" yaml:"memoryBytes"`

	// CPUPercent is best-effort and stays 0 when the backend does not
	// declare Capabilities.ProcessCPU.
	CPUPercent float64 `json:"cpuPercent" yaml:"cpuPercent"`

	Status string `json:"status" yaml:"status"`

	// StartTime is in Unix seconds, 0 when unknown.
	StartTime uint64 `json:"startTime" yaml:"startTime"`
}

// VolumeUsage reports capacity of one mounted filesystem.
type VolumeUsage struct {
	Name       string `json:"name" yaml:"name"`
	MountPoint string `json:"mountPoint" yaml:"mountPoint"`
	Total      uint64 `json:"total" yaml:"total"`
	Used       uint64 `json:"used" yaml:"used"`
	Available  uint64 `json:"available" yaml:"available"`
}

// NetworkCounters are cumulative totals since interface reset, summed across
// interfaces that are up.
type NetworkCounters struct {
	BytesSent       uint64 `json:"bytesSent" yaml:"bytesSent"`
	BytesReceived   uint64 `json:"bytesReceived" yaml:"bytesReceived"`
	PacketsSent     uint64 `json:"packetsSent" yaml:"packetsSent"`
	PacketsReceived uint64 `json:"packetsReceived" yaml:"packetsReceived"`
}

// Add accumulates o into n.
func (n *NetworkCounters) Add(o NetworkCounters) {
	n.BytesSent += o.BytesSent
	n.BytesReceived += o.BytesReceived
	n.PacketsSent += o.PacketsSent
	n.PacketsReceived += o.PacketsReceived
}

// ResourceSnapshot is a point-in-time view of host resource usage. The CPU
// fields come from the shared sampling cache and may repeat the previous
// values when sampled within the throttle interval.
type ResourceSnapshot struct {
	CPUPercent     float64   `json:"cpuPercent" yaml:"cpuPercent"`
	PerCorePercent []float64 `json:"perCorePercent" yaml:"perCorePercent"`

	MemoryTotal     uint64 `json:"memoryTotal" yaml:"memoryTotal"`
	MemoryUsed      uint64 `json:"memoryUsed" yaml:"memoryUsed"`
	MemoryAvailable uint64 `json:"memoryAvailable" yaml:"memoryAvailable"`

	SwapTotal uint64 `json:"swapTotal" yaml:"swapTotal"`
	SwapUsed  uint64 `json:"swapUsed" yaml:"swapUsed"`
	SwapFree  uint64 `json:"swapFree" yaml:"swapFree"`

	Volumes []VolumeUsage   `json:"volumes" yaml:"volumes"`
	Network NetworkCounters `json:"network" yaml:"network"`
}

// HostIdentity describes the host the collector runs on. Every field falls
// back to Unknown or 0 on its own.
type HostIdentity struct {
	OSName        string `json:"osName" yaml:"osName"`
	OSVersion     string `json:"osVersion" yaml:"osVersion"`
	KernelVersion string `json:"kernelVersion" yaml:"kernelVersion"`
	Hostname      string `json:"hostname" yaml:"hostname"`
	CPUBrand      string `json:"cpuBrand" yaml:"cpuBrand"`
	CPUCores      uint32 `json:"cpuCores" yaml:"cpuCores"`
	TotalMemory   uint64 `json:"totalMemory" yaml:"totalMemory"`

	// BootTime is in Unix seconds.
	BootTime uint64 `json:"bootTime" yaml:"bootTime"`

	// Uptime is in seconds.
	Uptime uint64 `json:"uptime" yaml:"uptime"`
}

// UnknownIdentity returns an identity with every field set to its sentinel.
func UnknownIdentity() HostIdentity {
	return HostIdentity{
		OSName:        Unknown,
		OSVersion:     Unknown,
		KernelVersion: Unknown,
		Hostname:      Unknown,
		CPUBrand:      Unknown,
	}
}

// Capabilities declares which best-effort readings a backend actually
// computes, so a zero can be told apart from "not supported".
type Capabilities struct {
	ProcessCPU       bool `json:"processCpu" yaml:"processCpu"`
	ProcessStartTime bool `json:"processStartTime" yaml:"processStartTime"`
	CPUSampling      bool `json:"cpuSampling" yaml:"cpuSampling"`
	Swap             bool `json:"swap" yaml:"swap"`
	Volumes          bool `json:"volumes" yaml:"volumes"`
	Network          bool `json:"network" yaml:"network"`
	Terminate        bool `json:"terminate" yaml:"terminate"`
}
