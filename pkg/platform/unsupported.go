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

	"github.com/NVIDIA/hostprobe/pkg/telemetry"
)

// UnsupportedName is the name reported by the Unsupported backend.
const UnsupportedName = "unsupported"

// Unsupported is the backend for operating systems without a native
// implementation. It returns empty values and never fails.
type Unsupported struct{}

// Name returns UnsupportedName.
func (Unsupported) Name() string {
	return UnsupportedName
}

// Capabilities reports nothing as supported.
func (Unsupported) Capabilities() telemetry.Capabilities {
	return telemetry.Capabilities{}
}

// ListProcesses returns an empty list.
func (Unsupported) ListProcesses(context.Context) []telemetry.ProcessSnapshot {
	return []telemetry.ProcessSnapshot{}
}

// SampleResources returns a zero snapshot with empty slices.
func (Unsupported) SampleResources(context.Context) telemetry.ResourceSnapshot {
	return telemetry.ResourceSnapshot{
		PerCorePercent: []float64{},
		Volumes:        []telemetry.VolumeUsage{},
	}
}

// ReadIdentity returns Unknown strings and zero numbers.
func (Unsupported) ReadIdentity(context.Context) telemetry.HostIdentity {
	return telemetry.UnknownIdentity()
}

// Terminate always returns false.
func (Unsupported) Terminate(uint32) bool {
	return false
}
