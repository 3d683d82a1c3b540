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

package common

import (
	"net"
	"strings"

	psnet "github.com/shirou/gopsutil/v4/net"

	"github.com/NVIDIA/hostprobe/pkg/telemetry"
)

// SumNetwork adds the counters of every interface that ifaces reports as up
// and not loopback. When ifaces is nil the interface flags are unknown and
// every counter is summed except well-known loopback names.
func SumNetwork(stats []psnet.IOCountersStat, ifaces []net.Interface) telemetry.NetworkCounters {
	var n telemetry.NetworkCounters

	var active map[string]bool
	if ifaces != nil {
		active = make(map[string]bool, len(ifaces))
		for _, i := range ifaces {
			if i.Flags&net.FlagUp != 0 && i.Flags&net.FlagLoopback == 0 {
				active[i.Name] = true
			}
		}
	}

	for _, s := range stats {
		if active != nil && !active[s.Name] {
			continue
		}
		if active == nil && isLoopbackName(s.Name) {
			continue
		}
		n.Add(telemetry.NetworkCounters{
			BytesSent:       s.BytesSent,
			BytesReceived:   s.BytesRecv,
			PacketsSent:     s.PacketsSent,
			PacketsReceived: s.PacketsRecv,
		})
	}

	return n
}

func isLoopbackName(name string) bool {
	n := strings.ToLower(name)
	return n == "lo" || n == "lo0" || strings.HasPrefix(n, "loopback")
}
