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

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampPercent(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{name: "in range", in: 42.5, want: 42.5},
		{name: "negative", in: -3, want: 0},
		{name: "above hundred", in: 250, want: 100},
		{name: "nan", in: math.NaN(), want: 0},
		{name: "positive infinity", in: math.Inf(1), want: 100},
		{name: "negative infinity", in: math.Inf(-1), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampPercent(tt.in))
		})
	}
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 0.0, Percent(5, 0))
	assert.Equal(t, 50.0, Percent(50, 100))
	assert.Equal(t, 100.0, Percent(200, 100))
}

func TestUsedFromAvailable(t *testing.T) {
	assert.Equal(t, uint64(60), UsedFromAvailable(100, 40))
	assert.Equal(t, uint64(0), UsedFromAvailable(100, 100))
	assert.Equal(t, uint64(0), UsedFromAvailable(100, 150))

	total, avail := uint64(16<<30), uint64(5<<30)
	assert.Equal(t, total, UsedFromAvailable(total, avail)+avail)
}

func TestSecondsSince(t *testing.T) {
	assert.Equal(t, uint64(10), SecondsSince(110, 100))
	assert.Equal(t, uint64(0), SecondsSince(100, 110))
}

func TestNetworkCountersAdd(t *testing.T) {
	var n NetworkCounters
	n.Add(NetworkCounters{BytesSent: 1, BytesReceived: 2, PacketsSent: 3, PacketsReceived: 4})
	n.Add(NetworkCounters{BytesSent: 10, BytesReceived: 20, PacketsSent: 30, PacketsReceived: 40})

	assert.Equal(t, NetworkCounters{BytesSent: 11, BytesReceived: 22, PacketsSent: 33, PacketsReceived: 44}, n)
}

func TestUnknownIdentity(t *testing.T) {
	id := UnknownIdentity()
	assert.Equal(t, Unknown, id.OSName)
	assert.Equal(t, Unknown, id.CPUBrand)
	assert.Zero(t, id.CPUCores)
	assert.Zero(t, id.BootTime)
}
