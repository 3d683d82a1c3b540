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

package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/NVIDIA/hostprobe/pkg/errors"
)

var fieldUnavailableTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "hostprobe_field_unavailable_total",
		Help: "Telemetry fields that fell back to their default value, by backend and field.",
	},
	[]string{"backend", "field"},
)

func recordFieldUnavailable(se *errors.StructuredError) {
	if se == nil {
		return
	}
	backend, _ := se.Context["backend"].(string)
	field, _ := se.Context["field"].(string)
	fieldUnavailableTotal.WithLabelValues(backend, field).Inc()
}
