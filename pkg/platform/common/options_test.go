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
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/hostprobe/pkg/errors"
)

func TestOptionsNormalize(t *testing.T) {
	var o Options
	o.Normalize()

	assert.NotNil(t, o.Cache)
	assert.NotNil(t, o.Tracker)
	assert.NotNil(t, o.Logger)
}

func TestOptionsReport(t *testing.T) {
	var got []*errors.StructuredError
	o := Options{Diagnostics: func(se *errors.StructuredError) { got = append(got, se) }}
	o.Normalize()

	o.Report("linux", "swap", nil)
	assert.Empty(t, got)

	cause := fmt.Errorf("open /proc/meminfo: permission denied")
	o.Report("linux", "swap", cause)

	require.Len(t, got, 1)
	assert.Equal(t, errors.ErrCodeFieldUnavailable, got[0].Code)
	assert.Equal(t, "linux", got[0].Context["backend"])
	assert.Equal(t, "swap", got[0].Context["field"])
	assert.ErrorIs(t, got[0], cause)
}

func TestOptionsReportWithoutSink(t *testing.T) {
	var o Options
	assert.NotPanics(t, func() { o.Report("darwin", "volumes", fmt.Errorf("boom")) })
}
