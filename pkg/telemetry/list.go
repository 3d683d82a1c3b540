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
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/NVIDIA/hostprobe/pkg/errors"
)

// Sort keys accepted by ProcessList.SortBy.
const (
	SortByPID    = "pid"
	SortByName   = "name"
	SortByCPU    = "cpu"
	SortByMemory = "memory"
)

// SortKeys lists the accepted sort keys.
func SortKeys() []string {
	return []string{SortByPID, SortByName, SortByCPU, SortByMemory}
}

// ProcessList is the result of one enumeration, renderable as a table.
type ProcessList []ProcessSnapshot

// SortBy orders the list in place. pid and name sort ascending, cpu and
// memory descending; ties fall back to pid.
func (l ProcessList) SortBy(key string) error {
	var less func(a, b ProcessSnapshot) int
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", SortByPID:
		less = func(a, b ProcessSnapshot) int { return cmp.Compare(a.PID, b.PID) }
	case SortByName:
		less = func(a, b ProcessSnapshot) int {
			return cmp.Or(cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)), cmp.Compare(a.PID, b.PID))
		}
	case SortByCPU:
		less = func(a, b ProcessSnapshot) int {
			return cmp.Or(cmp.Compare(b.CPUPercent, a.CPUPercent), cmp.Compare(a.PID, b.PID))
		}
	case SortByMemory:
		less = func(a, b ProcessSnapshot) int {
			return cmp.Or(cmp.Compare(b.MemoryBytes, a.MemoryBytes), cmp.Compare(a.PID, b.PID))
		}
	default:
		return errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("unknown sort key %q", key),
			map[string]any{"sort": key, "allowed": SortKeys()})
	}
	slices.SortStableFunc(l, less)
	return nil
}

// Limit returns at most n entries. Non-positive n returns the list as is.
func (l ProcessList) Limit(n int) ProcessList {
	if n <= 0 || n >= len(l) {
		return l
	}
	return l[:n]
}

// Table implements serializer.Tabular.
func (l ProcessList) Table() ([]string, [][]string) {
	header := []string{"PID", "PPID", "NAME", "STATUS", "CPU%", "MEMORY", "STARTED", "COMMAND"}
	rows := make([][]string, 0, len(l))
	for _, p := range l {
		ppid := "-"
		if p.ParentPID != nil {
			ppid = strconv.FormatUint(uint64(*p.ParentPID), 10)
		}
		rows = append(rows, []string{
			strconv.FormatUint(uint64(p.PID), 10),
			ppid,
			p.Name,
			p.Status,
			strconv.FormatFloat(p.CPUPercent, 'f', 1, 64),
			strconv.FormatUint(p.MemoryBytes, 10),
			strconv.FormatUint(p.StartTime, 10),
			p.Command,
		})
	}
	return header, rows
}
