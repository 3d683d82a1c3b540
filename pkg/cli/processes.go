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

package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/hostprobe/pkg/telemetry"
)

func processesCmd() *cli.Command {
	return &cli.Command{
		Name:    "processes",
		Aliases: []string{"ps"},
		Usage:   "List running processes",
		Description: `List every process visible to the current user with its parent, status,
resident memory, CPU share and start time.

CPU percentages are normalized by the number of logical cores and cover
--interval. Processes started during the interval report 0.

# Examples

  hostprobe processes --sort cpu --limit 10
  hostprobe ps --format json --interval 0`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "sort",
				Usage: fmt.Sprintf("sort key (%s)", strings.Join(telemetry.SortKeys(), ", ")),
				Value: telemetry.SortByPID,
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "show at most this many processes; 0 shows all",
			},
			intervalFlag(),
			formatFlag(),
			outputFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Int("limit") < 0 {
				return fmt.Errorf("--limit must not be negative")
			}

			c := newCollector(cfg, nil)
			if err := warmUp(ctx, c, cmd.Duration("interval"), true); err != nil {
				return err
			}

			procs := telemetry.ProcessList(c.ListProcesses(ctx))
			if err := procs.SortBy(cmd.String("sort")); err != nil {
				return err
			}

			return write(ctx, cmd, cfg, procs.Limit(int(cmd.Int("limit"))))
		},
	}
}

func resourcesCmd() *cli.Command {
	return &cli.Command{
		Name:  "resources",
		Usage: "Sample CPU, memory, swap, disk and network usage",
		Description: `Print one resource sample. CPU utilization covers --interval; per-core
values are empty when --interval is 0.

Network counters are cumulative since the interfaces came up and summed
across interfaces that are up.`,
		Flags: []cli.Flag{
			intervalFlag(),
			formatFlag(),
			outputFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			c := newCollector(cfg, nil)
			if err := warmUp(ctx, c, cmd.Duration("interval"), false); err != nil {
				return err
			}

			return write(ctx, cmd, cfg, c.SampleResources(ctx))
		},
	}
}
