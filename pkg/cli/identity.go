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
	"log/slog"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/hostprobe/pkg/errors"
	semver "github.com/NVIDIA/hostprobe/pkg/version"
)

func identityCmd() *cli.Command {
	return &cli.Command{
		Name:  "identity",
		Usage: "Show OS, kernel, CPU and boot information",
		Description: `Print the host identity and the active backend.

With --min-kernel the command fails when the running kernel release is older
than the given version, which makes it usable as a preflight check:

  hostprobe identity --min-kernel 5.15 --format json`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "min-kernel",
				Usage: "fail when the kernel release is older than this version",
			},
			formatFlag(),
			outputFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			c := newCollector(cfg, nil)
			id := c.ReadIdentity(ctx)
			slog.Debug("identity read", "backend", c.BackendName())

			if err := write(ctx, cmd, cfg, id); err != nil {
				return err
			}

			minimum := cmd.String("min-kernel")
			if minimum == "" {
				return nil
			}
			ok, err := semver.KernelAtLeast(id.KernelVersion, minimum)
			if err != nil {
				return errors.WrapWithContext(errors.ErrCodeInvalidRequest,
					"failed to compare kernel versions", err,
					map[string]any{"kernel": id.KernelVersion, "minimum": minimum})
			}
			if !ok {
				return fmt.Errorf("kernel %s is older than required %s", id.KernelVersion, minimum)
			}
			return nil
		},
	}
}

func killCmd() *cli.Command {
	return &cli.Command{
		Name:      "kill",
		Usage:     "Forcefully terminate a process",
		ArgsUsage: "PID",
		Description: `Ask the OS to terminate PID immediately. The process gets no chance to
clean up. Fails when the pid does not exist, belongs to another user, or the
platform does not support termination.`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return fmt.Errorf("expected exactly one PID argument")
			}
			raw := cmd.Args().First()
			pid, err := strconv.ParseUint(raw, 10, 32)
			if err != nil {
				return fmt.Errorf("invalid PID %q: %w", raw, err)
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			if !newCollector(cfg, nil).Terminate(uint32(pid)) {
				return fmt.Errorf("failed to terminate process %d", pid)
			}
			fmt.Fprintf(cmd.Root().Writer, "terminated process %d\n", pid)
			return nil
		},
	}
}
