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
	"time"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/hostprobe/pkg/collector"
	"github.com/NVIDIA/hostprobe/pkg/config"
	"github.com/NVIDIA/hostprobe/pkg/errors"
	"github.com/NVIDIA/hostprobe/pkg/serializer"
	"github.com/NVIDIA/hostprobe/pkg/snapshotter"
)

func formatFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   fmt.Sprintf("output format (%s)", strings.Join(serializer.SupportedFormats(), ", ")),
	}
}

func outputFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output destination: file path, cm://namespace/name, or empty for stdout",
	}
}

func intervalFlag() *cli.DurationFlag {
	return &cli.DurationFlag{
		Name:  "interval",
		Usage: "time between the CPU baseline and the reported read, raised to the CPU throttle; 0 reports the first read",
		Value: 500 * time.Millisecond,
	}
}

// parseOutputFormat validates the --format flag.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	f := serializer.Format(strings.ToLower(cmd.String("format")))
	if f.IsUnknown() {
		return "", errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("unknown output format: %q", cmd.String("format")),
			map[string]any{"allowed": serializer.SupportedFormats()})
	}
	return f, nil
}

// outputFormat returns --format when given, otherwise the configured default.
func outputFormat(cmd *cli.Command, cfg *config.Config) (serializer.Format, error) {
	if !cmd.IsSet("format") {
		return serializer.Format(cfg.Output.Format), nil
	}
	return parseOutputFormat(cmd)
}

// outputPath returns --output when given, otherwise the configured default.
func outputPath(cmd *cli.Command, cfg *config.Config) string {
	if cmd.IsSet("output") {
		return cmd.String("output")
	}
	return cfg.Output.Path
}

func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func newCollector(cfg *config.Config, rec *snapshotter.Recorder) *collector.Collector {
	opts := []collector.Option{collector.WithCPUThrottle(cfg.Collector.CPUThrottle)}
	if rec != nil {
		opts = append(opts, collector.WithDiagnostics(rec.Record))
	}
	return collector.New(opts...)
}

// warmUp takes CPU baselines and waits d, or the collector's CPU throttle
// when that is longer, so the next read covers a real interval.
func warmUp(ctx context.Context, c *collector.Collector, d time.Duration, processes bool) error {
	if d <= 0 {
		return nil
	}
	d = max(d, c.CPUThrottle())

	c.SampleResources(ctx)
	if processes {
		c.ListProcesses(ctx)
	}

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// write serializes v to the configured destination.
func write(ctx context.Context, cmd *cli.Command, cfg *config.Config, v any) error {
	format, err := outputFormat(cmd, cfg)
	if err != nil {
		return err
	}

	ser := serializer.NewFileWriterOrStdout(format, outputPath(cmd, cfg))
	defer func() {
		_ = serializer.Close(ser)
	}()

	if err := ser.Serialize(ctx, v); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
