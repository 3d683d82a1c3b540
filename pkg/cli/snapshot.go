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

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/hostprobe/pkg/defaults"
	"github.com/NVIDIA/hostprobe/pkg/k8s/client"
	"github.com/NVIDIA/hostprobe/pkg/serializer"
	"github.com/NVIDIA/hostprobe/pkg/snapshotter"
)

func snapshotCmd() *cli.Command {
	return &cli.Command{
		Name:  "snapshot",
		Usage: "Capture identity, resources and processes in one document",
		Description: `Capture a full host snapshot: identity, backend capabilities, a resource
sample, the process list and any fields that could not be read.

The snapshot can be written to stdout, a file, or a Kubernetes ConfigMap:

  hostprobe snapshot --output snapshot.yaml --format yaml
  hostprobe snapshot --output cm://monitoring/node-1-snapshot`,
		Flags: []cli.Flag{
			intervalFlag(),
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "maximum time to collect and write the snapshot",
				Value: defaults.CLISnapshotTimeout,
			},
			&cli.StringFlag{
				Name:    "kubeconfig",
				Usage:   "kubeconfig used for cm:// output",
				Sources: cli.EnvVars(client.EnvKubeconfig),
			},
			formatFlag(),
			outputFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			format, err := outputFormat(cmd, cfg)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(ctx, cmd.Duration("timeout"))
			defer cancel()

			ser := serializer.NewFileWriterOrStdout(format, outputPath(cmd, cfg))
			defer func() {
				_ = serializer.Close(ser)
			}()

			if cmw, ok := ser.(*serializer.ConfigMapWriter); ok && cmd.IsSet("kubeconfig") {
				kc, _, err := client.BuildKubeClient(cmd.String("kubeconfig"))
				if err != nil {
					return fmt.Errorf("failed to build kubernetes client: %w", err)
				}
				cmw.WithClient(kc)
			}

			rec := snapshotter.NewRecorder()
			ns := &snapshotter.NodeSnapshotter{
				Version:        version,
				Collector:      newCollector(cfg, rec),
				Serializer:     ser,
				Diagnostics:    rec,
				SampleInterval: cmd.Duration("interval"),
			}

			return ns.Measure(ctx)
		},
	}
}
