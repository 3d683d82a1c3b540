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

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/hostprobe/pkg/api"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve host telemetry over HTTP",
		Description: `Run the hostprobed API in the foreground. Routes:

  GET  /v1/processes, /v1/resources, /v1/identity, /v1/capabilities, /v1/snapshot
  POST /v1/processes/{pid}/terminate
  GET  /health, /ready, /metrics`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "address",
				Usage: "listen address; empty listens on all interfaces",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "listen port",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.IsSet("address") {
				cfg.Server.Address = cmd.String("address")
			}
			if cmd.IsSet("port") {
				cfg.Server.Port = int(cmd.Int("port"))
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			return api.Run(ctx, cfg)
		},
	}
}
