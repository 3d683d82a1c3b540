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

// Package cli implements the hostprobe command line.
//
// # Commands
//
//	hostprobe processes [--sort cpu|memory|pid|name] [--limit N]
//	hostprobe resources
//	hostprobe identity [--min-kernel 5.15]
//	hostprobe kill PID
//	hostprobe snapshot [--output file|cm://namespace/name]
//	hostprobe serve [--address ADDR] [--port N]
//
// Every reporting command accepts --format json|yaml|table and --output.
// Commands that report CPU usage take a baseline first and wait --interval
// (500ms by default) so the values cover a real interval.
//
// # Configuration
//
// --config (or HOSTPROBE_CONFIG) names a YAML file with collector, server
// and output defaults. Flags given on the command line win over the file.
// --log-level (or LOG_LEVEL) sets the slog level; logs go to stderr so
// they never mix with command output.
package cli
