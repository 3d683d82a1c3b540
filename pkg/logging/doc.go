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

// Package logging configures log/slog for hostprobe binaries.
//
// Every logger writes JSON to stderr and carries "module" and "version"
// attributes so records from hostprobe and hostprobed can be told apart.
// Debug level adds the source location. Stdout stays reserved for command
// output.
//
//	logging.SetDefaultStructuredLogger("hostprobed", version)  // level from LOG_LEVEL
//	logging.SetDefaultStructuredLoggerWithLevel("hostprobe", version, "debug")
//
// Accepted levels are debug, info, warn (or warning) and error, in any case.
// Anything else means info.
//
// Libraries in this module never install a logger themselves. They log
// through slog.Default() or through a *slog.Logger passed in by the caller,
// and tests pass Discard() to keep output quiet.
package logging
