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

// Package snapshotter captures a complete picture of the current host.
//
// A Snapshot carries a header (kind Snapshot, apiVersion
// hostprobe.nvidia.com/v1alpha1, timestamp, version, hostname, backend)
// followed by identity, capabilities, resources and processes:
//
//	kind: Snapshot
//	apiVersion: hostprobe.nvidia.com/v1alpha1
//	metadata:
//	  timestamp: "2025-12-30T10:30:00Z"
//	  hostname: node-1
//	  backend: linux
//	identity: {...}
//	resources: {...}
//	processes: [...]
//
// The three parts are read concurrently with errgroup. Because CPU values are
// deltas, a one-shot snapshot sets SampleInterval so the first read becomes
// the baseline:
//
//	rec := snapshotter.NewRecorder()
//	c := collector.New(collector.WithDiagnostics(rec.Record))
//	s := &snapshotter.NodeSnapshotter{
//	    Version:        version,
//	    Collector:      c,
//	    Diagnostics:    rec,
//	    Serializer:     serializer.NewFileWriterOrStdout(serializer.FormatYAML, path),
//	    SampleInterval: time.Second,
//	}
//	err := s.Measure(ctx)
//
// Prometheus metrics record collection duration, per-part duration and the
// number of processes in the last snapshot.
package snapshotter
