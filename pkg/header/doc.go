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

// Package header provides the Kubernetes-style envelope of hostprobe
// documents.
//
// Every snapshot written by the CLI, the query server or the ConfigMap
// writer starts with:
//
//	kind: Snapshot
//	apiVersion: hostprobe.nvidia.com/v1alpha1
//	metadata:
//	  timestamp: "2025-12-30T10:30:00Z"
//	  version: v0.3.0
//	  hostname: gpu-node-1
//	  backend: linux
//
// Usage:
//
//	h := header.New(header.KindSnapshot,
//	    header.WithMetadata(header.MetadataVersion, version),
//	    header.WithMetadata(header.MetadataHostname, id.Hostname),
//	)
//
// Consumers should check APIVersion before parsing the rest of the document.
package header
