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

// Package serializer renders hostprobe documents as JSON, YAML or tables and
// writes them to stdout, files, HTTP responses or Kubernetes ConfigMaps.
//
// Formats:
//   - json: indented JSON
//   - yaml: YAML with two-space indentation
//   - table: columns for values implementing Tabular, flattened FIELD/VALUE
//     pairs for everything else
//
// Usage:
//
//	s := serializer.NewFileWriterOrStdout(serializer.FormatYAML, output)
//	defer serializer.Close(s)
//	if err := s.Serialize(ctx, snap); err != nil {
//	    return err
//	}
//
// Output paths of the form cm://namespace/name write to a ConfigMap through
// server-side apply using the ambient kubeconfig.
//
// For HTTP responses:
//
//	serializer.RespondJSON(w, http.StatusOK, data)
package serializer
