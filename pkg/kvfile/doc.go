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

// Package kvfile reads small line-oriented configuration files such as
// os-release(5).
//
//	r := kvfile.New(kvfile.WithTrim(`"'`), kvfile.WithSkipEmpty(true))
//	m, err := r.Map("/etc/os-release")
//
// Files larger than the size limit (1MB by default) or with invalid UTF-8
// are rejected. Lines starting with # are skipped unless disabled with
// WithComments(false).
package kvfile
