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

//go:build darwin

package darwin

import "math"

// Terminate sends SIGKILL to pid without waiting for it to exit.
func (b *Backend) Terminate(pid uint32) bool {
	if pid == 0 || pid > math.MaxInt32 {
		return false
	}
	if err := b.kill(int(pid)); err != nil {
		b.opts.Logger.Debug("terminate failed", "pid", pid, "error", err)
		return false
	}
	return true
}
