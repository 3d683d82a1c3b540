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

package version

import (
	"testing"
)

func FuzzParseKernelRelease(f *testing.F) {
	for _, s := range []string{"6.8.0-45-generic", "10.0.22631.3447", "23.4.0", "", ".", "1..2", "v1", "9999999999999999999999"} {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, input string) {
		v, err := ParseKernelRelease(input)
		if err != nil {
			return
		}
		if !v.IsValid() {
			t.Errorf("ParseKernelRelease(%q) returned invalid version: %+v", input, v)
		}
		v2, err := ParseVersion(v.String())
		if err != nil {
			t.Errorf("re-parsing %q (from %q) failed: %v", v.String(), input, err)
		} else if v.Compare(v2) != 0 {
			t.Errorf("round-trip mismatch for %q: %+v != %+v", input, v, v2)
		}
	})
}
