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

package kvfile

import (
	"errors"
	"fmt"
)

// DefaultOSReleasePaths lists the os-release(5) locations in lookup order.
var DefaultOSReleasePaths = []string{"/etc/os-release", "/usr/lib/os-release"}

// OSRelease holds the os-release fields used to identify a distribution.
type OSRelease struct {
	ID         string
	Name       string
	VersionID  string
	PrettyName string
}

// Version returns VERSION_ID, or PRETTY_NAME for rolling releases that do
// not set one.
func (r OSRelease) Version() string {
	if r.VersionID != "" {
		return r.VersionID
	}
	return r.PrettyName
}

// ReadOSRelease parses the first readable os-release file among paths.
// When paths is empty DefaultOSReleasePaths is used.
func ReadOSRelease(paths ...string) (OSRelease, error) {
	if len(paths) == 0 {
		paths = DefaultOSReleasePaths
	}

	r := New(
		WithTrim(`"'`),
		WithSkipEmpty(true),
	)

	var errs []error
	for _, path := range paths {
		m, err := r.Map(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		return OSRelease{
			ID:         m["ID"],
			Name:       m["NAME"],
			VersionID:  m["VERSION_ID"],
			PrettyName: m["PRETTY_NAME"],
		}, nil
	}

	return OSRelease{}, fmt.Errorf("no readable os-release file: %w", errors.Join(errs...))
}
