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
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Error types for version parsing failures
var (
	ErrEmptyVersion      = errors.New("version string is empty")
	ErrTooManyComponents = errors.New("version has more than 3 components")
	ErrNonNumeric        = errors.New("version component is not numeric")
)

// Version is a dotted version number with up to three significant
// components.
type Version struct {
	Major int `json:"major" yaml:"major"`
	Minor int `json:"minor" yaml:"minor"`
	Patch int `json:"patch" yaml:"patch"`

	// Precision is the number of significant components (1, 2 or 3).
	Precision int `json:"precision" yaml:"precision"`

	// Extras holds trailing metadata such as "-45-generic" or ".3447".
	Extras string `json:"extras,omitempty" yaml:"extras,omitempty"`
}

// NewVersion creates a Version with all three components significant.
func NewVersion(major, minor, patch int) Version {
	return Version{Major: major, Minor: minor, Patch: patch, Precision: 3}
}

// String returns the version up to its precision. Extras are not included.
func (v Version) String() string {
	switch v.Precision {
	case 1:
		return strconv.Itoa(v.Major)
	case 2:
		return fmt.Sprintf("%d.%d", v.Major, v.Minor)
	default:
		return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	}
}

// ParseVersion parses "1", "1.2", "1.2.3" with an optional "v" prefix and
// an optional "-suffix" or "+metadata" tail kept in Extras.
func ParseVersion(s string) (Version, error) {
	if s == "" {
		return Version{}, ErrEmptyVersion
	}
	s = strings.TrimPrefix(s, "v")

	var v Version
	main := s
	if i := strings.IndexAny(s, "-+"); i > 0 && isDigit(s[i-1]) {
		main, v.Extras = s[:i], s[i:]
	}

	parts := strings.Split(main, ".")
	if len(parts) > 3 {
		return Version{}, ErrTooManyComponents
	}
	if err := v.setComponents(parts); err != nil {
		return Version{}, err
	}
	return v, nil
}

// MustParseVersion is ParseVersion for hardcoded strings. It panics on error.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(fmt.Sprintf("MustParseVersion: %v", err))
	}
	return v
}

// ParseKernelRelease parses an OS kernel release string. Components past the
// third and any non-numeric tail are kept in Extras.
func ParseKernelRelease(s string) (Version, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Version{}, ErrEmptyVersion
	}

	end := 0
	for end < len(s) && (isDigit(s[end]) || s[end] == '.') {
		end++
	}
	main := strings.TrimRight(s[:end], ".")
	if main == "" {
		return Version{}, fmt.Errorf("%w: %q", ErrNonNumeric, s)
	}

	var v Version
	parts := strings.Split(main, ".")
	if len(parts) > 3 {
		v.Extras = "." + strings.Join(parts[3:], ".")
		parts = parts[:3]
	}
	v.Extras += s[len(main):]

	if err := v.setComponents(parts); err != nil {
		return Version{}, err
	}
	return v, nil
}

func (v *Version) setComponents(parts []string) error {
	for i, part := range parts {
		if part == "" {
			return fmt.Errorf("%w: empty component", ErrNonNumeric)
		}
		for j := 0; j < len(part); j++ {
			if !isDigit(part[j]) {
				return fmt.Errorf("%w: %q", ErrNonNumeric, part)
			}
		}
		num, err := strconv.Atoi(part)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrNonNumeric, part)
		}
		switch i {
		case 0:
			v.Major = num
		case 1:
			v.Minor = num
		case 2:
			v.Patch = num
		}
	}
	v.Precision = len(parts)
	return nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// Compare returns -1, 0 or 1 comparing v with other on the components both
// specify.
func (v Version) Compare(other Version) int {
	precision := min(v.Precision, other.Precision)
	pairs := [][2]int{{v.Major, other.Major}, {v.Minor, other.Minor}, {v.Patch, other.Patch}}

	for i := 0; i < precision && i < len(pairs); i++ {
		a, b := pairs[i][0], pairs[i][1]
		if a < b {
			return -1
		}
		if a > b {
			return 1
		}
	}
	return 0
}

// AtLeast reports whether v is equal to or newer than minimum.
func (v Version) AtLeast(minimum Version) bool {
	return v.Compare(minimum) >= 0
}

// IsValid reports whether all components are non-negative and the
// precision is 1, 2 or 3.
func (v Version) IsValid() bool {
	if v.Major < 0 || v.Minor < 0 || v.Patch < 0 {
		return false
	}
	return v.Precision >= 1 && v.Precision <= 3
}

// KernelAtLeast parses release and minimum and reports whether the release
// satisfies the minimum.
func KernelAtLeast(release, minimum string) (bool, error) {
	kv, err := ParseKernelRelease(release)
	if err != nil {
		return false, fmt.Errorf("invalid kernel release %q: %w", release, err)
	}
	mv, err := ParseVersion(minimum)
	if err != nil {
		return false, fmt.Errorf("invalid minimum version %q: %w", minimum, err)
	}
	return kv.AtLeast(mv), nil
}
