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
	"fmt"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"
)

// DefaultMaxSize is the largest file a Reader accepts unless overridden.
const DefaultMaxSize = 1 << 20

// Option configures a Reader.
type Option func(*Reader)

// Reader splits files into entries and entries into key/value pairs.
type Reader struct {
	separator   string
	kvSeparator string
	maxSize     int
	comments    bool
	trim        string
	skipEmpty   bool
}

// WithSeparator sets the entry separator. Default is "\n".
func WithSeparator(sep string) Option {
	return func(r *Reader) {
		r.separator = sep
	}
}

// WithKVSeparator sets the key/value separator used by Map. Default is "=".
func WithKVSeparator(sep string) Option {
	return func(r *Reader) {
		r.kvSeparator = sep
	}
}

// WithMaxSize sets the largest accepted file size in bytes.
func WithMaxSize(n int) Option {
	return func(r *Reader) {
		r.maxSize = n
	}
}

// WithComments sets whether lines starting with # are dropped. Default true.
func WithComments(skip bool) Option {
	return func(r *Reader) {
		r.comments = skip
	}
}

// WithTrim sets characters stripped from both ends of every value, for
// example quotes.
func WithTrim(chars string) Option {
	return func(r *Reader) {
		r.trim = chars
	}
}

// WithSkipEmpty drops keys whose value is empty or missing.
func WithSkipEmpty(skip bool) Option {
	return func(r *Reader) {
		r.skipEmpty = skip
	}
}

// New returns a Reader with newline-separated key=value defaults.
func New(opts ...Option) *Reader {
	r := &Reader{
		separator:   "\n",
		kvSeparator: "=",
		maxSize:     DefaultMaxSize,
		comments:    true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Lines returns the non-empty, trimmed entries of path.
func (r *Reader) Lines(path string) ([]string, error) {
	if path == "" {
		return nil, fmt.Errorf("file path cannot be empty")
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", path, err)
	}
	if len(b) > r.maxSize {
		return nil, fmt.Errorf("file %q exceeds maximum size of %d bytes", path, r.maxSize)
	}
	if !utf8.Valid(b) {
		return nil, fmt.Errorf("content of file %q is not valid UTF-8", path)
	}

	return r.split(string(b)), nil
}

func (r *Reader) split(content string) []string {
	parts := strings.Split(content, r.separator)
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" || (r.comments && strings.HasPrefix(part, "#")) {
			continue
		}
		out = append(out, part)
	}
	return out
}

// Map returns the key/value pairs of path. Keys without a separator map to
// an empty value unless WithSkipEmpty is set. Later keys win.
func (r *Reader) Map(path string) (map[string]string, error) {
	lines, err := r.Lines(path)
	if err != nil {
		return nil, err
	}

	out := make(map[string]string, len(lines))
	for _, line := range lines {
		key, value, found := strings.Cut(line, r.kvSeparator)
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if r.trim != "" {
			value = strings.Trim(value, r.trim)
		}
		if r.skipEmpty && (!found || value == "") {
			slog.Debug("skipping entry without value", "path", path, "key", key)
			continue
		}
		out[key] = value
	}
	return out, nil
}
