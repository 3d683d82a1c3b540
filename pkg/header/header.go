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

package header

import (
	"time"
)

// APIVersion is the schema version of every hostprobe document.
const APIVersion = "hostprobe.nvidia.com/v1alpha1"

// Kind represents the type of a hostprobe document.
type Kind string

// KindSnapshot marks a full host snapshot document.
const KindSnapshot Kind = "Snapshot"

// String returns the string representation of the Kind.
func (k Kind) String() string {
	return string(k)
}

// IsValid checks if the Kind is one of the recognized kinds.
func (k Kind) IsValid() bool {
	switch k {
	case KindSnapshot:
		return true
	default:
		return false
	}
}

// Metadata keys set by Init.
const (
	MetadataTimestamp = "timestamp"
	MetadataVersion   = "version"
	MetadataHostname  = "hostname"
	MetadataBackend   = "backend"
)

// Option is a functional option for configuring Header instances.
type Option func(*Header)

// WithMetadata adds a metadata key-value pair. Empty values are skipped.
func WithMetadata(key, value string) Option {
	return func(h *Header) {
		if value == "" {
			return
		}
		if h.Metadata == nil {
			h.Metadata = make(map[string]string)
		}
		h.Metadata[key] = value
	}
}

// WithKind sets the Kind field of the Header.
func WithKind(kind Kind) Option {
	return func(h *Header) {
		h.Kind = kind
	}
}

// WithAPIVersion overrides the default APIVersion.
func WithAPIVersion(version string) Option {
	return func(h *Header) {
		h.APIVersion = version
	}
}

// WithTimestamp sets the timestamp metadata instead of the current time.
func WithTimestamp(t time.Time) Option {
	return func(h *Header) {
		if h.Metadata == nil {
			h.Metadata = make(map[string]string)
		}
		h.Metadata[MetadataTimestamp] = t.UTC().Format(time.RFC3339)
	}
}

// Header contains metadata and versioning information for hostprobe
// documents. It follows Kubernetes-style resource conventions.
type Header struct {
	Kind       Kind              `json:"kind,omitempty" yaml:"kind,omitempty"`
	APIVersion string            `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// New creates a Header stamped with APIVersion and the current UTC time,
// then applies opts.
func New(kind Kind, opts ...Option) *Header {
	h := &Header{
		Kind:       kind,
		APIVersion: APIVersion,
		Metadata: map[string]string{
			MetadataTimestamp: time.Now().UTC().Format(time.RFC3339),
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Timestamp parses the timestamp metadata. The zero time is returned when
// it is missing or malformed.
func (h *Header) Timestamp() time.Time {
	ts, err := time.Parse(time.RFC3339, h.Metadata[MetadataTimestamp])
	if err != nil {
		return time.Time{}
	}
	return ts
}
