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

package collector

import (
	"github.com/NVIDIA/hostprobe/pkg/platform"
)

// Factory creates the platform backend a Collector delegates to. It exists
// so tests and embedders can substitute the native backend.
type Factory interface {
	CreateBackend(opts ...platform.Option) platform.Backend
}

// DefaultFactory creates the backend compiled in for the running OS.
type DefaultFactory struct{}

// NewDefaultFactory creates a factory with production dependencies.
func NewDefaultFactory() *DefaultFactory {
	return &DefaultFactory{}
}

// CreateBackend returns the native backend, or platform.Unsupported.
func (f *DefaultFactory) CreateBackend(opts ...platform.Option) platform.Backend {
	return platform.New(opts...)
}

// FactoryFunc adapts a plain function to Factory.
type FactoryFunc func(opts ...platform.Option) platform.Backend

// CreateBackend calls fn.
func (fn FactoryFunc) CreateBackend(opts ...platform.Option) platform.Backend {
	return fn(opts...)
}
