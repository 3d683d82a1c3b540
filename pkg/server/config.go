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

package server

import (
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/NVIDIA/hostprobe/pkg/config"
	"github.com/NVIDIA/hostprobe/pkg/defaults"
)

// Config holds server configuration
type Config struct {
	// Server identity
	Name    string
	Version string

	// Handlers are added to the server behind the API middleware chain.
	// Keys are net/http ServeMux patterns, e.g. "GET /v1/identity".
	Handlers map[string]http.HandlerFunc

	// Server configuration
	Address string
	Port    int

	// Rate limiting configuration
	RateLimit      rate.Limit // requests per second
	RateLimitBurst int        // burst size

	// MaxBulkRequests caps concurrent API handler executions.
	MaxBulkRequests int

	// Timeouts
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
}

// NewConfig returns a new Config with built-in defaults.
func NewConfig() *Config {
	return &Config{
		Name:              "server",
		Version:           "undefined",
		Port:              defaults.ServerPort,
		RateLimit:         defaults.ServerRateLimit,
		RateLimitBurst:    defaults.ServerRateLimitBurst,
		MaxBulkRequests:   defaults.ServerMaxBulkRequests,
		ReadTimeout:       defaults.ServerReadTimeout,
		ReadHeaderTimeout: defaults.ServerReadHeaderTimeout,
		WriteTimeout:      defaults.ServerWriteTimeout,
		IdleTimeout:       defaults.ServerIdleTimeout,
		ShutdownTimeout:   defaults.ServerShutdownTimeout,
	}
}

// ConfigFrom derives a server Config from the loaded hostprobe configuration.
// Environment overrides were already applied by config.Load.
func ConfigFrom(c *config.Config) *Config {
	cfg := NewConfig()
	if c == nil {
		return cfg
	}
	cfg.Address = c.Server.Address
	cfg.Port = c.Server.Port
	if c.Server.RateLimit > 0 {
		cfg.RateLimit = rate.Limit(c.Server.RateLimit)
	}
	if c.Server.RateLimitBurst > 0 {
		cfg.RateLimitBurst = c.Server.RateLimitBurst
	}
	if c.Server.ShutdownTimeout > 0 {
		cfg.ShutdownTimeout = c.Server.ShutdownTimeout
	}
	return cfg
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Address, c.Port)
}
