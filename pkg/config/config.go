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

package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/hostprobe/pkg/defaults"
	"github.com/NVIDIA/hostprobe/pkg/errors"
	"github.com/NVIDIA/hostprobe/pkg/serializer"
)

// Environment variables that override file values.
const (
	EnvConfigPath      = "HOSTPROBE_CONFIG"
	EnvCPUThrottle     = "HOSTPROBE_CPU_THROTTLE"
	EnvPort            = "PORT"
	EnvShutdownSeconds = "SHUTDOWN_TIMEOUT_SECONDS"
)

// Config is the hostprobe configuration file.
type Config struct {
	Collector CollectorConfig `yaml:"collector"`
	Server    ServerConfig    `yaml:"server"`
	Output    OutputConfig    `yaml:"output"`
}

// CollectorConfig tunes host data collection.
type CollectorConfig struct {
	// CPUThrottle is the minimum interval between two CPU counter reads.
	CPUThrottle time.Duration `yaml:"cpuThrottle"`

	// Timeout bounds a single collection request.
	Timeout time.Duration `yaml:"timeout"`
}

// ServerConfig configures the hostprobed HTTP frontend.
type ServerConfig struct {
	Address         string        `yaml:"address"`
	Port            int           `yaml:"port"`
	RateLimit       float64       `yaml:"rateLimit"`
	RateLimitBurst  int           `yaml:"rateLimitBurst"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

// OutputConfig sets the default snapshot destination.
type OutputConfig struct {
	Format string `yaml:"format"`
	Path   string `yaml:"path"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Collector: CollectorConfig{
			CPUThrottle: defaults.CPUSampleThrottle,
			Timeout:     defaults.CollectorTimeout,
		},
		Server: ServerConfig{
			Port:            defaults.ServerPort,
			RateLimit:       defaults.ServerRateLimit,
			RateLimitBurst:  defaults.ServerRateLimitBurst,
			ShutdownTimeout: defaults.ServerShutdownTimeout,
		},
		Output: OutputConfig{
			Format: string(serializer.FormatJSON),
		},
	}
}

// Load reads the configuration from path, falling back to HOSTPROBE_CONFIG
// and then to the defaults when neither is set. Environment overrides are
// applied last and the result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest,
				"failed to read config file", err, map[string]any{"path": path})
		}
		if err := decode(bytes.NewReader(data), cfg); err != nil {
			return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest,
				"failed to parse config file", err, map[string]any{"path": path})
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return err
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := strings.TrimSpace(os.Getenv(EnvCPUThrottle)); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return errors.WrapWithContext(errors.ErrCodeInvalidRequest,
				"invalid cpu throttle", err, map[string]any{"env": EnvCPUThrottle, "value": v})
		}
		c.Collector.CPUThrottle = d
	}

	if v := strings.TrimSpace(os.Getenv(EnvPort)); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return errors.WrapWithContext(errors.ErrCodeInvalidRequest,
				"invalid port", err, map[string]any{"env": EnvPort, "value": v})
		}
		c.Server.Port = port
	}

	// Lets the shutdown window match a service manager stop timeout
	if v := strings.TrimSpace(os.Getenv(EnvShutdownSeconds)); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil || seconds <= 0 {
			return errors.NewWithContext(errors.ErrCodeInvalidRequest,
				"invalid shutdown timeout", map[string]any{"env": EnvShutdownSeconds, "value": v})
		}
		c.Server.ShutdownTimeout = time.Duration(seconds) * time.Second
	}

	return nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Collector.CPUThrottle < defaults.MinCPUSampleThrottle {
		return invalid("collector.cpuThrottle", c.Collector.CPUThrottle,
			fmt.Sprintf("must be at least %s", defaults.MinCPUSampleThrottle))
	}
	if c.Collector.Timeout <= 0 {
		return invalid("collector.timeout", c.Collector.Timeout, "must be positive")
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return invalid("server.port", c.Server.Port, "must be between 0 and 65535")
	}
	if c.Server.RateLimit <= 0 {
		return invalid("server.rateLimit", c.Server.RateLimit, "must be positive")
	}
	if c.Server.RateLimitBurst < 1 {
		return invalid("server.rateLimitBurst", c.Server.RateLimitBurst, "must be at least 1")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return invalid("server.shutdownTimeout", c.Server.ShutdownTimeout, "must be positive")
	}
	if serializer.Format(c.Output.Format).IsUnknown() {
		return invalid("output.format", c.Output.Format,
			fmt.Sprintf("must be one of %s", strings.Join(serializer.SupportedFormats(), ", ")))
	}
	return nil
}

func invalid(field string, value any, reason string) error {
	return errors.NewWithContext(errors.ErrCodeInvalidRequest,
		fmt.Sprintf("invalid %s: %s", field, reason),
		map[string]any{"field": field, "value": value})
}
