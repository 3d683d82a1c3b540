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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/hostprobe/pkg/defaults"
	"github.com/NVIDIA/hostprobe/pkg/errors"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvConfigPath, EnvCPUThrottle, EnvPort, EnvShutdownSeconds} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hostprobe.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, defaults.CPUSampleThrottle, cfg.Collector.CPUThrottle)
	assert.Equal(t, defaults.ServerPort, cfg.Server.Port)
	assert.Equal(t, "json", cfg.Output.Format)
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
collector:
  cpuThrottle: 750ms
server:
  port: 9100
  rateLimit: 10
  rateLimitBurst: 20
  shutdownTimeout: 5s
output:
  format: yaml
  path: /tmp/snap.yaml
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 750*time.Millisecond, cfg.Collector.CPUThrottle)
	assert.Equal(t, defaults.CollectorTimeout, cfg.Collector.Timeout)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.InDelta(t, 10.0, cfg.Server.RateLimit, 0.0001)
	assert.Equal(t, 20, cfg.Server.RateLimitBurst)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "yaml", cfg.Output.Format)
	assert.Equal(t, "/tmp/snap.yaml", cfg.Output.Path)
}

func TestLoad_PathFromEnv(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "server:\n  port: 7000\n")
	t.Setenv(EnvConfigPath, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Server.Port)
}

func TestLoad_EmptyFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "server:\n  port: 7000\n")
	t.Setenv(EnvPort, "7100")
	t.Setenv(EnvShutdownSeconds, "12")
	t.Setenv(EnvCPUThrottle, "1s")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7100, cfg.Server.Port)
	assert.Equal(t, 12*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, time.Second, cfg.Collector.CPUThrottle)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
	}{
		{name: "unknown key", content: "collector:\n  interval: 1s\n"},
		{name: "malformed yaml", content: "server: [\n"},
		{name: "throttle too small", content: "collector:\n  cpuThrottle: 1ms\n"},
		{name: "bad port", content: "server:\n  port: 70000\n"},
		{name: "bad format", content: "output:\n  format: xml\n"},
		{name: "bad burst", content: "server:\n  rateLimitBurst: 0\n"},
		{name: "bad env throttle", env: map[string]string{EnvCPUThrottle: "fast"}},
		{name: "bad env port", env: map[string]string{EnvPort: "http"}},
		{name: "bad env shutdown", env: map[string]string{EnvShutdownSeconds: "-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := writeConfig(t, tt.content)

			_, err := Load(path)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest), "got %v", err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))
}
