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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadOSRelease(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "os-release")
	content := `NAME="Ubuntu"
VERSION_ID="24.04"
ID=ubuntu
PRETTY_NAME="Ubuntu 24.04.1 LTS"
# comment
HOME_URL=""
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	r, err := ReadOSRelease(filepath.Join(dir, "missing"), path)
	require.NoError(t, err)

	assert.Equal(t, "Ubuntu", r.Name)
	assert.Equal(t, "ubuntu", r.ID)
	assert.Equal(t, "24.04", r.VersionID)
	assert.Equal(t, "24.04", r.Version())
	assert.Equal(t, "Ubuntu 24.04.1 LTS", r.PrettyName)
}

func TestReadOSRelease_RollingRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "os-release")
	require.NoError(t, os.WriteFile(path, []byte("NAME='Arch Linux'\nPRETTY_NAME='Arch Linux'\n"), 0o600))

	r, err := ReadOSRelease(path)
	require.NoError(t, err)
	assert.Equal(t, "Arch Linux", r.Name)
	assert.Equal(t, "Arch Linux", r.Version())
}

func TestReadOSRelease_NoneReadable(t *testing.T) {
	dir := t.TempDir()
	_, err := ReadOSRelease(filepath.Join(dir, "a"), filepath.Join(dir, "b"))
	require.Error(t, err)
}
