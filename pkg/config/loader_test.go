// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
[logger]
level = "debug"
format = "json"

[database]
driver = "lite"
dir = ":memory:"

[api]
address = "0.0.0.0:8080"
ratelimit = 5.5
maxbatch = 8
`

func writeConfig(t *testing.T) string {
	f := filepath.Join(t.TempDir(), "bulletproof.toml")
	require.NoError(t, os.WriteFile(f, []byte(sample), 0o600))
	return f
}

func TestDefaults(t *testing.T) {
	Mock(defaults())

	r := Get()
	assert.Equal(t, "info", r.Logger.Level)
	assert.Equal(t, "heavy", r.Database.Driver)
	assert.Equal(t, 16, r.Prover.MaxRequestValues)
	assert.True(t, r.API.Enabled)
}

func TestLoadFile(t *testing.T) {
	f := writeConfig(t)
	require.NoError(t, Load(f, nil))

	r := Get()
	assert.Equal(t, f, r.UsedConfigFile)
	assert.Equal(t, "debug", r.Logger.Level)
	assert.Equal(t, "json", r.Logger.Format)
	assert.Equal(t, "lite", r.Database.Driver)
	assert.Equal(t, ":memory:", r.Database.Dir)
	assert.Equal(t, "0.0.0.0:8080", r.API.Address)
	assert.Equal(t, 5.5, r.API.RateLimit)
	assert.Equal(t, 8, r.API.MaxBatch)

	// untouched keys keep their defaults
	assert.Equal(t, 40, r.API.Burst)
	assert.Equal(t, "stdout", r.Logger.Output)
}

func TestLoadPrecedence(t *testing.T) {
	f := writeConfig(t)
	t.Setenv("BP_DATABASE_DIR", "/tmp/from-env")
	t.Setenv("BP_LOGGER_LEVEL", "warn")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	DefineFlags(fs)
	require.NoError(t, fs.Parse([]string{"--logger.level", "error"}))

	require.NoError(t, Load(f, fs))

	r := Get()
	// flag over env over file
	assert.Equal(t, "error", r.Logger.Level)
	// env over file
	assert.Equal(t, "/tmp/from-env", r.Database.Dir)
	// file over flag default
	assert.Equal(t, "lite", r.Database.Driver)
}

func TestLoadMissingFile(t *testing.T) {
	Mock(defaults())

	err := Load(filepath.Join(t.TempDir(), "missing.toml"), nil)
	assert.Error(t, err)

	// a failed load leaves the registry untouched
	assert.Equal(t, "info", Get().Logger.Level)
}
