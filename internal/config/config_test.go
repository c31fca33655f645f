package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "crawl.toml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadOverridesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
[simulation]
tick_rate = "50ms"
seed = 7

[journal]
enabled = true
flush_interval = "2s"
`))
	require.NoError(t, err)
	assert.Equal(t, 50*time.Millisecond, cfg.Simulation.TickRate)
	assert.Equal(t, int64(7), cfg.Simulation.Seed)
	assert.InDelta(t, 0.25, cfg.Simulation.WanderChance, 1e-9)
	assert.True(t, cfg.Journal.Enabled)
	assert.Equal(t, 2*time.Second, cfg.Journal.FlushInterval)
	assert.Equal(t, 256, cfg.Journal.BufferSize)
	assert.Equal(t, "scripts", cfg.Scripting.Dir)
}

func TestLoadRejectsBadValues(t *testing.T) {
	_, err := Load(writeConfig(t, "[simulation]\nwander_chance = 2.0\n"))
	assert.ErrorContains(t, err, "wander_chance")

	_, err = Load(writeConfig(t, "[journal]\nenabled = true\nflush_interval = \"0s\"\n"))
	assert.ErrorContains(t, err, "flush_interval")

	// disabled journal is not validated
	_, err = Load(writeConfig(t, "[journal]\nenabled = false\nflush_interval = \"0s\"\n"))
	assert.NoError(t, err)

	_, err = Load(writeConfig(t, "[simulation\n"))
	assert.ErrorContains(t, err, "parse config")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestShippedConfig(t *testing.T) {
	cfg, err := Load("../../config/crawl.toml")
	require.NoError(t, err)
	assert.Equal(t, "data/yaml/prefabs.yaml", cfg.Data.Prefabs)
}
