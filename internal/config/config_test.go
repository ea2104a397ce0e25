package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Syphdias/zcurses/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "zcurses.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Log.File)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[log]
file = "/tmp/zcurses.log"
level = "debug"
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/zcurses.log", cfg.Log.File)
	assert.Equal(t, "debug", cfg.Log.Level)

	lvl, err := cfg.Log.ZerologLevel()
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, lvl)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
[log]
level = "debug"
`)

	t.Setenv("ZCURSES_LOG_LEVEL", "warn")
	t.Setenv("ZCURSES_LOG_FILE", "/tmp/override.log")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "/tmp/override.log", cfg.Log.File)
}

func TestLoadBadLevel(t *testing.T) {
	path := writeConfig(t, `
[log]
level = "shouting"
`)

	_, err := config.Load(path)
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nosuch.toml"))
	require.Error(t, err)
}

func TestLoadBadTOML(t *testing.T) {
	path := writeConfig(t, `log = [`)

	_, err := config.Load(path)
	require.Error(t, err)
}
