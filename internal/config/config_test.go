package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENVPATH_HOME", t.TempDir())
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 100*time.Millisecond, cfg.Relay.PollInterval)
	assert.Equal(t, DefaultTitle, cfg.Singleton.Title)
	assert.Equal(t, "auto", cfg.Store.Backend)
	assert.True(t, cfg.History.Enabled, "history should be enabled by default")
	assert.NotEmpty(t, cfg.Relay.Dir)
	assert.NotEmpty(t, cfg.Store.File)
}

func TestLoadFileThenEnv(t *testing.T) {
	home := t.TempDir()
	t.Setenv("ENVPATH_HOME", home)
	toml := "[relay]\npoll_interval = \"250ms\"\n[store]\nbackend = \"file\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.toml"), []byte(toml), 0o644))
	t.Setenv("ENVPATH_SINGLETON_ADDRESS", "127.0.0.1:50000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, cfg.Relay.PollInterval, "file value not applied")
	assert.Equal(t, "file", cfg.Store.Backend, "file value not applied")
	assert.Equal(t, "127.0.0.1:50000", cfg.Singleton.Address, "env value not applied")
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("ENVPATH_HOME", t.TempDir())
	t.Setenv("ENVPATH_STORE_BACKEND", "floppy")
	_, err := Load()
	assert.Error(t, err)
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "relay.poll_interval", envKey("ENVPATH_RELAY_POLL_INTERVAL"))
}
