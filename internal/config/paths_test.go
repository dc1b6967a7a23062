package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataDirEnvOverride(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("ENVPATH_HOME", tmp)

	d, err := DataDir()
	require.NoError(t, err)
	assert.Equal(t, tmp, d)
}

func TestFilesLiveInDataDir(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("ENVPATH_HOME", tmp)

	for name, fn := range map[string]func() (string, error){
		"history.db":       DBPath,
		"config.toml":      ConfigPath,
		"environment.json": EnvironmentFilePath,
	} {
		p, err := fn()
		require.NoError(t, err, name)
		assert.Equal(t, filepath.Join(tmp, name), p)
	}
}

func TestEnsureDataDirCreatesDir(t *testing.T) {
	t.Setenv("ENVPATH_HOME", "")
	tmp := t.TempDir()
	// fake home by setting HOME/USERPROFILE
	t.Setenv("HOME", tmp)
	t.Setenv("USERPROFILE", tmp)

	d, err := EnsureDataDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmp, ".envpath"), d)
	assert.DirExists(t, d)
}
