package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultServerURL, cfg.ServerURL)
	assert.Empty(t, cfg.Username)
}

func TestLoad_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
server_url = "https://assess.example.edu"
username = "ada"
demo = true
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://assess.example.edu", cfg.ServerURL)
	assert.Equal(t, "ada", cfg.Username)
	assert.True(t, cfg.Demo)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`server_url = "https://file.example.edu"`), 0o644))

	t.Setenv("ADAPTEST_SERVER", "https://env.example.edu")
	t.Setenv("ADAPTEST_DB", "/tmp/override.db")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.edu", cfg.ServerURL)
	assert.Equal(t, "/tmp/override.db", cfg.DBPath)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`server_url = [broken`), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
