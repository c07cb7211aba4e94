package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "loader.yaml")
	contents := "plugins: \"aes! random\"\nsearch_paths:\n  - /opt/plugins\ndefault_path: /usr/lib/strongswan\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "aes! random", cfg.Plugins)
	assert.Equal(t, []string{"/opt/plugins"}, cfg.SearchPaths)
	assert.Equal(t, "/usr/lib/strongswan", cfg.DefaultPath)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "loader.yaml")
	require.NoError(t, os.WriteFile(path, []byte("plugins: \"aes\"\n"), 0o644))

	t.Setenv("PLUGINLOADER_PLUGINS", "random!")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "random!", cfg.Plugins, "expected env to override the file value")
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Empty(t, cfg.Plugins)
}

func TestValidateAggregatesErrors(t *testing.T) {
	cfg := &Config{
		PublicKeyPath: "/does/not/exist.pem",
		SearchPaths:   []string{""},
	}
	assert.Error(t, cfg.Validate())
}
