package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.True(t, cfg.HideMergeArtifacts)
	assert.True(t, cfg.ShowIcons)
	assert.True(t, cfg.TreeView)
	assert.True(t, cfg.AutoRefresh)
	assert.Equal(t, 10, cfg.CommandTimeout)
}

func TestTimeout(t *testing.T) {
	cfg := &AppConfig{CommandTimeout: 30}
	assert.Equal(t, 30*time.Second, cfg.Timeout())

	cfg.CommandTimeout = 0
	assert.Equal(t, 10*time.Second, cfg.Timeout())

	cfg.CommandTimeout = -5
	assert.Equal(t, 10*time.Second, cfg.Timeout())
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `theme: dracula
tree_view: false
command_timeout: 42
hide_merge_artifacts: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "dracula", cfg.Theme)
	assert.False(t, cfg.TreeView)
	assert.Equal(t, 42, cfg.CommandTimeout)
	assert.False(t, cfg.HideMergeArtifacts)
	// Unset keys keep their defaults.
	assert.True(t, cfg.ShowIcons)
}

func TestLoadConfigExplicitMissingPathFails(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadConfigMissingDefaultPathUsesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: [unclosed"), 0o600))

	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandPath("~/x/y.yaml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "x", "y.yaml"), got)

	got, err = ExpandPath("/abs/path.yaml")
	require.NoError(t, err)
	assert.Equal(t, "/abs/path.yaml", got)

	got, err = ExpandPath("relative.yaml")
	require.NoError(t, err)
	assert.Equal(t, "relative.yaml", got)
}
