// Package config loads the lazystatus configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// AppConfig defines the global lazystatus configuration options.
type AppConfig struct {
	HideMergeArtifacts bool   `yaml:"hide_merge_artifacts"` // Drop merge-tool backup files from the status view
	ShowIcons          bool   `yaml:"show_icons"`           // Render Nerd Font icons in the file tree
	TreeView           bool   `yaml:"tree_view"`            // Start in hierarchical mode instead of flat list
	AutoRefresh        bool   `yaml:"auto_refresh"`         // Watch the git dir and refresh on changes
	Theme              string `yaml:"theme"`                // Theme name: see theme.AvailableThemes
	DebugLog           string `yaml:"debug_log"`
	FolderOpenIcon     string `yaml:"folder_open_icon"`
	FolderClosedIcon   string `yaml:"folder_closed_icon"`
	CommandTimeout     int    `yaml:"command_timeout"` // Seconds before a git call is abandoned
}

// DefaultConfig returns the default configuration values.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		HideMergeArtifacts: true,
		ShowIcons:          true,
		TreeView:           true,
		AutoRefresh:        true,
		CommandTimeout:     10,
	}
}

// Timeout returns the configured subprocess timeout as a duration.
func (c *AppConfig) Timeout() time.Duration {
	if c.CommandTimeout <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.CommandTimeout) * time.Second
}

// LoadConfig reads the configuration file, falling back to defaults when no
// file exists. An explicit path that cannot be read is an error; a missing
// default-location file is not.
func LoadConfig(path string) (*AppConfig, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
	}
	if path == "" {
		return cfg, nil
	}

	expanded, err := ExpandPath(path)
	if err == nil {
		path = expanded
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the user's own flag or config dir
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

func defaultConfigPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "lazystatus", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "lazystatus", "config.yaml")
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
	}
	return path, nil
}
