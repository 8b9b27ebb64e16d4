package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	configDir  = ".config/jot"
	configFile = "config.json"
)

// rawConfig is the JSON-unmarshaling intermediary. Pointer and string fields
// distinguish "absent" from zero values so partial files merge into defaults.
type rawConfig struct {
	Storage rawStorageConfig `json:"storage"`
	Editor  rawEditorConfig  `json:"editor"`
	UI      rawUIConfig      `json:"ui"`
	Keymap  KeymapConfig     `json:"keymap"`
}

type rawStorageConfig struct {
	DataDir        string `json:"dataDir"`
	BackupInterval string `json:"backupInterval"`
}

type rawEditorConfig struct {
	Substitutions   *bool `json:"substitutions"`
	ShowLineNumbers *bool `json:"showLineNumbers"`
}

type rawUIConfig struct {
	ShowFooter  *bool  `json:"showFooter"`
	Theme       string `json:"theme"`
	NarrowWidth *int   `json:"narrowWidth"`
}

// Load loads configuration from the default location.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom loads configuration from a specific path.
// If path is empty, uses ~/.config/jot/config.json
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = ConfigPath()
		if path == "" {
			return cfg, nil // Return defaults on error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	mergeConfig(cfg, &raw)

	cfg.Storage.DataDir = ExpandPath(cfg.Storage.DataDir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// mergeConfig merges raw config values into the config.
func mergeConfig(cfg *Config, raw *rawConfig) {
	// Storage
	if raw.Storage.DataDir != "" {
		cfg.Storage.DataDir = raw.Storage.DataDir
	}
	if raw.Storage.BackupInterval != "" {
		if d, err := time.ParseDuration(raw.Storage.BackupInterval); err == nil {
			cfg.Storage.BackupInterval = d
		}
	}

	// Editor
	if raw.Editor.Substitutions != nil {
		cfg.Editor.Substitutions = *raw.Editor.Substitutions
	}
	if raw.Editor.ShowLineNumbers != nil {
		cfg.Editor.ShowLineNumbers = *raw.Editor.ShowLineNumbers
	}

	// UI
	if raw.UI.ShowFooter != nil {
		cfg.UI.ShowFooter = *raw.UI.ShowFooter
	}
	if raw.UI.Theme != "" {
		cfg.UI.Theme = raw.UI.Theme
	}
	if raw.UI.NarrowWidth != nil {
		cfg.UI.NarrowWidth = *raw.UI.NarrowWidth
	}

	// Keymap
	if raw.Keymap.Overrides != nil {
		for k, v := range raw.Keymap.Overrides {
			cfg.Keymap.Overrides[k] = v
		}
	}
}

// ExpandPath expands ~ to home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, configDir, configFile)
}
