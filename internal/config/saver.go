package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// saveConfig is the JSON-marshaling intermediary that uses string durations.
type saveConfig struct {
	Storage saveStorageConfig `json:"storage"`
	Editor  saveEditorConfig  `json:"editor"`
	UI      saveUIConfig      `json:"ui"`
	Keymap  KeymapConfig      `json:"keymap,omitempty"`
}

type saveStorageConfig struct {
	DataDir        string `json:"dataDir,omitempty"`
	BackupInterval string `json:"backupInterval,omitempty"`
}

type saveEditorConfig struct {
	Substitutions   bool `json:"substitutions"`
	ShowLineNumbers bool `json:"showLineNumbers"`
}

type saveUIConfig struct {
	ShowFooter  bool   `json:"showFooter"`
	Theme       string `json:"theme,omitempty"`
	NarrowWidth int    `json:"narrowWidth,omitempty"`
}

// toSaveConfig converts Config to the JSON-serializable format.
func toSaveConfig(cfg *Config) saveConfig {
	return saveConfig{
		Storage: saveStorageConfig{
			DataDir:        cfg.Storage.DataDir,
			BackupInterval: cfg.Storage.BackupInterval.String(),
		},
		Editor: saveEditorConfig{
			Substitutions:   cfg.Editor.Substitutions,
			ShowLineNumbers: cfg.Editor.ShowLineNumbers,
		},
		UI: saveUIConfig{
			ShowFooter:  cfg.UI.ShowFooter,
			Theme:       cfg.UI.Theme,
			NarrowWidth: cfg.UI.NarrowWidth,
		},
		Keymap: cfg.Keymap,
	}
}

// Save writes the configuration to the default location.
func Save(cfg *Config) error {
	return SaveTo(ConfigPath(), cfg)
}

// SaveTo writes the configuration to an explicit path.
func SaveTo(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	sc := toSaveConfig(cfg)
	data, err := json.MarshalIndent(sc, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// SaveTheme updates only the theme name in config and saves.
func SaveTheme(theme string) error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	cfg.UI.Theme = theme
	return Save(cfg)
}
