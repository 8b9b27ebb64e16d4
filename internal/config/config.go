package config

import "time"

// Config is the root configuration structure.
type Config struct {
	Storage StorageConfig `json:"storage"`
	Editor  EditorConfig  `json:"editor"`
	UI      UIConfig      `json:"ui"`
	Keymap  KeymapConfig  `json:"keymap"`
}

// StorageConfig configures the note database and backups.
type StorageConfig struct {
	DataDir        string        `json:"dataDir"`        // directory holding jot.db and backups.db (supports ~ expansion)
	BackupInterval time.Duration `json:"backupInterval"` // how often a snapshot is appended
}

// EditorConfig configures the note editor.
type EditorConfig struct {
	Substitutions   bool `json:"substitutions"` // expand typed sequences like -> into arrows
	ShowLineNumbers bool `json:"showLineNumbers"`
}

// UIConfig configures UI appearance.
type UIConfig struct {
	ShowFooter  bool   `json:"showFooter"`
	Theme       string `json:"theme"`       // "dark" or "light"
	NarrowWidth int    `json:"narrowWidth"` // terminal width below which the narrow layout kicks in
}

// KeymapConfig holds key binding overrides.
type KeymapConfig struct {
	Overrides map[string]string `json:"overrides"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			DataDir:        "~/.local/share/jot",
			BackupInterval: 24 * time.Hour,
		},
		Editor: EditorConfig{
			Substitutions:   true,
			ShowLineNumbers: false,
		},
		UI: UIConfig{
			ShowFooter:  true,
			Theme:       "dark",
			NarrowWidth: 80,
		},
		Keymap: KeymapConfig{
			Overrides: make(map[string]string),
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Storage.BackupInterval <= 0 {
		c.Storage.BackupInterval = 24 * time.Hour
	}
	if c.UI.NarrowWidth <= 0 {
		c.UI.NarrowWidth = 80
	}
	if c.UI.Theme != "dark" && c.UI.Theme != "light" {
		c.UI.Theme = "dark"
	}
	return nil
}
