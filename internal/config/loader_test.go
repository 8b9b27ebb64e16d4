package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFromMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	want := Default()
	if cfg.Storage.BackupInterval != want.Storage.BackupInterval {
		t.Errorf("BackupInterval = %v, want default %v", cfg.Storage.BackupInterval, want.Storage.BackupInterval)
	}
	if cfg.UI.Theme != "dark" {
		t.Errorf("Theme = %q, want dark", cfg.UI.Theme)
	}
	if !cfg.Editor.Substitutions {
		t.Error("Substitutions default should be true")
	}
}

func TestLoadFromPartialFileMergesDefaults(t *testing.T) {
	path := writeConfig(t, `{
		"storage": {"backupInterval": "6h"},
		"ui": {"theme": "light"}
	}`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Storage.BackupInterval != 6*time.Hour {
		t.Errorf("BackupInterval = %v, want 6h", cfg.Storage.BackupInterval)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("Theme = %q, want light", cfg.UI.Theme)
	}
	// Untouched fields keep their defaults.
	if !cfg.UI.ShowFooter {
		t.Error("ShowFooter default lost in merge")
	}
	if cfg.UI.NarrowWidth != 80 {
		t.Errorf("NarrowWidth = %d, want default 80", cfg.UI.NarrowWidth)
	}
}

func TestLoadFromExplicitFalseOverridesDefault(t *testing.T) {
	path := writeConfig(t, `{"editor": {"substitutions": false}, "ui": {"showFooter": false}}`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Editor.Substitutions {
		t.Error("explicit substitutions=false ignored")
	}
	if cfg.UI.ShowFooter {
		t.Error("explicit showFooter=false ignored")
	}
}

func TestLoadFromBadDurationKeepsDefault(t *testing.T) {
	path := writeConfig(t, `{"storage": {"backupInterval": "soon"}}`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Storage.BackupInterval != 24*time.Hour {
		t.Errorf("BackupInterval = %v, want default 24h", cfg.Storage.BackupInterval)
	}
}

func TestLoadFromInvalidJSON(t *testing.T) {
	path := writeConfig(t, `{broken`)
	if _, err := LoadFrom(path); err == nil {
		t.Error("LoadFrom() on invalid JSON succeeded, want error")
	}
}

func TestValidateRepairsBadValues(t *testing.T) {
	cfg := &Config{
		Storage: StorageConfig{BackupInterval: -time.Hour},
		UI:      UIConfig{Theme: "neon", NarrowWidth: -1},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Storage.BackupInterval != 24*time.Hour {
		t.Errorf("BackupInterval = %v, want 24h", cfg.Storage.BackupInterval)
	}
	if cfg.UI.Theme != "dark" {
		t.Errorf("Theme = %q, want dark", cfg.UI.Theme)
	}
	if cfg.UI.NarrowWidth != 80 {
		t.Errorf("NarrowWidth = %d, want 80", cfg.UI.NarrowWidth)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home dir")
	}
	if got := ExpandPath("~/data"); got != filepath.Join(home, "data") {
		t.Errorf("ExpandPath(~/data) = %q", got)
	}
	if got := ExpandPath("/abs/path"); got != "/abs/path" {
		t.Errorf("ExpandPath(/abs/path) = %q", got)
	}
}
