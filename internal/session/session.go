package session

import (
	"log/slog"

	"github.com/mknight/jot/internal/storage"
)

// Session holds UI preferences that survive restarts: theme, the editor's
// startup input mode, and the narrow layout toggle. Values live in the same
// kv database as the notes, under their own keys.
type Session struct {
	adapter storage.Adapter
	log     *slog.Logger

	theme        string
	inputMode    string
	narrowLayout bool
}

const (
	ThemeDark  = "dark"
	ThemeLight = "light"

	InputModeEdit    = "edit"
	InputModePreview = "preview"
)

// Load reads persisted preferences, falling back to the given defaults for
// missing or unreadable keys.
func Load(adapter storage.Adapter, log *slog.Logger, defaultTheme string) *Session {
	s := &Session{
		adapter:   adapter,
		log:       log,
		theme:     defaultTheme,
		inputMode: InputModeEdit,
	}

	if v, ok := s.read(storage.KeyTheme); ok && (v == ThemeDark || v == ThemeLight) {
		s.theme = v
	}
	if v, ok := s.read(storage.KeyInputMode); ok && (v == InputModeEdit || v == InputModePreview) {
		s.inputMode = v
	}
	if v, ok := s.read(storage.KeyNarrowLayout); ok {
		s.narrowLayout = v == "true"
	}
	return s
}

func (s *Session) Theme() string      { return s.theme }
func (s *Session) InputMode() string  { return s.inputMode }
func (s *Session) NarrowLayout() bool { return s.narrowLayout }

// SetTheme persists the theme choice.
func (s *Session) SetTheme(theme string) {
	s.theme = theme
	s.write(storage.KeyTheme, theme)
}

// SetInputMode persists the input mode.
func (s *Session) SetInputMode(mode string) {
	s.inputMode = mode
	s.write(storage.KeyInputMode, mode)
}

// SetNarrowLayout persists the narrow layout toggle.
func (s *Session) SetNarrowLayout(narrow bool) {
	s.narrowLayout = narrow
	if narrow {
		s.write(storage.KeyNarrowLayout, "true")
	} else {
		s.write(storage.KeyNarrowLayout, "false")
	}
}

func (s *Session) read(key string) (string, bool) {
	v, ok, err := s.adapter.Get(key)
	if err != nil {
		s.log.Error("read preference failed", "key", key, "error", err)
		return "", false
	}
	return v, ok
}

// write logs and swallows storage failures. A preference that does not
// stick is not worth interrupting the user for.
func (s *Session) write(key, value string) {
	if err := s.adapter.Set(key, value); err != nil {
		s.log.Error("write preference failed", "key", key, "error", err)
	}
}
