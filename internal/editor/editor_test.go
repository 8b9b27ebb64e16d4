package editor

import (
	"log/slog"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mknight/jot/internal/config"
	"github.com/mknight/jot/internal/keymap"
	"github.com/mknight/jot/internal/note"
)

type mapAdapter struct {
	data map[string]string
}

func (m *mapAdapter) Get(key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *mapAdapter) Set(key, value string) error {
	m.data[key] = value
	return nil
}

func (m *mapAdapter) Close() error { return nil }

func newEditor(t *testing.T, cfg config.EditorConfig, overrides map[string]string) (Model, *note.Store) {
	t.Helper()
	st, err := note.Load(&mapAdapter{data: make(map[string]string)}, slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	km := keymap.NewRegistry()
	keymap.RegisterDefaults(km)
	if overrides != nil {
		km.ApplyOverrides(overrides)
	}
	return New(st, km, slog.New(slog.DiscardHandler), cfg), st
}

func TestShowLineNumbersConfig(t *testing.T) {
	for _, show := range []bool{true, false} {
		m, _ := newEditor(t, config.EditorConfig{ShowLineNumbers: show}, nil)
		if m.ta.ShowLineNumbers != show {
			t.Errorf("ShowLineNumbers = %v, want %v", m.ta.ShowLineNumbers, show)
		}
	}
}

func TestOverriddenPreviewKey(t *testing.T) {
	m, _ := newEditor(t, config.EditorConfig{}, map[string]string{"editor/toggle-preview": "ctrl+e"})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlE})
	if !m.Previewing() {
		t.Fatal("overridden preview key did nothing")
	}

	// The replaced default no longer toggles.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	if !m.Previewing() {
		t.Error("unbound default key still toggled the preview")
	}
}

func TestUndoDeleteRestoresNote(t *testing.T) {
	m, st := newEditor(t, config.EditorConfig{}, nil)
	st.Create("keep", "")
	doomed := st.Create("doomed", "")
	st.Delete(doomed.ID)
	m.Bind()

	var cmd tea.Cmd
	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlZ})
	if st.Len() != 2 {
		t.Fatalf("Len() = %d after undo, want 2", st.Len())
	}
	if st.ActiveID() != doomed.ID {
		t.Errorf("ActiveID() = %q, want the restored note", st.ActiveID())
	}
	if cmd == nil {
		t.Error("expected a toast command")
	}

	// Empty stack is a no-op.
	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlZ})
	if st.Len() != 2 || cmd != nil {
		t.Error("undo on an empty stack changed state")
	}
}
