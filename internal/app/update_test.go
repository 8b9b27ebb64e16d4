package app

import (
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mknight/jot/internal/config"
	"github.com/mknight/jot/internal/msg"
	"github.com/mknight/jot/internal/note"
	"github.com/mknight/jot/internal/session"
	"github.com/mknight/jot/internal/storage"
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

func newTestApp(t *testing.T) (Model, *note.Store, *mapAdapter) {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	fa := &mapAdapter{data: make(map[string]string)}

	st, err := note.Load(fa, logger)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	sess := session.Load(fa, logger, session.ThemeDark)

	m := New(config.Default(), logger, st, sess, nil)
	return m, st, fa
}

func apply(t *testing.T, m Model, message tea.Msg) Model {
	t.Helper()
	updated, _ := m.Update(message)
	return updated.(Model)
}

func TestForeignReloadRefreshesOpenPalette(t *testing.T) {
	m, st, fa := newTestApp(t)
	st.Create("local note", "")

	m = apply(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m = apply(t, m, tea.KeyMsg{Type: tea.KeyCtrlP})
	if !m.showPalette {
		t.Fatal("palette did not open")
	}

	// Another process replaces the note list behind our back.
	foreign, err := json.Marshal([]note.Note{
		{ID: "nt-feed0001", Content: "zebra llama", UpdatedAt: time.Now()},
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := fa.Set(storage.KeyNotes, string(foreign)); err != nil {
		t.Fatalf("set: %v", err)
	}

	m = apply(t, m, msg.StoreChangedMsg{})
	if st.Len() != 1 {
		t.Fatalf("Len() = %d after reload, want 1", st.Len())
	}
	if view := m.View(); !strings.Contains(view, "zebra") {
		t.Error("open palette still renders the pre-reload note list")
	}
}

func TestToggleNarrowLayout(t *testing.T) {
	m, _, fa := newTestApp(t)
	m = apply(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	m = apply(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}, Alt: true})
	if !m.sess.NarrowLayout() {
		t.Fatal("narrow layout not enabled")
	}
	if fa.data[storage.KeyNarrowLayout] != "true" {
		t.Errorf("persisted narrow layout = %q, want true", fa.data[storage.KeyNarrowLayout])
	}

	m = apply(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}, Alt: true})
	if m.sess.NarrowLayout() {
		t.Error("narrow layout not disabled on second toggle")
	}
}
