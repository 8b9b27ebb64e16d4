package app

import (
	"encoding/json"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mknight/jot/internal/config"
	"github.com/mknight/jot/internal/msg"
	"github.com/mknight/jot/internal/palette"
	"github.com/mknight/jot/internal/session"
	"github.com/mknight/jot/internal/styles"
)

// Update handles all messages and returns the updated model and commands.
func (m Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(message)

	case tea.WindowSizeMsg:
		m.width = message.Width
		m.height = message.Height
		m.ready = true
		m.layout()
		return m, nil

	case TickMsg:
		m.clearExpiredToast()
		return m, tickCmd()

	case msg.ToastMsg:
		m.ShowToast(message.Message, message.Duration, message.IsError)
		return m, nil

	case msg.StoreChangedMsg:
		if m.store.ReloadIfForeign() {
			m.editor.Bind()
			// An open palette holds rows built from the old note list.
			if m.showPalette {
				m.palette.Refresh()
			}
			m.ShowToast("Notes reloaded", 2*time.Second, false)
		}
		return m, nil

	case msg.BackupTickMsg:
		m.runBackupCheck(message.At)
		return m, backupRecheckCmd()

	case palette.ActionAppliedMsg:
		m.editor.Bind()
		if message.Closed {
			m.showPalette = false
			return m, m.editor.Focus()
		}
		return m, nil
	}

	// Cursor blink and other component messages
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(message)
	cmds = append(cmds, cmd)
	if m.showPalette {
		m.palette, cmd = m.palette.Update(message)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// handleKeyMsg processes keyboard input.
func (m Model) handleKeyMsg(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := message.String()

	if key == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showPalette {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(message)
		if !m.palette.IsOpen() {
			m.showPalette = false
			return m, tea.Batch(cmd, m.editor.Focus())
		}
		return m, cmd
	}

	if binding, ok := m.keymap.Lookup("global", key); ok {
		switch binding.Command {
		case "quit":
			return m, tea.Quit
		case "toggle-palette":
			m.showPalette = true
			m.editor.Blur()
			return m, m.palette.Open()
		case "toggle-theme":
			m.toggleTheme()
			return m, nil
		case "toggle-footer":
			m.showFooter = !m.showFooter
			m.layout()
			return m, nil
		case "toggle-narrow":
			m.sess.SetNarrowLayout(!m.sess.NarrowLayout())
			m.layout()
			return m, nil
		}
	}

	wasPreview := m.editor.Previewing()
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(message)
	if p := m.editor.Previewing(); p != wasPreview {
		// Preview toggles become the startup default for the next run.
		mode := session.InputModeEdit
		if p {
			mode = session.InputModePreview
		}
		m.sess.SetInputMode(mode)
	}
	return m, cmd
}

// layout pushes the current dimensions into the child components.
func (m *Model) layout() {
	contentHeight := m.height - headerHeight
	if m.showFooter && !m.narrow() {
		contentHeight -= footerHeight
	}
	if contentHeight < 1 {
		contentHeight = 1
	}
	m.editor.SetSize(m.width-2, contentHeight)
	m.palette.SetSize(m.width, m.height)
}

// toggleTheme flips between dark and light and persists the choice.
func (m *Model) toggleTheme() {
	next := session.ThemeLight
	if m.sess.Theme() == session.ThemeLight {
		next = session.ThemeDark
	}
	m.sess.SetTheme(next)
	styles.ApplyTheme(next)
	// The config file's theme is the default for fresh databases; keep it
	// following the last explicit choice.
	if err := config.SaveTheme(next); err != nil {
		m.log.Warn("save theme to config failed", "error", err)
	}
	m.ShowToast("Theme: "+next, 2*time.Second, false)
}

// runBackupCheck appends a snapshot when the interval has lapsed.
func (m *Model) runBackupCheck(now time.Time) {
	if m.snapshots == nil {
		return
	}
	payload, err := json.Marshal(m.store.Notes())
	if err != nil {
		m.log.Error("snapshot marshal failed", "error", err)
		return
	}
	wrote, err := m.snapshots.SnapshotIfDue(now, m.cfg.Storage.BackupInterval, string(payload))
	if err != nil {
		m.log.Error("snapshot failed", "error", err)
		return
	}
	if wrote {
		m.log.Info("snapshot written", "notes", m.store.Len())
	}
}
