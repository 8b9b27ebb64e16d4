package palette

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mknight/jot/internal/keymap"
	"github.com/mknight/jot/internal/note"
	"github.com/mknight/jot/internal/suggest"
)

// Default visible row count for the suggestion list.
const defaultMaxVisible = 12

// ActionAppliedMsg tells the app a suggestion effect ran (the active note,
// filter or note list may have changed).
type ActionAppliedMsg struct {
	Closed bool
}

// Model is the Bubble Tea wrapper around the palette Engine: it maps key
// events to engine transitions, recomputes suggestions, and renders.
type Model struct {
	engine Engine
	store  *note.Store
	keymap *keymap.Registry
	log    *slog.Logger

	textInput   textinput.Model
	suggestions []suggest.Suggestion

	width, height int
	offset        int
	maxVisible    int
}

// New creates a palette model bound to the note store. Keys resolve
// through the registry's "palette" context, so config overrides apply.
func New(store *note.Store, km *keymap.Registry, log *slog.Logger) Model {
	ti := textinput.New()
	ti.Placeholder = "Search notes or type a command..."
	ti.CharLimit = 200
	ti.Prompt = ""

	return Model{
		store:      store,
		keymap:     km,
		log:        log,
		textInput:  ti,
		maxVisible: defaultMaxVisible,
	}
}

// SetSize updates the palette's render dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	if v := height - 9; v > 3 && v < defaultMaxVisible {
		m.maxVisible = v
	} else {
		m.maxVisible = defaultMaxVisible
	}
}

// hookScroll points the engine's selection-changed hook at this model
// instance. Bubble Tea copies models between updates, so every entry
// point re-arms the hook before driving the engine.
func (m *Model) hookScroll() {
	m.engine.SetSelectionChanged(func(int) { m.ensureVisible() })
}

// Open opens the palette with a cleared query and selection.
func (m *Model) Open() tea.Cmd {
	m.hookScroll()
	m.engine.Open()
	m.textInput.SetValue("")
	m.offset = 0
	m.rebuild()
	return m.textInput.Focus()
}

// Close closes the palette.
func (m *Model) Close() {
	m.engine.Close()
	m.textInput.Blur()
}

// IsOpen reports whether the palette is open.
func (m Model) IsOpen() bool { return m.engine.IsOpen() }

// Suggestions returns the current suggestion list (for tests and footer).
func (m Model) Suggestions() []suggest.Suggestion { return m.suggestions }

// Selected returns the selected index.
func (m Model) Selected() int { return m.engine.Selected() }

// Refresh recomputes suggestions after the store changed underneath an
// open palette (foreign reload, editor-side mutation).
func (m *Model) Refresh() {
	m.hookScroll()
	m.rebuild()
}

// Update handles key input while the palette is open.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	m.hookScroll()

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}

	n := len(m.suggestions)

	if binding, bound := m.keymap.Lookup("palette", keyMsg.String()); bound {
		switch binding.Command {
		case "close":
			// A pending chord is cancelled, never committed, on close.
			m.engine.ChordCancel()
			m.Close()
			return m, func() tea.Msg { return ActionAppliedMsg{Closed: true} }

		case "cursor-up":
			m.engine.MoveSelection(-1, n)
			return m, nil

		case "cursor-down":
			m.engine.MoveSelection(1, n)
			return m, nil

		case "chord-up":
			// Modifier-held navigation: tap direction repeatedly, commit
			// on release.
			m.engine.ChordNav(-1, n)
			return m, nil

		case "chord-down":
			m.engine.ChordNav(1, n)
			return m, nil

		case "prev-workspace":
			m.cycleWorkspace(-1)
			return m, nil

		case "next-workspace":
			m.cycleWorkspace(1)
			return m, nil

		case "select":
			m.engine.ChordCancel()
			return m, m.commit()

		case "quick-delete":
			return m, m.quickDelete()

		case "undo-delete":
			if m.store.UndoLastDeletion() != nil {
				m.rebuild()
				return m, func() tea.Msg { return ActionAppliedMsg{} }
			}
			return m, nil
		}
	}

	// An unbound key means the chord modifier has been released: an armed
	// chord commits first, exactly as a select would. When that closes the
	// palette the typed key is dropped.
	if m.engine.ChordRelease() {
		cmd := m.commit()
		if !m.engine.IsOpen() {
			return m, cmd
		}
		cmd2 := m.applySearchKey(keyMsg)
		return m, tea.Batch(cmd, cmd2)
	}

	return m, m.applySearchKey(keyMsg)
}

// cycleWorkspace steps the store's filter and rebuilds from the top.
func (m *Model) cycleWorkspace(dir int) {
	m.store.CycleFilter(dir)
	m.engine.ResetSelection()
	m.offset = 0
	m.rebuild()
}

// applySearchKey forwards a key to the query input and recomputes
// suggestions when the text changed.
func (m *Model) applySearchKey(msg tea.KeyMsg) tea.Cmd {
	before := m.textInput.Value()
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)

	if after := m.textInput.Value(); after != before {
		m.engine.SetQuery(after)
		m.offset = 0
		m.rebuild()
	}
	return cmd
}

// commit invokes the selected suggestion's effect.
func (m *Model) commit() tea.Cmd {
	if len(m.suggestions) == 0 {
		return nil
	}
	sel := m.suggestions[m.engine.Selected()]
	outcome := suggest.Apply(sel, m.store)

	if outcome.ClearQuery {
		m.textInput.SetValue("")
		m.engine.SetQuery("")
		m.offset = 0
	}
	if outcome.ClosePalette {
		m.Close()
	} else {
		m.engine.ResetSelection()
	}
	m.rebuild()

	closed := !m.engine.IsOpen()
	return func() tea.Msg { return ActionAppliedMsg{Closed: closed} }
}

// quickDelete removes the selected note suggestion, when the filtered
// workspace holds more than one note, and keeps the palette open with the
// selection pulled one row up.
func (m *Model) quickDelete() tea.Cmd {
	sel := m.engine.Selected()
	if sel >= len(m.suggestions) || m.suggestions[sel].Kind != suggest.KindNote {
		return nil
	}
	if len(m.store.ListByWorkspace(m.store.Filter())) <= 1 {
		return nil
	}

	m.store.Delete(m.suggestions[sel].Note.ID)
	if sel > 0 {
		m.engine.MoveSelection(-1, len(m.suggestions))
	}
	m.rebuild()
	return func() tea.Msg { return ActionAppliedMsg{} }
}

// rebuild recomputes suggestions from the store and clamps the selection.
func (m *Model) rebuild() {
	m.suggestions = suggest.Build(m.store, m.engine.Query())
	m.engine.Clamp(len(m.suggestions))
	m.ensureVisible()
}

// ensureVisible adjusts the scroll offset so the selected row is on
// screen. Wired to the engine's selection-changed hook.
func (m *Model) ensureVisible() {
	cursor := m.engine.Selected()
	if cursor < m.offset {
		m.offset = cursor
	}
	if cursor >= m.offset+m.maxVisible {
		m.offset = cursor - m.maxVisible + 1
	}
}
