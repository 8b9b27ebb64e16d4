package editor

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/mknight/jot/internal/config"
	"github.com/mknight/jot/internal/keymap"
	"github.com/mknight/jot/internal/msg"
	"github.com/mknight/jot/internal/note"
	"github.com/mknight/jot/internal/styles"
)

// recentWindow caps the typed-rune history kept for substitution matching.
const recentWindow = 8

// Model is the note editor: a textarea bound to the active note, with an
// optional rendered markdown preview.
type Model struct {
	store  *note.Store
	keymap *keymap.Registry
	log    *slog.Logger

	ta       textarea.Model
	noteID   string
	recent   []rune
	substOn  bool
	focused  bool
	preview  bool
	rendered string

	width, height int
}

// New creates an editor bound to the store's active note. Keys resolve
// through the registry's "editor" context, so config overrides apply.
func New(store *note.Store, km *keymap.Registry, log *slog.Logger, cfg config.EditorConfig) Model {
	ta := textarea.New()
	ta.ShowLineNumbers = cfg.ShowLineNumbers
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.Prompt = ""
	ta.Placeholder = "Start typing..."
	ta.EndOfBufferCharacter = ' '
	ta.FocusedStyle = textarea.Style{
		Base:             lipgloss.NewStyle(),
		CursorLine:       lipgloss.NewStyle(),
		CursorLineNumber: styles.Muted,
		EndOfBuffer:      styles.Muted,
		LineNumber:       styles.Muted,
		Placeholder:      styles.Muted,
		Prompt:           lipgloss.NewStyle(),
		Text:             lipgloss.NewStyle(),
	}
	ta.BlurredStyle = ta.FocusedStyle
	// alt+c is clipboard yank here, not capitalize
	ta.KeyMap.CapitalizeWordForward = key.NewBinding(key.WithDisabled())

	return Model{
		store:   store,
		keymap:  km,
		log:     log,
		ta:      ta,
		substOn: cfg.Substitutions,
	}
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// SetSize updates the editor dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.ta.SetWidth(width)
	taHeight := height - 1
	if taHeight < 1 {
		taHeight = 1
	}
	m.ta.SetHeight(taHeight)
}

// Bind loads the store's active note into the textarea. Call after any
// palette action or foreign reload.
func (m *Model) Bind() {
	active := m.store.Active()
	if active == nil {
		m.noteID = ""
		m.ta.SetValue("")
		return
	}
	if active.ID == m.noteID && active.Content == m.ta.Value() {
		return
	}
	m.noteID = active.ID
	m.ta.SetValue(active.Content)
	m.recent = nil
	m.preview = false
}

// Focus gives the textarea keyboard focus.
func (m *Model) Focus() tea.Cmd {
	m.focused = true
	return m.ta.Focus()
}

// Blur removes keyboard focus.
func (m *Model) Blur() {
	m.focused = false
	m.ta.Blur()
}

// Previewing reports whether the markdown preview is showing.
func (m Model) Previewing() bool { return m.preview }

// SetPreview switches between editing and the rendered preview.
func (m *Model) SetPreview(on bool) {
	m.preview = on
	if on {
		m.rendered = m.renderMarkdown()
	}
}

// Update handles editor input. Content changes are written through to the
// store immediately.
func (m Model) Update(message tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := message.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.ta, cmd = m.ta.Update(message)
		return m, cmd
	}

	if binding, bound := m.keymap.Lookup("editor", keyMsg.String()); bound {
		switch binding.Command {
		case "toggle-preview":
			m.SetPreview(!m.preview)
			return m, nil
		case "yank":
			return m, m.yank()
		case "undo-delete":
			return m, m.restoreDeleted()
		}
	}

	if m.preview {
		return m, nil
	}

	before := m.ta.Value()
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(keyMsg)

	if keyMsg.Type == tea.KeyRunes && len(keyMsg.Runes) == 1 {
		m.trackRune(keyMsg.Runes[0])
	} else {
		m.recent = nil
	}

	if after := m.ta.Value(); after != before && m.noteID != "" {
		m.store.Update(m.noteID, after)
	}
	return m, cmd
}

// trackRune records a typed rune and applies a substitution when one
// completes. The replacement is fed through the textarea as synthetic
// keystrokes so the cursor stays where the user expects it.
func (m *Model) trackRune(r rune) {
	m.recent = append(m.recent, r)
	if len(m.recent) > recentWindow {
		m.recent = m.recent[1:]
	}

	sub, ok := matchSubstitution(m.recent)
	if !ok || !m.substOn {
		return
	}

	for range len(sub.pattern) {
		m.ta, _ = m.ta.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	}
	m.ta, _ = m.ta.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(sub.replacement)})
	m.recent = []rune(sub.replacement)
}

// restoreDeleted pops the deletion stack, makes the restored note active
// and rebinds so it is immediately visible.
func (m *Model) restoreDeleted() tea.Cmd {
	restored := m.store.UndoLastDeletion()
	if restored == nil {
		return nil
	}
	m.store.SetActive(restored.ID)
	m.Bind()
	return msg.ShowToast("Note restored", 2*time.Second)
}

// yank copies the note content to the system clipboard.
func (m Model) yank() tea.Cmd {
	content := m.ta.Value()
	if content == "" {
		return nil
	}
	if err := clipboard.WriteAll(content); err != nil {
		m.log.Error("clipboard write failed", "error", err)
		return msg.ShowErrorToast("Clipboard unavailable", 2*time.Second)
	}
	return msg.ShowToast("Copied to clipboard", 2*time.Second)
}

// renderMarkdown renders the current content through glamour, falling back
// to the raw text when the renderer fails.
func (m Model) renderMarkdown() string {
	content := m.ta.Value()
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(max(m.width-4, 20)),
	)
	if err != nil {
		m.log.Error("markdown renderer init failed", "error", err)
		return content
	}
	out, err := r.Render(content)
	if err != nil {
		m.log.Error("markdown render failed", "error", err)
		return content
	}
	return out
}

// View renders the editor pane.
func (m Model) View() string {
	header := m.renderHeader()
	if m.preview {
		return header + "\n" + m.rendered
	}
	return header + "\n" + m.ta.View()
}

// renderHeader shows the active note's workspace tag and last-updated time.
func (m Model) renderHeader() string {
	active := m.store.Active()
	if active == nil {
		return styles.Muted.Render("no note selected")
	}

	ws := "all notes"
	if active.Workspace != note.AllWorkspaces {
		ws = "[" + active.Workspace + "]"
	}
	left := styles.BarChip.Render(ws)
	right := styles.Muted.Render(active.UpdatedAt.Format("Jan 2 15:04"))
	if m.preview {
		right = styles.Muted.Render("preview") + " " + right
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return fmt.Sprintf("%s%*s%s", left, gap, "", right)
}
