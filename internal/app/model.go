package app

import (
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mknight/jot/internal/config"
	"github.com/mknight/jot/internal/editor"
	"github.com/mknight/jot/internal/keymap"
	"github.com/mknight/jot/internal/note"
	"github.com/mknight/jot/internal/palette"
	"github.com/mknight/jot/internal/session"
	"github.com/mknight/jot/internal/storage"
)

const (
	minWidth  = 40
	minHeight = 10

	headerHeight = 2
	footerHeight = 1
)

// Model is the root Bubble Tea model for jot.
type Model struct {
	cfg *config.Config
	log *slog.Logger

	store     *note.Store
	sess      *session.Session
	snapshots *storage.SnapshotStore
	keymap    *keymap.Registry

	editor      editor.Model
	palette     palette.Model
	showPalette bool

	// UI state
	width, height int
	ready         bool
	showFooter    bool

	// Status/toast messages
	statusMsg     string
	statusExpiry  time.Time
	statusIsError bool
}

// New creates the root model. The store must already be loaded.
func New(cfg *config.Config, log *slog.Logger, store *note.Store, sess *session.Session, snapshots *storage.SnapshotStore) Model {
	km := keymap.NewRegistry()
	keymap.RegisterDefaults(km)
	km.ApplyOverrides(cfg.Keymap.Overrides)

	ed := editor.New(store, km, log, cfg.Editor)
	ed.Bind()
	if sess.InputMode() == session.InputModePreview {
		ed.SetPreview(true)
	}

	return Model{
		cfg:        cfg,
		log:        log,
		store:      store,
		sess:       sess,
		snapshots:  snapshots,
		keymap:     km,
		editor:     ed,
		palette:    palette.New(store, km, log),
		showFooter: cfg.UI.ShowFooter,
	}
}

// Init starts the clock tick, the backup check, and editor focus.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.editor.Init(),
		m.editor.Focus(),
		tickCmd(),
		backupCheckCmd(),
	)
}

// narrow reports whether the compact layout applies.
func (m Model) narrow() bool {
	return m.width < m.cfg.UI.NarrowWidth || m.sess.NarrowLayout()
}

// ShowToast displays a transient status message.
func (m *Model) ShowToast(message string, duration time.Duration, isError bool) {
	m.statusMsg = message
	m.statusExpiry = time.Now().Add(duration)
	m.statusIsError = isError
}

// clearExpiredToast drops the toast once its deadline passes.
func (m *Model) clearExpiredToast() {
	if m.statusMsg != "" && time.Now().After(m.statusExpiry) {
		m.statusMsg = ""
	}
}
