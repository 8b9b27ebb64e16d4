package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mknight/jot/internal/app"
	"github.com/mknight/jot/internal/config"
	"github.com/mknight/jot/internal/export"
	"github.com/mknight/jot/internal/msg"
	"github.com/mknight/jot/internal/note"
	"github.com/mknight/jot/internal/session"
	"github.com/mknight/jot/internal/storage"
	"github.com/mknight/jot/internal/styles"
)

// Version is set at build time via ldflags
var Version = ""

var (
	configPath   = flag.String("config", "", "path to config file")
	debugFlag    = flag.Bool("debug", false, "enable debug logging")
	exportPath   = flag.String("export", "", "write all notes as a portable blob to the given file ('-' for stdout) and exit")
	importPath   = flag.String("import", "", "replace all notes from a blob file ('-' for stdin) and exit")
	versionFlag  = flag.Bool("version", false, "print version and exit")
	shortVersion = flag.Bool("v", false, "print version and exit (short)")
)

func main() {
	flag.Parse()

	if *versionFlag || *shortVersion {
		fmt.Printf("jot version %s\n", effectiveVersion(Version))
		os.Exit(0)
	}

	// TUI owns stdout, so logs go to a file in the data dir.
	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, logFile := setupLogging(cfg.Storage.DataDir, *debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}

	dbPath := filepath.Join(cfg.Storage.DataDir, "jot.db")
	adapter, err := storage.Open(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer adapter.Close()

	store, err := note.Load(adapter, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load notes: %v\n", err)
		os.Exit(1)
	}

	if *exportPath != "" {
		if err := runExport(store, *exportPath); err != nil {
			fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
			os.Exit(1)
		}
		return
	}
	if *importPath != "" {
		if err := runImport(store, *importPath); err != nil {
			fmt.Fprintf(os.Stderr, "Import failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Imported %d notes\n", store.Len())
		return
	}

	snapshots, err := storage.OpenSnapshots(filepath.Join(cfg.Storage.DataDir, "backups.db"))
	if err != nil {
		logger.Error("backup store unavailable", "error", err)
		snapshots = nil
	} else {
		defer snapshots.Close()
	}

	sess := session.Load(adapter, logger, cfg.UI.Theme)
	styles.ApplyTheme(sess.Theme())

	model := app.New(cfg, logger, store, sess, snapshots)
	p := tea.NewProgram(model, tea.WithAltScreen())

	// Another jot instance writing the same database shows up as a file
	// change. The watcher nudges the app to reload.
	watchCtx, cancelWatch := context.WithCancel(context.Background())
	defer cancelWatch()
	go func() {
		err := storage.Watch(watchCtx, dbPath, logger, func() {
			p.Send(msg.StoreChangedMsg{})
		})
		if err != nil {
			logger.Error("database watcher stopped", "error", err)
		}
	}()

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running application: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

// setupLogging writes slog output to jot.log in the data dir. When the file
// cannot be opened logs are discarded rather than corrupting the TUI.
func setupLogging(dataDir string, debugMode bool) (*slog.Logger, *os.File) {
	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	if err := os.MkdirAll(dataDir, 0755); err == nil {
		f, err := os.OpenFile(filepath.Join(dataDir, "jot.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			return slog.New(slog.NewTextHandler(f, opts)), f
		}
	}
	return slog.New(slog.DiscardHandler), nil
}

func runExport(store *note.Store, path string) error {
	blob, err := export.Encode(store.Notes())
	if err != nil {
		return err
	}
	if path == "-" {
		fmt.Println(blob)
		return nil
	}
	return os.WriteFile(path, []byte(blob), 0644)
}

func runImport(store *note.Store, path string) error {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return err
	}

	notes, err := export.Decode(strings.TrimSpace(string(data)))
	if err != nil {
		// Malformed blobs change nothing.
		return err
	}
	store.Replace(notes, true)
	return nil
}

// effectiveVersion returns the version string, with fallback to build info.
func effectiveVersion(v string) string {
	if v != "" {
		return v
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	var revision string
	var dirty bool
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}
	if revision != "" {
		ver := "devel+" + revision
		if len(ver) > 20 {
			ver = ver[:20]
		}
		if dirty {
			ver += "+dirty"
		}
		return ver
	}
	return "unknown"
}
