package storage

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch starts an fsnotify watcher on the database file's directory and
// invokes notify after writes to the database settle. Another process
// sharing the database (a second jot instance) shows up here; the caller
// reloads and replaces its local state wholesale.
//
// Events are debounced because SQLite in WAL mode touches the -wal and
// -shm files in bursts around a single logical write.
func Watch(ctx context.Context, dbPath string, logger *slog.Logger, notify func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	dir := filepath.Dir(dbPath)
	if err := w.Add(dir); err != nil {
		return err
	}

	logger.Debug("watcher: started", slog.String("path", dbPath))

	base := filepath.Base(dbPath)
	var settleTimer *time.Timer
	var settleCh <-chan time.Time

	scheduleNotify := func() {
		if settleTimer == nil {
			settleTimer = time.NewTimer(150 * time.Millisecond)
			settleCh = settleTimer.C
		} else {
			settleTimer.Reset(150 * time.Millisecond)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if settleTimer != nil {
				settleTimer.Stop()
			}
			logger.Debug("watcher: stopped")
			return nil

		case <-settleCh:
			notify()

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			name := filepath.Base(ev.Name)
			if name != base && name != base+"-wal" {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			scheduleNotify()

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher: error", slog.String("error", err.Error()))
		}
	}
}
