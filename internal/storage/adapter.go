// Package storage provides the durable key/value adapter the note store
// persists through, a cross-process change watcher, and the secondary
// snapshot store used for periodic backups.
package storage

// Adapter is durable key/value storage. Writers replace a key's value
// atomically; readers observe either the pre- or post-write value, never a
// partial one.
type Adapter interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool, error)
	// Set stores value under key, replacing any previous value.
	Set(key, value string) error
	Close() error
}

// Well-known keys. The note database is the only multi-writer key; the rest
// are single-writer session state.
const (
	KeyNotes        = "notes"
	KeyActiveNote   = "active-note"
	KeyWorkspace    = "workspace"
	KeyTheme        = "theme"
	KeyInputMode    = "input-mode"
	KeyNarrowLayout = "narrow-layout"
)
