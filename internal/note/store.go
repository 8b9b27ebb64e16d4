package note

import (
	"encoding/json"
	"log/slog"
	"sort"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/mknight/jot/internal/storage"
)

// Store is the single source of truth for notes. All mutations go through
// it; each one persists the full note list atomically via the adapter and
// remains applied in memory even when the write fails (durability for that
// write is lost, the session stays usable).
type Store struct {
	adapter storage.Adapter
	log     *slog.Logger

	notes    []Note
	activeID string
	filter   string

	// deleted is the session deletion stack: full note records pushed on
	// delete, popped on undo. LIFO, unbounded, never persisted.
	deleted []Note

	// lastHash is the xxhash of the most recently written payload, used to
	// tell our own writes apart from foreign ones during reloads.
	lastHash uint64
}

// Load builds a Store from the adapter's persisted state.
func Load(adapter storage.Adapter, log *slog.Logger) (*Store, error) {
	s := &Store{adapter: adapter, log: log}

	raw, ok, err := adapter.Get(storage.KeyNotes)
	if err != nil {
		return nil, err
	}
	if ok {
		if err := json.Unmarshal([]byte(raw), &s.notes); err != nil {
			// A corrupt note database is not fatal: start empty and let the
			// next write replace it. Backups exist for this case.
			log.Error("store: corrupt note payload, starting empty", "error", err)
			s.notes = nil
		}
		s.lastHash = xxhash.Sum64String(raw)
	}

	if id, ok, err := adapter.Get(storage.KeyActiveNote); err == nil && ok {
		s.activeID = id
	}
	if ws, ok, err := adapter.Get(storage.KeyWorkspace); err == nil && ok {
		s.filter = ws
	}

	// Drop stale references to notes that no longer exist.
	if s.activeID != "" && s.byID(s.activeID) == nil {
		s.activeID = ""
	}
	return s, nil
}

// Notes returns the full note list in store order.
func (s *Store) Notes() []Note {
	return s.notes
}

// Len returns the number of notes in the store.
func (s *Store) Len() int {
	return len(s.notes)
}

// Active returns the active note, or nil when none is active.
func (s *Store) Active() *Note {
	return s.byID(s.activeID)
}

// ActiveID returns the active note id ("" when none).
func (s *Store) ActiveID() string {
	return s.activeID
}

// SetActive marks id as the active note. Unknown ids are a silent no-op.
func (s *Store) SetActive(id string) {
	if id != "" && s.byID(id) == nil {
		return
	}
	s.activeID = id
	s.persistKey(storage.KeyActiveNote, id)
}

// Filter returns the active workspace filter (AllWorkspaces when unset).
func (s *Store) Filter() string {
	return s.filter
}

// SetFilter switches the active workspace filter.
func (s *Store) SetFilter(tag string) {
	s.filter = tag
	s.persistKey(storage.KeyWorkspace, tag)
}

// Create allocates a fresh note, appends it to the store, persists, and
// makes it the active note.
func (s *Store) Create(content, workspace string) *Note {
	n := Note{
		ID:        generateID(),
		Content:   content,
		UpdatedAt: time.Now().UTC(),
		Workspace: workspace,
	}
	s.notes = append(s.notes, n)
	s.persist()
	s.SetActive(n.ID)
	return s.byID(n.ID)
}

// Update replaces a note's content and bumps UpdatedAt. An unknown id is a
// recoverable condition, not an error: the call is a silent no-op.
func (s *Store) Update(id, content string) {
	n := s.byID(id)
	if n == nil {
		return
	}
	n.Content = content
	n.UpdatedAt = time.Now().UTC()
	s.persist()
}

// Delete removes a note and pushes a copy onto the deletion stack. When the
// deleted note was active, activation falls back to the first remaining
// note under the current workspace filter (or none when the filtered set
// is empty).
func (s *Store) Delete(id string) {
	idx := -1
	for i := range s.notes {
		if s.notes[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	s.deleted = append(s.deleted, s.notes[idx])
	s.notes = append(s.notes[:idx], s.notes[idx+1:]...)
	s.persist()

	if s.activeID == id {
		remaining := s.ListByWorkspace(s.filter)
		if len(remaining) > 0 {
			s.SetActive(remaining[0].ID)
		} else {
			s.SetActive("")
		}
	}
}

// DeletedCount returns the deletion stack depth.
func (s *Store) DeletedCount() int {
	return len(s.deleted)
}

// UndoLastDeletion pops the deletion stack and re-inserts the note
// unchanged. The note may reappear tagged for a workspace that no longer
// exists; that is valid. No-op when the stack is empty.
func (s *Store) UndoLastDeletion() *Note {
	if len(s.deleted) == 0 {
		return nil
	}
	n := s.deleted[len(s.deleted)-1]
	s.deleted = s.deleted[:len(s.deleted)-1]
	s.notes = append(s.notes, n)
	s.persist()
	return s.byID(n.ID)
}

// MoveToWorkspace re-tags a note. Unknown ids are a silent no-op.
func (s *Store) MoveToWorkspace(id, tag string) {
	n := s.byID(id)
	if n == nil {
		return
	}
	n.Workspace = tag
	n.UpdatedAt = time.Now().UTC()
	s.persist()
}

// UnlinkWorkspace clears a note's workspace tag.
func (s *Store) UnlinkWorkspace(id string) {
	s.MoveToWorkspace(id, "")
}

// RenameWorkspace re-tags every note currently carrying oldTag to newTag.
// An empty oldTag re-tags nothing (untagged notes never carry a tag).
func (s *Store) RenameWorkspace(oldTag, newTag string) {
	if oldTag == "" {
		return
	}
	changed := false
	now := time.Now().UTC()
	for i := range s.notes {
		if s.notes[i].Workspace == oldTag {
			s.notes[i].Workspace = newTag
			s.notes[i].UpdatedAt = now
			changed = true
		}
	}
	if changed {
		s.persist()
	}
	if s.filter == oldTag {
		s.SetFilter(newTag)
	}
}

// ListByWorkspace returns notes whose workspace equals tag, or the whole
// list when tag is AllWorkspaces. Store order is preserved.
func (s *Store) ListByWorkspace(tag string) []Note {
	if tag == AllWorkspaces {
		out := make([]Note, len(s.notes))
		copy(out, s.notes)
		return out
	}
	var out []Note
	for _, n := range s.notes {
		if n.Workspace == tag {
			out = append(out, n)
		}
	}
	return out
}

// Workspaces returns the distinct non-empty workspace tags, ordered by the
// recency of each workspace's most recently updated member note.
func (s *Store) Workspaces() []string {
	latest := make(map[string]time.Time)
	var order []string
	for _, n := range s.notes {
		if n.Workspace == "" {
			continue
		}
		if prev, ok := latest[n.Workspace]; !ok {
			latest[n.Workspace] = n.UpdatedAt
			order = append(order, n.Workspace)
		} else if n.UpdatedAt.After(prev) {
			latest[n.Workspace] = n.UpdatedAt
		}
	}
	sort.SliceStable(order, func(i, j int) bool {
		return latest[order[i]].After(latest[order[j]])
	})
	return order
}

// NavigableWorkspaces returns the cyclic navigation sequence: the
// AllWorkspaces sentinel followed by Workspaces().
func (s *Store) NavigableWorkspaces() []string {
	return append([]string{AllWorkspaces}, s.Workspaces()...)
}

// CycleFilter moves the workspace filter one step through the navigable
// sequence; dir is +1 (next) or -1 (previous), wrapping at both ends.
func (s *Store) CycleFilter(dir int) string {
	seq := s.NavigableWorkspaces()
	cur := 0
	for i, tag := range seq {
		if tag == s.filter {
			cur = i
			break
		}
	}
	next := (cur + dir + len(seq)) % len(seq)
	s.SetFilter(seq[next])
	return seq[next]
}

// Replace swaps the entire note list, dropping references to notes that no
// longer exist. Used by import and by cross-process reloads; last writer
// wins at whole-list granularity.
func (s *Store) Replace(notes []Note, persist bool) {
	s.notes = notes
	if s.activeID != "" && s.byID(s.activeID) == nil {
		s.SetActive("")
	}
	if persist {
		s.persist()
	} else if raw, err := json.Marshal(s.notes); err == nil {
		s.lastHash = xxhash.Sum64String(string(raw))
	}
}

// ReloadIfForeign re-reads the persisted note list and replaces local state
// when the payload differs from our own last write. Returns true when a
// reload happened.
func (s *Store) ReloadIfForeign() bool {
	raw, ok, err := s.adapter.Get(storage.KeyNotes)
	if err != nil {
		s.log.Warn("store: reload failed", "error", err)
		return false
	}
	if !ok || xxhash.Sum64String(raw) == s.lastHash {
		return false
	}
	var notes []Note
	if err := json.Unmarshal([]byte(raw), &notes); err != nil {
		s.log.Warn("store: foreign payload undecodable, keeping local state", "error", err)
		return false
	}
	s.lastHash = xxhash.Sum64String(raw)
	s.Replace(notes, false)
	return true
}

// persist writes the full note list through the adapter. Failures are
// logged and swallowed: the in-memory mutation stays applied.
func (s *Store) persist() {
	raw, err := json.Marshal(s.notes)
	if err != nil {
		s.log.Error("store: marshal notes", "error", err)
		return
	}
	s.lastHash = xxhash.Sum64String(string(raw))
	if err := s.adapter.Set(storage.KeyNotes, string(raw)); err != nil {
		s.log.Warn("store: persist failed, session continues in memory", "error", err)
	}
}

func (s *Store) persistKey(key, value string) {
	if err := s.adapter.Set(key, value); err != nil {
		s.log.Warn("store: persist failed", "key", key, "error", err)
	}
}

func (s *Store) byID(id string) *Note {
	for i := range s.notes {
		if s.notes[i].ID == id {
			return &s.notes[i]
		}
	}
	return nil
}
