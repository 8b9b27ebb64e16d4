package note

import (
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/mknight/jot/internal/storage"
)

// fakeAdapter is an in-memory Adapter for store tests.
type fakeAdapter struct {
	data    map[string]string
	failSet bool
}

func newFakeAdapter() *fakeAdapter {
	return &fakeAdapter{data: make(map[string]string)}
}

func (f *fakeAdapter) Get(key string) (string, bool, error) {
	v, ok := f.data[key]
	return v, ok, nil
}

func (f *fakeAdapter) Set(key, value string) error {
	if f.failSet {
		return errSetFailed
	}
	f.data[key] = value
	return nil
}

func (f *fakeAdapter) Close() error { return nil }

var errSetFailed = &adapterError{"set failed"}

type adapterError struct{ msg string }

func (e *adapterError) Error() string { return e.msg }

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newTestStore(t *testing.T) (*Store, *fakeAdapter) {
	t.Helper()
	fa := newFakeAdapter()
	st, err := Load(fa, testLogger())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return st, fa
}

func TestCreateSetsActive(t *testing.T) {
	st, fa := newTestStore(t)

	n := st.Create("hello world", "")
	if n == nil {
		t.Fatal("Create returned nil")
	}
	if st.ActiveID() != n.ID {
		t.Errorf("active = %q, want %q", st.ActiveID(), n.ID)
	}
	if n.ID == "" {
		t.Error("note has empty id")
	}
	if _, ok := fa.data[storage.KeyNotes]; !ok {
		t.Error("create did not persist notes")
	}
}

func TestDeleteUndoRestoresExactRecord(t *testing.T) {
	st, _ := newTestStore(t)

	created := st.Create("original content", "proj")
	want := *created

	st.Delete(created.ID)
	if st.Len() != 0 {
		t.Fatalf("Len() = %d after delete, want 0", st.Len())
	}
	if st.DeletedCount() != 1 {
		t.Fatalf("DeletedCount() = %d, want 1", st.DeletedCount())
	}

	got := st.UndoLastDeletion()
	if got == nil {
		t.Fatal("UndoLastDeletion returned nil")
	}
	if *got != want {
		t.Errorf("restored note = %+v, want %+v", *got, want)
	}
}

func TestUndoEmptyStackIsNoop(t *testing.T) {
	st, _ := newTestStore(t)
	if got := st.UndoLastDeletion(); got != nil {
		t.Errorf("UndoLastDeletion on empty stack = %+v, want nil", got)
	}
}

func TestDeleteActiveFallsBackToFilteredList(t *testing.T) {
	st, _ := newTestStore(t)

	a := st.Create("a", "work")
	b := st.Create("b", "work")
	st.Create("c", "other")

	st.SetFilter("work")
	st.SetActive(b.ID)
	st.Delete(b.ID)

	if st.ActiveID() != a.ID {
		t.Errorf("active after delete = %q, want %q (first note in filtered workspace)", st.ActiveID(), a.ID)
	}
}

func TestDeleteLastNoteClearsActive(t *testing.T) {
	st, _ := newTestStore(t)
	n := st.Create("only", "")
	st.Delete(n.ID)
	if st.ActiveID() != "" {
		t.Errorf("active = %q, want empty", st.ActiveID())
	}
	if st.Active() != nil {
		t.Error("Active() should be nil")
	}
}

func TestUnknownIDsAreNoops(t *testing.T) {
	st, _ := newTestStore(t)
	n := st.Create("keep", "")

	st.Update("nt-missing", "changed")
	st.Delete("nt-missing")
	st.MoveToWorkspace("nt-missing", "x")
	st.SetActive("nt-missing")

	if st.Len() != 1 {
		t.Errorf("Len() = %d, want 1", st.Len())
	}
	if got := st.byID(n.ID); got.Content != "keep" {
		t.Errorf("content = %q, want unchanged", got.Content)
	}
	if st.ActiveID() != n.ID {
		t.Errorf("active = %q, want %q", st.ActiveID(), n.ID)
	}
	if st.DeletedCount() != 0 {
		t.Errorf("DeletedCount() = %d, want 0", st.DeletedCount())
	}
}

func TestRenameWorkspaceRetagsAndSwitchesFilter(t *testing.T) {
	st, _ := newTestStore(t)
	st.Create("one", "old")
	st.Create("two", "old")
	st.Create("three", "other")
	st.SetFilter("old")

	st.RenameWorkspace("old", "new")

	if got := len(st.ListByWorkspace("new")); got != 2 {
		t.Errorf("notes in new workspace = %d, want 2", got)
	}
	if got := len(st.ListByWorkspace("old")); got != 0 {
		t.Errorf("notes in old workspace = %d, want 0", got)
	}
	if st.Filter() != "new" {
		t.Errorf("filter = %q, want %q", st.Filter(), "new")
	}
}

func TestRenameEmptyTagIsNoop(t *testing.T) {
	st, _ := newTestStore(t)
	st.Create("untagged", "")

	st.RenameWorkspace("", "new")

	if got := len(st.ListByWorkspace("new")); got != 0 {
		t.Errorf("untagged notes were re-tagged, got %d in new", got)
	}
}

func TestWorkspacesOrderedByRecency(t *testing.T) {
	st, _ := newTestStore(t)
	st.Create("1", "alpha")
	st.Create("2", "beta")

	// Touch alpha so it becomes the most recent workspace.
	time.Sleep(2 * time.Millisecond)
	notes := st.Notes()
	for i := range notes {
		if notes[i].Workspace == "alpha" {
			st.Update(notes[i].ID, "1 updated")
		}
	}

	ws := st.Workspaces()
	if len(ws) != 2 || ws[0] != "alpha" || ws[1] != "beta" {
		t.Errorf("Workspaces() = %v, want [alpha beta]", ws)
	}
}

func TestCycleFilterWrapsBothDirections(t *testing.T) {
	st, _ := newTestStore(t)
	st.Create("1", "alpha")

	// Sequence is ["", "alpha"], starting at "".
	if got := st.CycleFilter(1); got != "alpha" {
		t.Errorf("first cycle = %q, want alpha", got)
	}
	if got := st.CycleFilter(1); got != AllWorkspaces {
		t.Errorf("second cycle = %q, want all-workspaces sentinel", got)
	}
	if got := st.CycleFilter(-1); got != "alpha" {
		t.Errorf("reverse cycle = %q, want alpha", got)
	}
}

func TestCycleFilterSingleEntry(t *testing.T) {
	st, _ := newTestStore(t)
	if got := st.CycleFilter(1); got != AllWorkspaces {
		t.Errorf("cycle with no workspaces = %q, want sentinel", got)
	}
}

func TestLoadDropsStaleActiveRef(t *testing.T) {
	fa := newFakeAdapter()
	fa.data[storage.KeyNotes] = `[{"id":"nt-aaaa0001","content":"x","updated_at":"2026-01-01T00:00:00Z"}]`
	fa.data[storage.KeyActiveNote] = "nt-gone"

	st, err := Load(fa, testLogger())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if st.ActiveID() != "" {
		t.Errorf("active = %q, want empty for stale ref", st.ActiveID())
	}
}

func TestLoadCorruptPayloadStartsEmpty(t *testing.T) {
	fa := newFakeAdapter()
	fa.data[storage.KeyNotes] = "{not json"

	st, err := Load(fa, testLogger())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if st.Len() != 0 {
		t.Errorf("Len() = %d, want 0 for corrupt payload", st.Len())
	}
}

func TestPersistFailureKeepsMutation(t *testing.T) {
	st, fa := newTestStore(t)
	fa.failSet = true

	st.Create("survives", "")
	if st.Len() != 1 {
		t.Errorf("Len() = %d, want 1 even when persist fails", st.Len())
	}
}

func TestReloadIfForeign(t *testing.T) {
	st, fa := newTestStore(t)
	st.Create("mine", "")

	// Our own write must not trigger a reload.
	if st.ReloadIfForeign() {
		t.Error("reload triggered by own write")
	}

	// A foreign process replacing the list must.
	foreign := []Note{{ID: "nt-ffff0001", Content: "theirs", UpdatedAt: time.Now().UTC()}}
	raw, _ := json.Marshal(foreign)
	fa.data[storage.KeyNotes] = string(raw)

	if !st.ReloadIfForeign() {
		t.Fatal("foreign write did not trigger reload")
	}
	if st.Len() != 1 || st.Notes()[0].ID != "nt-ffff0001" {
		t.Errorf("notes after reload = %+v, want the foreign list", st.Notes())
	}

	// Undecodable foreign payload keeps local state.
	fa.data[storage.KeyNotes] = "garbage"
	if st.ReloadIfForeign() {
		t.Error("garbage payload triggered reload")
	}
	if st.Notes()[0].ID != "nt-ffff0001" {
		t.Error("local state lost on garbage payload")
	}
}

func TestReplaceDropsStaleActive(t *testing.T) {
	st, _ := newTestStore(t)
	st.Create("gone after replace", "")

	st.Replace([]Note{{ID: "nt-bbbb0001", Content: "new"}}, true)
	if st.ActiveID() != "" {
		t.Errorf("active = %q, want cleared", st.ActiveID())
	}
}

func TestTitleFirstLine(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"single line", "hello", "hello"},
		{"multi line", "first\nsecond\nthird", "first"},
		{"empty", "", ""},
		{"leading newline", "\nbody", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := Note{Content: tt.content}
			if got := n.Title(); got != tt.want {
				t.Errorf("Title() = %q, want %q", got, tt.want)
			}
		})
	}
}
