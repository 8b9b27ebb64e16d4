package suggest

import "github.com/mknight/jot/internal/note"

// Outcome tells the palette what to do with itself after an effect runs.
type Outcome struct {
	ClosePalette bool
	ClearQuery   bool
}

// Apply executes a suggestion's effect against the store. Suggestions are
// pure descriptions; this single dispatcher is the only place effects
// touch the store, which keeps them testable without the UI.
func Apply(s Suggestion, st *note.Store) Outcome {
	switch s.Kind {
	case KindNote:
		st.SetActive(s.Note.ID)
		return Outcome{ClosePalette: true, ClearQuery: true}

	case KindCreateNote:
		st.Create(s.Query, st.Filter())
		return Outcome{ClosePalette: true, ClearQuery: true}

	case KindMoveToWorkspace:
		if active := st.Active(); active != nil {
			st.MoveToWorkspace(active.ID, s.Target)
		}
		st.SetFilter(s.Target)
		return Outcome{ClearQuery: true}

	case KindCreateWorkspace:
		st.Create("", s.Query)
		st.SetFilter(s.Query)
		return Outcome{}

	case KindRenameWorkspace:
		// With no active filter this re-tags zero notes and only switches
		// the filter to the typed tag; the row is offered regardless.
		st.RenameWorkspace(st.Filter(), s.Query)
		st.SetFilter(s.Query)
		return Outcome{}

	case KindUnlink:
		if active := st.Active(); active != nil {
			st.UnlinkWorkspace(active.ID)
		}
		st.SetFilter(note.AllWorkspaces)
		return Outcome{}
	}
	return Outcome{}
}
