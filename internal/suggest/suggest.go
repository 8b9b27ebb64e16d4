// Package suggest builds the palette's ranked suggestion list: fuzzy note
// matches blended with synthesized actions, in a fixed priority order.
package suggest

import (
	"sort"
	"strings"

	"github.com/mknight/jot/internal/fuzzy"
	"github.com/mknight/jot/internal/note"
)

// Kind discriminates the suggestion union.
type Kind int

const (
	// KindNote is a candidate note to open.
	KindNote Kind = iota
	// Action kinds are pure descriptions; Apply executes their effect.
	KindCreateNote
	KindMoveToWorkspace
	KindCreateWorkspace
	KindRenameWorkspace
	KindUnlink
)

// Color tags for action rows (mapped to styles by the view).
type Color int

const (
	ColorNone Color = iota
	ColorCreate
	ColorMove
	ColorRename
)

// maxQueryLen caps the query text actions embed, so a pasted wall of text
// does not become a workspace name.
const maxQueryLen = 20

// unlinkPhrase is the literal the unlink row matches queries against.
const unlinkPhrase = "unlink note"

// Suggestion is one selectable palette row: either an existing note or a
// synthesized action described by Kind plus parameters.
type Suggestion struct {
	Kind    Kind
	Note    *note.Note // KindNote only
	Title   string
	Preview string
	Color   Color
	Ranges  []fuzzy.Range // query highlight within Title (notes only)

	// Action parameters.
	Query  string // the trimmed, capped query the action embeds
	Target string // best-matching workspace tag (KindMoveToWorkspace)
}

// Build produces the ordered suggestion list for the store's current state
// and a free-text query. It is a pure read; recomputed on every keystroke
// and every store mutation.
func Build(st *note.Store, query string) []Suggestion {
	var out []Suggestion

	q := strings.TrimSpace(query)
	out = append(out, noteMatches(st, q)...)

	// Only the synthesized actions embed the query, so only they get the
	// capped form; note matching sees the full text.
	if q != "" {
		out = append(out, actionCandidates(st, capQuery(q))...)
	}

	if s, ok := unlinkSuggestion(st, q); ok {
		out = append(out, s)
	}
	return out
}

// capQuery truncates the action query to maxQueryLen runes.
func capQuery(q string) string {
	if runes := []rune(q); len(runes) > maxQueryLen {
		return string(runes[:maxQueryLen])
	}
	return q
}

// noteMatches returns the note rows: the workspace-filtered list by
// recency when the query is empty, otherwise permissive fuzzy matches in
// match-rank order.
func noteMatches(st *note.Store, q string) []Suggestion {
	notes := st.ListByWorkspace(st.Filter())

	if q == "" {
		// Recency sort; ties keep store order (SliceStable).
		sort.SliceStable(notes, func(i, j int) bool {
			return notes[i].UpdatedAt.After(notes[j].UpdatedAt)
		})
		out := make([]Suggestion, len(notes))
		for i := range notes {
			out[i] = noteSuggestion(&notes[i], nil)
		}
		return out
	}

	contents := make([]string, len(notes))
	for i, n := range notes {
		contents[i] = n.Content
	}
	matches := fuzzy.Matches(q, contents, fuzzy.PermissiveThreshold)
	out := make([]Suggestion, len(matches))
	for i, m := range matches {
		out[i] = noteSuggestion(&notes[m.Index], m.Ranges)
	}
	return out
}

func noteSuggestion(n *note.Note, ranges []fuzzy.Range) Suggestion {
	title := n.Title()
	var clipped []fuzzy.Range
	for _, r := range ranges {
		if r.End <= len(title) {
			clipped = append(clipped, r)
		}
	}
	return Suggestion{
		Kind:    KindNote,
		Note:    n,
		Title:   title,
		Preview: n.Content,
		Ranges:  clipped,
	}
}

// actionCandidates synthesizes the action rows for a non-empty query, in
// fixed priority order: create note, move, create workspace, rename.
func actionCandidates(st *note.Store, q string) []Suggestion {
	out := []Suggestion{{
		Kind:    KindCreateNote,
		Title:   q,
		Preview: "create note",
		Color:   ColorCreate,
		Query:   q,
	}}

	tags := st.Workspaces()
	if best, ok := fuzzy.Best(q, tags, fuzzy.TightThreshold); ok {
		out = append(out, Suggestion{
			Kind:    KindMoveToWorkspace,
			Title:   ">[" + tags[best] + "]",
			Preview: "move note to workspace",
			Color:   ColorMove,
			Query:   q,
			Target:  tags[best],
		})
	}

	exact := false
	for _, tag := range tags {
		if tag == q {
			exact = true
			break
		}
	}
	if !exact {
		out = append(out, Suggestion{
			Kind:    KindCreateWorkspace,
			Title:   "+[" + q + "]",
			Preview: "create workspace",
			Color:   ColorCreate,
			Query:   q,
		})
	}

	out = append(out, Suggestion{
		Kind:    KindRenameWorkspace,
		Title:   "=[" + q + "]",
		Preview: "rename current workspace",
		Color:   ColorRename,
		Query:   q,
	})
	return out
}

// unlinkSuggestion is offered when the active note carries a workspace tag
// and the query is empty or a substring of the literal phrase.
func unlinkSuggestion(st *note.Store, q string) (Suggestion, bool) {
	active := st.Active()
	if active == nil || active.Workspace == "" {
		return Suggestion{}, false
	}
	if q != "" && !strings.Contains(unlinkPhrase, strings.ToLower(q)) {
		return Suggestion{}, false
	}
	return Suggestion{
		Kind:    KindUnlink,
		Title:   unlinkPhrase,
		Preview: "clear workspace tag from " + active.Title(),
		Query:   q,
	}, true
}
