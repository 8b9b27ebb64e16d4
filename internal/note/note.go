// Package note owns the canonical note list: workspace membership, the
// active note, the workspace filter and the session deletion stack. Every
// other component reads from and writes through the Store.
package note

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// AllWorkspaces is the filter sentinel meaning "no workspace filter".
const AllWorkspaces = ""

// Note is a single note. Workspace is the free-text tag partitioning notes
// into named groups; empty means untagged.
type Note struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updated_at"`
	Workspace string    `json:"workspace,omitempty"`
}

// Title returns the first line of the note content, for list display.
func (n Note) Title() string {
	for i := 0; i < len(n.Content); i++ {
		if n.Content[i] == '\n' {
			return n.Content[:i]
		}
	}
	return n.Content
}

// generateID creates a new note ID with "nt-" prefix and 8 hex chars.
// IDs are unique for the process lifetime and never reused.
func generateID() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing means the platform is broken; fall back to
		// a time-derived suffix rather than aborting a note creation.
		return "nt-" + hex.EncodeToString([]byte(time.Now().Format("150405.000"))[:4])
	}
	return "nt-" + hex.EncodeToString(b)
}
