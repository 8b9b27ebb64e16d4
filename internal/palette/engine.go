// Package palette implements the modal command palette: a pure keyboard
// state machine plus the Bubble Tea model and view that drive it.
package palette

// Engine is the palette's keyboard state machine: open/closed, the
// selected index, the query text and the chord-pending flag. It is pure
// index arithmetic — no rendering, no store access — so every transition
// is reproducible without keyboard timing.
type Engine struct {
	open         bool
	selected     int
	query        string
	chordPending bool

	// onSelect is invoked whenever the selected index changes, so the
	// presentation layer can scroll the row into view.
	onSelect func(index int)
}

// SetSelectionChanged registers the selection-changed hook.
func (e *Engine) SetSelectionChanged(fn func(index int)) {
	e.onSelect = fn
}

// Open transitions Closed → Open, resetting selection and query.
func (e *Engine) Open() {
	e.open = true
	e.query = ""
	e.chordPending = false
	e.setSelected(0)
}

// Close transitions Open → Closed and resets the selection.
func (e *Engine) Close() {
	e.open = false
	e.chordPending = false
	e.setSelected(0)
}

// IsOpen reports whether the palette is open.
func (e *Engine) IsOpen() bool { return e.open }

// Selected returns the selected suggestion index.
func (e *Engine) Selected() int { return e.selected }

// Query returns the current query text.
func (e *Engine) Query() string { return e.query }

// ChordPending reports whether a chord commit is armed.
func (e *Engine) ChordPending() bool { return e.chordPending }

// SetQuery replaces the query and resets the selection to the top.
func (e *Engine) SetQuery(q string) {
	e.query = q
	e.setSelected(0)
}

// MoveSelection moves the selected index by delta over n suggestions,
// wrapping at both ends. Navigation over an empty list is a no-op, so an
// empty suggestion list can never be indexed out of bounds.
func (e *Engine) MoveSelection(delta, n int) {
	if n <= 0 {
		return
	}
	e.setSelected(((e.selected+delta)%n + n) % n)
}

// Clamp pulls the selection back into [0, n) after the suggestion count
// changed underneath it (store mutation, query edit, workspace cycle).
func (e *Engine) Clamp(n int) {
	if n <= 0 {
		e.setSelected(0)
		return
	}
	if e.selected >= n {
		e.setSelected(n - 1)
	}
}

// ResetSelection moves the selection back to the top.
func (e *Engine) ResetSelection() {
	e.setSelected(0)
}

// ChordNav is a navigation key tapped while the chord modifier is held:
// it moves the selection and arms the chord commit.
func (e *Engine) ChordNav(delta, n int) {
	e.chordPending = true
	e.MoveSelection(delta, n)
}

// ChordRelease is the modifier key-up edge. It reports whether an armed
// chord should commit the current selection (exactly as Enter would) and
// always disarms the flag.
func (e *Engine) ChordRelease() bool {
	pending := e.chordPending
	e.chordPending = false
	return pending
}

// ChordCancel disarms a pending chord without committing.
func (e *Engine) ChordCancel() {
	e.chordPending = false
}

func (e *Engine) setSelected(i int) {
	changed := e.selected != i
	e.selected = i
	if changed && e.onSelect != nil {
		e.onSelect(i)
	}
}
