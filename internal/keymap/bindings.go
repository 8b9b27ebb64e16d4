package keymap

// DefaultBindings returns the default key bindings.
func DefaultBindings() []Binding {
	return []Binding{
		// Global bindings
		{Key: "ctrl+c", Command: "quit", Context: "global", Desc: "quit"},
		{Key: "ctrl+p", Command: "toggle-palette", Context: "global", Desc: "palette"},
		{Key: "ctrl+t", Command: "toggle-theme", Context: "global", Desc: "theme"},
		{Key: "ctrl+h", Command: "toggle-footer", Context: "global", Desc: "footer"},
		{Key: "alt+n", Command: "toggle-narrow", Context: "global", Desc: "narrow layout"},

		// Editor context
		{Key: "ctrl+r", Command: "toggle-preview", Context: "editor", Desc: "preview"},
		{Key: "alt+c", Command: "yank", Context: "editor", Desc: "copy"},
		{Key: "ctrl+z", Command: "undo-delete", Context: "editor", Desc: "undo delete"},

		// Palette context
		{Key: "esc", Command: "close", Context: "palette", Desc: "close"},
		{Key: "enter", Command: "select", Context: "palette", Desc: "select"},
		{Key: "up", Command: "cursor-up", Context: "palette", Desc: "up"},
		{Key: "down", Command: "cursor-down", Context: "palette", Desc: "down"},
		{Key: "ctrl+k", Command: "chord-up", Context: "palette", Desc: "hold: up"},
		{Key: "ctrl+j", Command: "chord-down", Context: "palette", Desc: "hold: down"},
		{Key: "left", Command: "prev-workspace", Context: "palette", Desc: "workspace"},
		{Key: "right", Command: "next-workspace", Context: "palette", Desc: "workspace"},
		{Key: "alt+backspace", Command: "quick-delete", Context: "palette", Desc: "delete note"},
		{Key: "ctrl+z", Command: "undo-delete", Context: "palette", Desc: "undo delete"},
	}
}

// RegisterDefaults registers all default bindings with the registry.
func RegisterDefaults(r *Registry) {
	for _, b := range DefaultBindings() {
		r.RegisterBinding(b)
	}
}
