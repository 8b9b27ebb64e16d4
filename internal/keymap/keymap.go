package keymap

import "sort"

// Binding maps a key to a command within a context.
type Binding struct {
	Key     string
	Command string
	Context string
	Desc    string
}

// Registry holds key bindings grouped by context.
type Registry struct {
	byContext map[string]map[string]Binding
}

// NewRegistry creates an empty binding registry.
func NewRegistry() *Registry {
	return &Registry{byContext: make(map[string]map[string]Binding)}
}

// RegisterBinding adds a binding, replacing any existing binding for the
// same key in the same context.
func (r *Registry) RegisterBinding(b Binding) {
	ctx, ok := r.byContext[b.Context]
	if !ok {
		ctx = make(map[string]Binding)
		r.byContext[b.Context] = ctx
	}
	ctx[b.Key] = b
}

// Lookup resolves a key within a context, falling back to the global
// context when the key is unbound there.
func (r *Registry) Lookup(context, key string) (Binding, bool) {
	if ctx, ok := r.byContext[context]; ok {
		if b, ok := ctx[key]; ok {
			return b, true
		}
	}
	if context != "global" {
		if ctx, ok := r.byContext["global"]; ok {
			if b, ok := ctx[key]; ok {
				return b, true
			}
		}
	}
	return Binding{}, false
}

// ForContext returns the bindings of a context sorted by command name, for
// footer hints.
func (r *Registry) ForContext(context string) []Binding {
	ctx := r.byContext[context]
	out := make([]Binding, 0, len(ctx))
	for _, b := range ctx {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Command < out[j].Command })
	return out
}

// ApplyOverrides rebinds commands to user-chosen keys. Override keys take
// the form "context/command".
func (r *Registry) ApplyOverrides(overrides map[string]string) {
	for spec, newKey := range overrides {
		for ctxName, ctx := range r.byContext {
			for oldKey, b := range ctx {
				if ctxName+"/"+b.Command == spec {
					delete(ctx, oldKey)
					b.Key = newKey
					ctx[newKey] = b
				}
			}
		}
	}
}
