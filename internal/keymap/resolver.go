package keymap

// Resolver maps the keys read from the terminal to actions and holds the
// legend shown on start and on the help action.
type Resolver struct {
	actions map[string]Action
	legend  string
}

// NewResolver indexes bindings by key. Several bindings may share an action
// (volume up and down are one legend entry but two actions). Bindings from
// WithOverrides never bind one key to two actions; for hand-built bindings
// that do, the later binding wins.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		actions: make(map[string]Action),
		legend:  Legend(bindings),
	}
	for _, b := range bindings {
		for _, key := range b.Keys {
			r.actions[key] = b.Action
		}
	}
	return r
}

// Resolve returns the action bound to key, or "" for unbound keys.
func (r *Resolver) Resolve(key string) Action {
	return r.actions[key]
}

func (r *Resolver) Legend() string {
	return r.legend
}
