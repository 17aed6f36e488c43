// Package boolfmt is the boolean formatter registry: a process-wide,
// mutable-by-the-host, read-only-during-processing map from (culture,
// specifier name) to a (true, false) string pair.
package boolfmt

import "sync"

// Pair is the (true-string, false-string) rendering of a boolean.
type Pair struct {
	True  string
	False string
}

// Registry maps (culture, specifier) to a Pair. The zero value is not
// usable; construct with NewRegistry or use the process-wide Global.
type Registry struct {
	mu    sync.Mutex
	pairs map[string]map[string]Pair
}

// NewRegistry returns a Registry pre-populated with the built-in
// specifiers and their locale variants.
func NewRegistry() *Registry {
	r := &Registry{pairs: make(map[string]map[string]Pair)}
	r.seedBuiltins()
	return r
}

// Global is the process-wide registry the engine uses unless the host
// injects its own through Options.
var Global = NewRegistry()

// Register adds or overwrites the (culture, name) pair. Registration is
// additive and last-writer-wins.
func (r *Registry) Register(culture, name string, p Pair) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pairs[culture] == nil {
		r.pairs[culture] = make(map[string]Pair)
	}
	r.pairs[culture][name] = p
}

// Lookup returns the pair registered for (culture, name), falling back to
// the "invariant" culture's registration of the same name if the specific
// culture has none. ok is false only when the specifier name itself is
// unknown under both, which callers treat as an unknown format.
func (r *Registry) Lookup(culture, name string) (Pair, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.pairs[culture]; ok {
		if p, ok := m[name]; ok {
			return p, true
		}
	}
	if m, ok := r.pairs["invariant"]; ok {
		if p, ok := m[name]; ok {
			return p, true
		}
	}
	return Pair{}, false
}

func (r *Registry) seedBuiltins() {
	add := func(culture string, entries map[string]Pair) {
		for name, p := range entries {
			r.Register(culture, name, p)
		}
	}

	invariant := map[string]Pair{
		"checkbox":  {True: "☑", False: "☐"},
		"checkmark": {True: "✓", False: "✗"},
		"truefalse": {True: "True", False: "False"},
		"onoff":     {True: "On", False: "Off"},
		"enabled":   {True: "Enabled", False: "Disabled"},
		"active":    {True: "Active", False: "Inactive"},
		"yesno":     {True: "Yes", False: "No"},
	}
	add("invariant", invariant)
	add("en-US", invariant)

	add("ru-RU", map[string]Pair{"yesno": {True: "Да", False: "Нет"}})
	add("de-DE", map[string]Pair{"yesno": {True: "Ja", False: "Nein"}})
	add("fr-FR", map[string]Pair{"yesno": {True: "Oui", False: "Non"}})
	add("es-ES", map[string]Pair{"yesno": {True: "Sí", False: "No"}})
	add("it-IT", map[string]Pair{"yesno": {True: "Sì", False: "No"}})
	add("pt-PT", map[string]Pair{"yesno": {True: "Sim", False: "Não"}})
}
