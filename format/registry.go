package format

import (
	"sync"

	"docxtpl/value"
)

// Func renders a value under a named specifier. args are the specifier's
// colon-separated arguments, already unquoted.
type Func func(v value.Value, args []string, fc *Context) (Output, error)

// Registry maps specifier names to their implementations. Registration is
// additive and last-writer-wins; the engine only reads it while a document
// is being processed.
type Registry struct {
	mu    sync.Mutex
	funcs map[string]Func
}

// NewRegistry returns a Registry seeded with the built-in specifiers.
func NewRegistry() *Registry {
	r := &Registry{funcs: make(map[string]Func)}
	r.registerBuiltins()
	return r
}

// Register adds or replaces a named specifier.
func (r *Registry) Register(name string, fn Func) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.funcs[name] = fn
}

// Clone returns an independent copy, so per-document registrations (the
// drawing specifiers bound to one output file) don't leak into the
// registry the host handed in.
func (r *Registry) Clone() *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := &Registry{funcs: make(map[string]Func, len(r.funcs))}
	for k, v := range r.funcs {
		c.funcs[k] = v
	}
	return c
}

func (r *Registry) lookup(name string) (Func, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn, ok := r.funcs[name]
	return fn, ok
}

func (r *Registry) registerBuiltins() {
	// numbers and words
	r.funcs["numeral"] = Numeral
	r.funcs["plural"] = Plural
	r.funcs["money"] = Money
	r.funcs["roman"] = Roman
	r.funcs["sign"] = Sign
	r.funcs["pad_left"] = PadLeft
	r.funcs["pad_right"] = PadRight

	// names
	r.funcs["decl"] = Declension
	r.funcs["declension"] = Declension

	// dates
	r.funcs["date_format"] = DateFormat

	// strings
	r.funcs["prefix"] = Prefix
	r.funcs["postfix"] = Postfix
	r.funcs["default"] = Default
	r.funcs["replace"] = Replace
	r.funcs["truncate"] = Truncate
	r.funcs["compact"] = Compact
	r.funcs["nowrap"] = Nowrap
	r.funcs["abbr"] = Abbr
	r.funcs["ru_phone"] = RuPhone
	r.funcs["upper"] = Upper
	r.funcs["lower"] = Lower

	// width fitting
	r.funcs["fit"] = Fit
}
