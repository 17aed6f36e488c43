// Package visit walks a document tree and expands every template
// construct in place: block and inline conditionals, loops, and
// placeholders. Detection is delegated to the detect package; this
// package owns all tree mutation.
package visit

import (
	"fmt"
	"strconv"

	"docxtpl/boolfmt"
	"docxtpl/culture"
	"docxtpl/doctree"
	"docxtpl/format"
	"docxtpl/metrics"
)

// MissingVariableBehavior selects what happens when a placeholder's
// variable does not resolve.
type MissingVariableBehavior int

const (
	// LeaveUnchanged keeps the literal {{...}} token in the output.
	LeaveUnchanged MissingVariableBehavior = iota
	// ReplaceWithEmpty substitutes an empty string.
	ReplaceWithEmpty
	// Throw aborts processing with a MissingVariableError.
	Throw
)

// TypeError reports a {{#foreach X}} whose X resolved to something that
// cannot be iterated.
type TypeError struct {
	Name string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s is not a collection", e.Name)
}

// MissingVariableError aborts processing under the Throw behavior.
type MissingVariableError struct {
	Name string
}

func (e *MissingVariableError) Error() string {
	return fmt.Sprintf("missing variable %q", e.Name)
}

// Processor is the composite visitor: it carries the options captured at
// construction and accumulates per-run counters. It holds no state across
// Process calls beyond those counters, which Reset clears.
type Processor struct {
	Behavior MissingVariableBehavior
	Locale   culture.Locale
	Booleans *boolfmt.Registry
	Formats  *format.Registry
	Fonts    *metrics.FontSet

	Replacements int
	Missing      map[string]struct{}
}

// NewProcessor returns a Processor with the default behavior, the
// invariant locale, and the built-in registries.
func NewProcessor() *Processor {
	return &Processor{
		Locale:   culture.Invariant,
		Booleans: boolfmt.Global,
		Formats:  format.NewRegistry(),
		Missing:  make(map[string]struct{}),
	}
}

// Reset clears the per-run counters so the Processor can be reused.
func (p *Processor) Reset() {
	p.Replacements = 0
	p.Missing = make(map[string]struct{})
}

// MissingNames returns the accumulated missing-variable names.
func (p *Processor) MissingNames() []string {
	out := make([]string, 0, len(p.Missing))
	for k := range p.Missing {
		out = append(out, k)
	}
	return out
}

func (p *Processor) noteMissing(name string) {
	if p.Missing == nil {
		p.Missing = make(map[string]struct{})
	}
	p.Missing[name] = struct{}{}
}

// formatContext builds the formatting context for a placeholder being
// replaced inside a run with format f: the run's bold/italic select the
// measuring style and its half-point size becomes the point size.
func (p *Processor) formatContext(f doctree.RunFormat) *format.Context {
	style := metrics.Regular
	switch {
	case f.Bold && f.Italic:
		style = metrics.BoldItalic
	case f.Bold:
		style = metrics.Bold
	case f.Italic:
		style = metrics.Italic
	}
	var sizePt float64
	if f.Size != "" {
		if hp, err := strconv.Atoi(f.Size); err == nil {
			sizePt = float64(hp) / 2
		}
	}
	return &format.Context{
		Locale:   p.Locale,
		Booleans: p.Booleans,
		Fonts:    p.Fonts,
		Style:    style,
		SizePt:   sizePt,
	}
}
