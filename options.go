package docxtpl

import (
	"docxtpl/boolfmt"
	"docxtpl/format"
	"docxtpl/visit"
)

// MissingVariableBehavior selects what a placeholder does when its
// variable is absent from the data bundle.
type MissingVariableBehavior = visit.MissingVariableBehavior

const (
	// LeaveUnchanged keeps the literal {{...}} token (the default).
	LeaveUnchanged = visit.LeaveUnchanged
	// ReplaceWithEmpty substitutes an empty string.
	ReplaceWithEmpty = visit.ReplaceWithEmpty
	// Throw aborts processing with a MissingVariable error.
	Throw = visit.Throw
)

// Options configure template execution. They are captured when set and
// read-only while a document is being processed.
type Options struct {
	MissingVariables MissingVariableBehavior
	// Culture is a BCP-47-like tag ("ru-RU", "de-DE"); empty means the
	// invariant culture.
	Culture string
	// Booleans overrides the process-wide boolean pair registry.
	Booleans *boolfmt.Registry
	// Formats overrides the built-in specifier registry. The document
	// binds its drawing specifiers onto a clone, never onto this value.
	Formats *format.Registry
}

// Result reports what one ExecuteTemplate call did.
type Result struct {
	Success          bool
	ReplacementCount int
	MissingVariables []string
	Error            *EngineError
}
