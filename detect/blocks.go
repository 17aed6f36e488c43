package detect

import "docxtpl/doctree"

// Branch is one arm of a ConditionalBlock: either a condition (stored as
// raw, not-yet-parsed text — parsing runs during evaluation so a malformed
// expression surfaces when the branch is visited, not at detection time)
// or the else arm.
type Branch struct {
	ConditionText string
	IsElse        bool
	Marker        doctree.Node
	Content       []doctree.Node
}

// ConditionalBlock is a detected {{#if}} block: an ordered set of
// branches, an end marker, and the metadata the walker and visitor need
// (nesting depth, table-row form). The else branch, when present, is
// always last. Conditionals living inside a single paragraph are a
// separate shape, InlineSpan.
type ConditionalBlock struct {
	Branches       []Branch
	EndMarker      doctree.Node
	NestingLevel   int
	IsTableRowForm bool
}

// LoopBlock is a detected {{#foreach}} block. Content nodes form a
// contiguous sibling range between the two markers. In table-row form the
// markers are whole rows and the body is the rows between them — unless a
// marker row carries other content besides the marker, in which case that
// row itself belongs to the body (StartRowInBody/EndRowInBody) and the
// loop visitor strips the marker text from each cloned copy.
type LoopBlock struct {
	CollectionPath string
	StartMarker    doctree.Node
	EndMarker      doctree.Node
	Content        []doctree.Node
	IsTableRowForm bool
	StartRowInBody bool
	EndRowInBody   bool
}
