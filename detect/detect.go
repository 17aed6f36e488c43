package detect

import "docxtpl/doctree"

// paragraphMarker classifies a sibling node as a block marker. Only
// paragraphs can carry block-level markers; anything else is markerNone.
func paragraphMarker(n doctree.Node) marker {
	p, ok := n.(*doctree.Paragraph)
	if !ok {
		return marker{kind: markerNone}
	}
	return classify(p.Text())
}

// rowMarker classifies a table row as a block marker: the row's combined
// cell text must be exactly the marker, with no other meaningful content.
func rowMarker(r *doctree.TableRow) marker {
	return classify(r.Text())
}

// Conditional recognizes a paragraph-level conditional block starting at
// siblings[start]: a {{#if}} marker paragraph, its {{#elseif}}/{{else}}
// branch markers, and the matching {{/if}}. Nesting is resolved with a
// depth counter keyed on #if / /if. Returns nil when siblings[start] is
// not a start marker or the block is unclosed — an unclosed block is not
// an error, its markers stay in the document as literal text.
func Conditional(siblings []doctree.Node, start, level int) *ConditionalBlock {
	m := paragraphMarker(siblings[start])
	if m.kind != markerIf {
		return nil
	}

	block := &ConditionalBlock{NestingLevel: level}
	cur := Branch{ConditionText: m.arg, Marker: siblings[start]}
	depth := 1

	for i := start + 1; i < len(siblings); i++ {
		mk := paragraphMarker(siblings[i])
		switch mk.kind {
		case markerIf:
			depth++
		case markerEndIf:
			depth--
			if depth == 0 {
				block.Branches = append(block.Branches, cur)
				block.EndMarker = siblings[i]
				return block
			}
		case markerElseIf:
			if depth == 1 {
				block.Branches = append(block.Branches, cur)
				cur = Branch{ConditionText: mk.arg, Marker: siblings[i]}
				continue
			}
		case markerElse:
			if depth == 1 {
				block.Branches = append(block.Branches, cur)
				cur = Branch{IsElse: true, Marker: siblings[i]}
				continue
			}
		}
		cur.Content = append(cur.Content, siblings[i])
	}
	return nil
}

// Loop recognizes a paragraph-level {{#foreach NAME}} block starting at
// siblings[start]. Same pairing discipline as Conditional, keyed on
// #foreach / /foreach. Nil for non-markers and unclosed blocks.
func Loop(siblings []doctree.Node, start int) *LoopBlock {
	m := paragraphMarker(siblings[start])
	if m.kind != markerForeach {
		return nil
	}

	block := &LoopBlock{CollectionPath: m.arg, StartMarker: siblings[start]}
	depth := 1

	for i := start + 1; i < len(siblings); i++ {
		mk := paragraphMarker(siblings[i])
		switch mk.kind {
		case markerForeach:
			depth++
		case markerEndForeach:
			depth--
			if depth == 0 {
				block.EndMarker = siblings[i]
				return block
			}
		}
		block.Content = append(block.Content, siblings[i])
	}
	return nil
}

// RowLoop recognizes a table-row-form loop. The canonical shape is a row
// whose entire cell text is {{#foreach NAME}}, the matching {{/foreach}}
// row, and the rows strictly between them as the body; marker-only rows
// are removed, never repeated. A start (or end) row that carries content
// alongside its marker is instead itself part of the body, repeated with
// the marker text stripped — the compact one-row-per-item table shape.
func RowLoop(rows []*doctree.TableRow, start int) *LoopBlock {
	opens, closes := loopMarkerCounts(rows[start].Text())
	if len(opens) == 0 {
		return nil
	}

	block := &LoopBlock{
		CollectionPath: opens[0],
		StartMarker:    rows[start],
		IsTableRowForm: true,
		StartRowInBody: rowMarker(rows[start]).kind != markerForeach,
	}

	depth := len(opens) - closes
	if depth <= 0 {
		// Open and close balance inside the start row itself.
		block.EndMarker = rows[start]
		block.EndRowInBody = block.StartRowInBody
		if block.StartRowInBody {
			block.Content = []doctree.Node{rows[start]}
		}
		return block
	}

	for i := start + 1; i < len(rows); i++ {
		opens, closes = loopMarkerCounts(rows[i].Text())
		depth += len(opens) - closes
		if depth <= 0 {
			block.EndMarker = rows[i]
			block.EndRowInBody = rowMarker(rows[i]).kind != markerEndForeach
			if block.StartRowInBody {
				block.Content = append(block.Content, rows[start])
			}
			for j := start + 1; j < i; j++ {
				block.Content = append(block.Content, rows[j])
			}
			if block.EndRowInBody {
				block.Content = append(block.Content, rows[i])
			}
			return block
		}
	}
	return nil
}

// RowConditional recognizes a table-row-form conditional: marker rows for
// {{#if}}/{{#elseif}}/{{else}}/{{/if}} with whole rows as branch bodies.
func RowConditional(rows []*doctree.TableRow, start, level int) *ConditionalBlock {
	m := rowMarker(rows[start])
	if m.kind != markerIf {
		return nil
	}

	block := &ConditionalBlock{NestingLevel: level, IsTableRowForm: true}
	cur := Branch{ConditionText: m.arg, Marker: rows[start]}
	depth := 1

	for i := start + 1; i < len(rows); i++ {
		mk := rowMarker(rows[i])
		switch mk.kind {
		case markerIf:
			depth++
		case markerEndIf:
			depth--
			if depth == 0 {
				block.Branches = append(block.Branches, cur)
				block.EndMarker = rows[i]
				return block
			}
		case markerElseIf:
			if depth == 1 {
				block.Branches = append(block.Branches, cur)
				cur = Branch{ConditionText: mk.arg, Marker: rows[i]}
				continue
			}
		case markerElse:
			if depth == 1 {
				block.Branches = append(block.Branches, cur)
				cur = Branch{IsElse: true, Marker: rows[i]}
				continue
			}
		}
		cur.Content = append(cur.Content, rows[i])
	}
	return nil
}
