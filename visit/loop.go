package visit

import (
	"docxtpl/detect"
	"docxtpl/doctree"
	"docxtpl/evalctx"
	"docxtpl/value"
)

// visitLoop expands a {{#foreach}} block: the body is deep-cloned once
// per item, each clone is walked with a fresh loop frame (which is how
// nested loops and conditionals inside the body see the right item), and
// the fully expanded sequence replaces the markers and original body.
// Returns how many nodes were spliced into the parent so the walker can
// resume after them.
//
// An unresolvable or empty collection expands to nothing; a value that is
// not a sequence is a TypeError and aborts processing.
func (p *Processor) visitLoop(lb *detect.LoopBlock, ctx evalctx.Context, level int) (int, error) {
	v, ok := ctx.Resolve(value.ParsePath(lb.CollectionPath))
	var seq value.Sequence
	if ok {
		switch s := v.(type) {
		case value.Sequence:
			seq = s
		case value.Null:
		default:
			return 0, &TypeError{Name: lb.CollectionPath}
		}
	}

	count := len(seq)
	var expanded []doctree.Node
	for idx, item := range seq {
		frame := evalctx.NewLoop(item, idx, count, lb.CollectionPath, ctx)

		clones := make([]doctree.Node, 0, len(lb.Content))
		for _, n := range lb.Content {
			clones = append(clones, n.Clone())
		}
		// Body rows that doubled as marker rows repeat with their marker
		// text removed.
		if lb.StartRowInBody && len(clones) > 0 {
			stripLoopMarker(clones[0], true)
		}
		if lb.EndRowInBody && len(clones) > 0 {
			stripLoopMarker(clones[len(clones)-1], false)
		}

		// Clones are parked in a scratch container of the right shape so
		// the ordinary walk — with all its detach/insert bookkeeping —
		// can run over them before they are spliced into the document.
		scratch := scratchFor(lb)
		scratch.ReplaceChildren(clones)
		var err error
		if t, isTable := scratch.(*doctree.Table); isTable {
			err = p.walkTable(t, frame, level+1)
		} else {
			err = p.walkSiblings(scratch, frame, level+1)
		}
		if err != nil {
			return 0, err
		}
		expanded = append(expanded, scratch.Children()...)
	}

	for _, n := range expanded {
		lb.StartMarker.InsertBefore(n)
	}
	lb.StartMarker.Detach()
	lb.EndMarker.Detach()
	for _, n := range lb.Content {
		if n.Parent() != nil {
			n.Detach()
		}
	}
	return len(expanded), nil
}

func scratchFor(lb *detect.LoopBlock) doctree.Container {
	if lb.IsTableRowForm {
		return &doctree.Table{}
	}
	return &doctree.Document{}
}

// stripLoopMarker removes one loop marker token from a cloned body row:
// the first {{#foreach}} when open is true, the last {{/foreach}}
// otherwise. Other markers in the row belong to nested loops and stay.
func stripLoopMarker(n doctree.Node, open bool) {
	row, ok := n.(*doctree.TableRow)
	if !ok {
		return
	}
	for _, c := range row.Cells {
		for _, b := range c.Blocks {
			para, ok := b.(*doctree.Paragraph)
			if !ok {
				continue
			}
			cells := flatten(para)
			spans := detect.LoopMarkerSpans(cellsText(cells))
			for k := range spans {
				if open {
					if spans[k].IsOpen {
						rebuild(para, spliceCells(cells, spans[k].Start, spans[k].End, nil))
						return
					}
				} else if !spans[k].IsOpen {
					// Keep scanning so the last close marker is the one
					// removed.
					last := -1
					for j := k; j < len(spans); j++ {
						if !spans[j].IsOpen {
							last = j
						}
					}
					rebuild(para, spliceCells(cells, spans[last].Start, spans[last].End, nil))
					return
				}
			}
		}
	}
}
