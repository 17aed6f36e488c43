package visit

import (
	"docxtpl/detect"
	"docxtpl/doctree"
	"docxtpl/evalctx"
)

// Process walks the whole document under the given root context. Blocks
// are dispatched to their visitors as they are found; everything a loop
// clones is walked recursively with the loop's frame, so inner constructs
// always see the frame of their nearest enclosing loop.
func (p *Processor) Process(doc *doctree.Document, ctx evalctx.Context) error {
	return p.walkSiblings(doc, ctx, 0)
}

// walkSiblings processes the child list of parent. The list is re-read on
// every step because visitors detach and insert siblings; after a
// conditional collapses, the same index is scanned again so the surviving
// branch content (now occupying that position) is processed in turn.
// Nodes already detached by an earlier visit are skipped.
func (p *Processor) walkSiblings(parent doctree.Container, ctx evalctx.Context, level int) error {
	i := 0
	for {
		kids := parent.Children()
		if i >= len(kids) {
			return nil
		}
		n := kids[i]
		if n.Parent() == nil {
			i++
			continue
		}
		switch node := n.(type) {
		case *doctree.Paragraph:
			if lb := detect.Loop(kids, i); lb != nil {
				inserted, err := p.visitLoop(lb, ctx, level)
				if err != nil {
					return err
				}
				// Everything the loop spliced in is fully processed;
				// resume after it.
				i += inserted
				continue
			}
			if cb := detect.Conditional(kids, i, level); cb != nil {
				if err := p.visitConditional(cb, ctx); err != nil {
					return err
				}
				continue
			}
			if err := p.visitParagraph(node, ctx); err != nil {
				return err
			}
			i++
		case *doctree.Table:
			if err := p.walkTable(node, ctx, level); err != nil {
				return err
			}
			i++
		default:
			i++
		}
	}
}

// walkTable checks each row for table-row-form loops and conditionals
// before recursing into the remaining rows' cells.
func (p *Processor) walkTable(t *doctree.Table, ctx evalctx.Context, level int) error {
	i := 0
	for {
		rows := t.Rows
		if i >= len(rows) {
			return nil
		}
		if rows[i].Parent() == nil {
			i++
			continue
		}
		if lb := detect.RowLoop(rows, i); lb != nil {
			inserted, err := p.visitLoop(lb, ctx, level)
			if err != nil {
				return err
			}
			i += inserted
			continue
		}
		if cb := detect.RowConditional(rows, i, level); cb != nil {
			if err := p.visitConditional(cb, ctx); err != nil {
				return err
			}
			continue
		}
		for _, cell := range rows[i].Cells {
			if err := p.walkSiblings(cell, ctx, level); err != nil {
				return err
			}
		}
		i++
	}
}
