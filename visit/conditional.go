package visit

import (
	"docxtpl/detect"
	"docxtpl/evalctx"
	"docxtpl/expr"
)

// visitConditional collapses a block-level (or table-row-form)
// conditional: the first branch whose condition holds wins, an else
// branch wins unconditionally when reached, and with no winner the block
// reduces to nothing. Marker nodes and losing branch content are
// detached; the winning content stays in place for the walker to process.
func (p *Processor) visitConditional(cb *detect.ConditionalBlock, ctx evalctx.Context) error {
	winner := -1
	for bi := range cb.Branches {
		br := &cb.Branches[bi]
		if br.IsElse {
			winner = bi
			break
		}
		e, err := expr.Parse(br.ConditionText)
		if err != nil {
			return err
		}
		ok, err := e.EvalBool(ctx)
		if err != nil {
			return err
		}
		if ok {
			winner = bi
			break
		}
	}

	for bi := range cb.Branches {
		br := &cb.Branches[bi]
		br.Marker.Detach()
		if bi != winner {
			for _, n := range br.Content {
				n.Detach()
			}
		}
	}
	cb.EndMarker.Detach()
	return nil
}
