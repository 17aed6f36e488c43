package visit

import (
	"strings"

	"docxtpl/detect"
	"docxtpl/doctree"
	"docxtpl/evalctx"
	"docxtpl/expr"
	"docxtpl/format"
	"docxtpl/value"
)

// objectRune stands in for a raw-XML fragment (a generated drawing) in
// the flattened character stream.
const objectRune = '￼'

// cell is one character of paragraph text together with the formatting of
// the run it came from. A cell with a non-empty raw field is an opaque
// object occupying one position; it survives splicing untouched.
type cell struct {
	r   rune
	fmt doctree.RunFormat
	raw string
}

// flatten turns a paragraph into a cell stream: every character keeps its
// run's format, tabs and breaks ride along as their stand-in characters,
// and raw-XML runs collapse to a single object cell.
func flatten(p *doctree.Paragraph) []cell {
	var cells []cell
	for _, r := range p.Runs {
		if r.RawXML != "" {
			cells = append(cells, cell{r: objectRune, fmt: r.Format, raw: r.RawXML})
			continue
		}
		for _, ch := range r.Text {
			cells = append(cells, cell{r: ch, fmt: r.Format})
		}
	}
	return cells
}

func cellsText(cells []cell) string {
	runes := make([]rune, len(cells))
	for i, c := range cells {
		runes[i] = c.r
	}
	return string(runes)
}

// rebuild replaces the paragraph's runs from a cell stream, grouping
// consecutive characters that share a format into one run. Characters
// therefore keep exactly the formatting they carried in the stream; only
// run boundaries move.
func rebuild(p *doctree.Paragraph, cells []cell) {
	var runs []doctree.Node
	var buf []rune
	var cur doctree.RunFormat

	flush := func() {
		if len(buf) > 0 {
			runs = append(runs, doctree.NewRun(string(buf), cur))
			buf = nil
		}
	}

	for _, c := range cells {
		if c.raw != "" {
			flush()
			runs = append(runs, &doctree.Run{Format: c.fmt, RawXML: c.raw})
			continue
		}
		if len(buf) > 0 && !cur.Equal(c.fmt) {
			flush()
		}
		if len(buf) == 0 {
			cur = c.fmt
		}
		buf = append(buf, c.r)
	}
	flush()
	p.ReplaceChildren(runs)
}

func spliceCells(cells []cell, start, end int, rep []cell) []cell {
	out := make([]cell, 0, len(cells)-(end-start)+len(rep))
	out = append(out, cells[:start]...)
	out = append(out, rep...)
	out = append(out, cells[end:]...)
	return out
}

// visitParagraph expands inline conditionals and placeholders inside one
// paragraph. Paragraphs without template tokens are left byte-identical.
func (p *Processor) visitParagraph(para *doctree.Paragraph, ctx evalctx.Context) error {
	if !strings.Contains(para.Text(), "{{") {
		return nil
	}

	cells := flatten(para)

	cells, condChanged, err := p.resolveInlineConditionals(cells, ctx)
	if err != nil {
		return err
	}
	cells, phChanged, err := p.resolvePlaceholders(cells, ctx)
	if err != nil {
		return err
	}

	if condChanged || phChanged {
		rebuild(para, cells)
	}
	return nil
}

// resolveInlineConditionals handles {{#if}}…{{/if}} spans that live
// entirely within the paragraph. Top-level spans are resolved right to
// left so earlier offsets stay valid; each winning branch's cells are
// recursively resolved for nested inline conditionals before splicing.
// Every character of the result keeps the format it had at its original
// position, which is what preserves tab runs and mixed styling across
// the reassembled text.
func (p *Processor) resolveInlineConditionals(cells []cell, ctx evalctx.Context) ([]cell, bool, error) {
	spans := detect.InlineConditionals(cellsText(cells))
	if len(spans) == 0 {
		return cells, false, nil
	}

	for k := len(spans) - 1; k >= 0; k-- {
		sp := spans[k]

		winner := -1
		for bi, br := range sp.Branches {
			if br.IsElse {
				winner = bi
				break
			}
			e, err := expr.Parse(br.ConditionText)
			if err != nil {
				return nil, false, err
			}
			ok, err := e.EvalBool(ctx)
			if err != nil {
				return nil, false, err
			}
			if ok {
				winner = bi
				break
			}
		}

		var rep []cell
		if winner >= 0 {
			br := sp.Branches[winner]
			body := append([]cell(nil), cells[br.ContentStart:br.ContentEnd]...)
			resolved, _, err := p.resolveInlineConditionals(body, ctx)
			if err != nil {
				return nil, false, err
			}
			rep = resolved
		}
		cells = spliceCells(cells, sp.Start, sp.End, rep)
	}
	return cells, true, nil
}

// resolvePlaceholders substitutes every {{VAR[:FMT]}} in the cell stream,
// right to left. The replacement inherits the format of the first
// character of the match, merged with any markdown emphasis the formatted
// value carries; a raw-XML result becomes a single object cell.
func (p *Processor) resolvePlaceholders(cells []cell, ctx evalctx.Context) ([]cell, bool, error) {
	matches := detect.Placeholders(cellsText(cells))
	if len(matches) == 0 {
		return cells, false, nil
	}

	changed := false
	for k := len(matches) - 1; k >= 0; k-- {
		m := matches[k]
		inherited := cells[m.Start].fmt

		out, handled, err := p.resolveMatch(m, ctx, inherited)
		if err != nil {
			return nil, false, err
		}
		if !handled {
			continue
		}
		cells = spliceCells(cells, m.Start, m.Start+m.Length, renderCells(out, inherited))
		p.Replacements++
		changed = true
	}
	return cells, changed, nil
}

// resolveMatch resolves one placeholder to formatted output. handled is
// false when the missing-variable behavior says to leave the literal
// token in place.
func (p *Processor) resolveMatch(m detect.PlaceholderMatch, ctx evalctx.Context, inherited doctree.RunFormat) (format.Output, bool, error) {
	var v value.Value

	if strings.HasPrefix(m.VarText, "(") {
		e, err := expr.Parse(m.VarText)
		if err != nil {
			return format.Output{}, false, err
		}
		res, err := e.Eval(ctx)
		if err != nil {
			return format.Output{}, false, err
		}
		v = res
	} else {
		res, ok := ctx.Resolve(value.ParsePath(m.VarText))
		if !ok {
			p.noteMissing(m.VarText)
			switch p.Behavior {
			case Throw:
				return format.Output{}, false, &MissingVariableError{Name: m.VarText}
			case ReplaceWithEmpty:
				return format.Output{}, true, nil
			default:
				return format.Output{}, false, nil
			}
		}
		v = res
	}

	out, err := format.Format(v, format.ParseSpecifier(m.SpecText), p.Formats, p.formatContext(inherited))
	if err != nil {
		return format.Output{}, false, err
	}
	return out, true, nil
}

// renderCells expands formatted output into cells carrying the inherited
// run format merged with each segment's markdown emphasis.
func renderCells(out format.Output, inherited doctree.RunFormat) []cell {
	if out.RawXML != "" {
		return []cell{{r: objectRune, fmt: inherited, raw: out.RawXML}}
	}
	var cells []cell
	for _, seg := range out.Segments {
		f := inherited.Merge(doctree.RunFormat{Bold: seg.Bold, Italic: seg.Italic, Strike: seg.Strike})
		for _, ch := range seg.Text {
			cells = append(cells, cell{r: ch, fmt: f})
		}
	}
	return cells
}
