package doctree

import (
	"strings"
)

// Serialize renders a Document back to the <w:body> contents of
// word/document.xml. It is the inverse of Parse: opaque property blobs
// (PPr/TrPr/TcPr/TblPr) are emitted verbatim, RunFormat is turned back
// into an <w:rPr>, and the "\t"/"\n" stand-ins Parse introduced are
// unwrapped back into <w:tab/> and <w:br/> elements.
func Serialize(doc *Document) string {
	var b strings.Builder
	for _, n := range doc.Blocks {
		writeBlock(&b, n)
	}
	return b.String()
}

func writeBlock(b *strings.Builder, n Node) {
	switch v := n.(type) {
	case *Paragraph:
		writeParagraph(b, v)
	case *Table:
		writeTable(b, v)
	}
}

func writeParagraph(b *strings.Builder, p *Paragraph) {
	b.WriteString("<w:p>")
	b.WriteString(p.PPr)
	for _, r := range p.Runs {
		writeRun(b, r)
	}
	b.WriteString("</w:p>")
}

func writeRun(b *strings.Builder, r *Run) {
	b.WriteString("<w:r>")
	writeRunFormat(b, r.Format)
	if r.RawXML != "" {
		b.WriteString(r.RawXML)
	} else {
		writeRunText(b, r.Text)
	}
	b.WriteString("</w:r>")
}

// writeRunText unwraps the "\t"/"\n" stand-ins into <w:tab/>/<w:br/>,
// splitting plain text into one or more <w:t xml:space="preserve"> runs
// so interior whitespace survives round-tripping through Word.
func writeRunText(b *strings.Builder, text string) {
	var buf strings.Builder
	flush := func() {
		if buf.Len() == 0 {
			return
		}
		b.WriteString(`<w:t xml:space="preserve">`)
		b.WriteString(xmlEscapeText(buf.String()))
		b.WriteString("</w:t>")
		buf.Reset()
	}
	for _, r := range text {
		switch r {
		case '\t':
			flush()
			b.WriteString("<w:tab/>")
		case '\n':
			flush()
			b.WriteString("<w:br/>")
		default:
			buf.WriteRune(r)
		}
	}
	flush()
}

func xmlEscapeText(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}

func writeRunFormat(b *strings.Builder, f RunFormat) {
	if !hasAnyFormat(f) {
		return
	}
	b.WriteString("<w:rPr>")
	if f.FontAscii != "" {
		b.WriteString(`<w:rFonts w:ascii="`)
		b.WriteString(xmlEscapeAttr(f.FontAscii))
		b.WriteString(`"/>`)
	}
	if f.Bold {
		b.WriteString("<w:b/>")
	}
	if f.Italic {
		b.WriteString("<w:i/>")
	}
	if f.Strike {
		b.WriteString("<w:strike/>")
	}
	if f.Underline != "" {
		b.WriteString(`<w:u w:val="`)
		b.WriteString(xmlEscapeAttr(f.Underline))
		b.WriteString(`"/>`)
	}
	if f.Color != "" {
		b.WriteString(`<w:color w:val="`)
		b.WriteString(xmlEscapeAttr(f.Color))
		b.WriteString(`"/>`)
	}
	if f.Size != "" {
		b.WriteString(`<w:sz w:val="`)
		b.WriteString(xmlEscapeAttr(f.Size))
		b.WriteString(`"/>`)
	}
	if f.Highlight != "" {
		b.WriteString(`<w:highlight w:val="`)
		b.WriteString(xmlEscapeAttr(f.Highlight))
		b.WriteString(`"/>`)
	}
	if f.Shading != "" {
		b.WriteString(`<w:shd w:fill="`)
		b.WriteString(xmlEscapeAttr(f.Shading))
		b.WriteString(`"/>`)
	}
	if f.VertAlign != "" {
		b.WriteString(`<w:vertAlign w:val="`)
		b.WriteString(xmlEscapeAttr(f.VertAlign))
		b.WriteString(`"/>`)
	}
	b.WriteString(f.RawExtra)
	b.WriteString("</w:rPr>")
}

func hasAnyFormat(f RunFormat) bool {
	return f.Bold || f.Italic || f.Strike || f.Underline != "" || f.Highlight != "" ||
		f.Color != "" || f.Size != "" || f.FontAscii != "" || f.Shading != "" ||
		f.VertAlign != "" || f.RawExtra != ""
}

func writeTable(b *strings.Builder, t *Table) {
	b.WriteString("<w:tbl>")
	b.WriteString(t.TblPr)
	for _, row := range t.Rows {
		writeRow(b, row)
	}
	b.WriteString("</w:tbl>")
}

func writeRow(b *strings.Builder, row *TableRow) {
	b.WriteString("<w:tr>")
	b.WriteString(row.TrPr)
	for _, c := range row.Cells {
		writeCell(b, c)
	}
	b.WriteString("</w:tr>")
}

func writeCell(b *strings.Builder, c *TableCell) {
	b.WriteString("<w:tc>")
	b.WriteString(c.TcPr)
	for _, blk := range c.Blocks {
		writeBlock(b, blk)
	}
	b.WriteString("</w:tc>")
}
