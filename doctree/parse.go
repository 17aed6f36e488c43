package doctree

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Parse turns the raw <w:body>...</w:body> contents of word/document.xml
// into a Document tree. It is a streaming token walk (xml.Decoder.Token
// loop, switch on StartElement.Name.Local) rather than struct-tag
// unmarshaling, because formatting properties the engine never interprets
// (pPr, rPr internals, tblPr, trPr, tcPr) must be preserved byte-for-byte
// — the parser captures their raw source span via Decoder.InputOffset
// instead of re-modeling every possible child element.
func Parse(xmlBody string) (*Document, error) {
	src := []byte(xmlBody)
	dec := xml.NewDecoder(strings.NewReader(xmlBody))

	doc := &Document{}
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse document body: %w", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		node, err := parseBlock(dec, src, se)
		if err != nil {
			return nil, err
		}
		if node != nil {
			node.setParent(doc)
			doc.Blocks = append(doc.Blocks, node)
		}
	}
	return doc, nil
}

// rawSpan captures the exact source bytes of the element just opened by se
// (including its own start and end tags), by skipping over it and reading
// back the byte range the decoder walked.
func rawSpan(dec *xml.Decoder, src []byte, se xml.StartElement) (string, error) {
	start := dec.InputOffset()
	// InputOffset() after the StartElement token points just past '>' of
	// the opening tag; the opening tag itself runs from the last '<' before
	// that point, so it is copied from the source as written.
	open := ""
	if start >= 0 && start <= int64(len(src)) {
		if lt := bytes.LastIndexByte(src[:start], '<'); lt >= 0 {
			open = string(src[lt:start])
		}
	}
	if err := dec.Skip(); err != nil {
		return "", err
	}
	end := dec.InputOffset()
	inner := ""
	if start >= 0 && end <= int64(len(src)) && start <= end {
		inner = string(src[start:end])
	}
	// inner now holds everything from just after '>' of the opening tag
	// through the closing tag, inclusive.
	return open + inner, nil
}

func renderStart(se xml.StartElement) string {
	var b strings.Builder
	b.WriteString("<")
	b.WriteString(se.Name.Local)
	for _, a := range se.Attr {
		b.WriteString(" ")
		if a.Name.Space != "" {
			b.WriteString(a.Name.Space)
			b.WriteString(":")
		}
		b.WriteString(a.Name.Local)
		b.WriteString(`="`)
		b.WriteString(xmlEscapeAttr(a.Value))
		b.WriteString(`"`)
	}
	b.WriteString(">")
	return b.String()
}

func xmlEscapeAttr(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}

func parseBlock(dec *xml.Decoder, src []byte, se xml.StartElement) (Node, error) {
	switch se.Name.Local {
	case "p":
		return parseParagraph(dec, src, se)
	case "tbl":
		return parseTable(dec, src, se)
	default:
		return nil, dec.Skip()
	}
}

func parseParagraph(dec *xml.Decoder, src []byte, _ xml.StartElement) (*Paragraph, error) {
	p := &Paragraph{}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parse paragraph: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "pPr":
				raw, err := rawSpan(dec, src, t)
				if err != nil {
					return nil, err
				}
				p.PPr = raw
			case "r":
				run, err := parseRun(dec, src, t)
				if err != nil {
					return nil, err
				}
				run.setParent(p)
				p.Runs = append(p.Runs, run)
			default:
				if err := dec.Skip(); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			return p, nil
		}
	}
}

func parseRun(dec *xml.Decoder, src []byte, _ xml.StartElement) (*Run, error) {
	r := &Run{}
	var text strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parse run: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "rPr":
				if err := parseRunFormat(dec, src, &r.Format); err != nil {
					return nil, err
				}
			case "t":
				s, err := readCharData(dec)
				if err != nil {
					return nil, err
				}
				text.WriteString(s)
			case "tab":
				text.WriteString("\t")
				if err := dec.Skip(); err != nil {
					return nil, err
				}
			case "br":
				text.WriteString("\n")
				if err := dec.Skip(); err != nil {
					return nil, err
				}
			default:
				if err := dec.Skip(); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			r.Text = text.String()
			return r, nil
		}
	}
}

func readCharData(dec *xml.Decoder) (string, error) {
	var b strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.CharData:
			b.Write(t)
		case xml.EndElement:
			return b.String(), nil
		}
	}
}

func parseRunFormat(dec *xml.Decoder, src []byte, f *RunFormat) error {
	var extra strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "b":
				f.Bold = attrBoolVal(t.Attr, true)
				if err := dec.Skip(); err != nil {
					return err
				}
			case "i":
				f.Italic = attrBoolVal(t.Attr, true)
				if err := dec.Skip(); err != nil {
					return err
				}
			case "strike":
				f.Strike = attrBoolVal(t.Attr, true)
				if err := dec.Skip(); err != nil {
					return err
				}
			case "u":
				f.Underline = attrVal(t.Attr, "val")
				if err := dec.Skip(); err != nil {
					return err
				}
			case "highlight":
				f.Highlight = attrVal(t.Attr, "val")
				if err := dec.Skip(); err != nil {
					return err
				}
			case "color":
				f.Color = attrVal(t.Attr, "val")
				if err := dec.Skip(); err != nil {
					return err
				}
			case "sz":
				f.Size = attrVal(t.Attr, "val")
				if err := dec.Skip(); err != nil {
					return err
				}
			case "rFonts":
				f.FontAscii = attrVal(t.Attr, "ascii")
				if err := dec.Skip(); err != nil {
					return err
				}
			case "shd":
				f.Shading = attrVal(t.Attr, "fill")
				if err := dec.Skip(); err != nil {
					return err
				}
			case "vertAlign":
				f.VertAlign = attrVal(t.Attr, "val")
				if err := dec.Skip(); err != nil {
					return err
				}
			default:
				raw, err := rawSpan(dec, src, t)
				if err != nil {
					return err
				}
				extra.WriteString(raw)
			}
		case xml.EndElement:
			f.RawExtra = extra.String()
			return nil
		}
	}
}

func attrVal(attrs []xml.Attr, local string) string {
	for _, a := range attrs {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// attrBoolVal implements Word's w:val convention for boolean toggle
// properties: the element's mere presence means true unless w:val is
// explicitly "0"/"false".
func attrBoolVal(attrs []xml.Attr, defaultTrue bool) bool {
	v := attrVal(attrs, "val")
	if v == "" {
		return defaultTrue
	}
	return v != "0" && v != "false"
}

func parseTable(dec *xml.Decoder, src []byte, _ xml.StartElement) (*Table, error) {
	t := &Table{}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parse table: %w", err)
		}
		switch tt := tok.(type) {
		case xml.StartElement:
			switch tt.Name.Local {
			case "tblPr", "tblGrid":
				raw, err := rawSpan(dec, src, tt)
				if err != nil {
					return nil, err
				}
				t.TblPr += raw
			case "tr":
				row, err := parseRow(dec, src, tt)
				if err != nil {
					return nil, err
				}
				row.setParent(t)
				t.Rows = append(t.Rows, row)
			default:
				if err := dec.Skip(); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			return t, nil
		}
	}
}

func parseRow(dec *xml.Decoder, src []byte, _ xml.StartElement) (*TableRow, error) {
	row := &TableRow{}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parse table row: %w", err)
		}
		switch tt := tok.(type) {
		case xml.StartElement:
			switch tt.Name.Local {
			case "trPr":
				raw, err := rawSpan(dec, src, tt)
				if err != nil {
					return nil, err
				}
				row.TrPr = raw
			case "tc":
				cell, err := parseCell(dec, src, tt)
				if err != nil {
					return nil, err
				}
				cell.setParent(row)
				row.Cells = append(row.Cells, cell)
			default:
				if err := dec.Skip(); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			return row, nil
		}
	}
}

func parseCell(dec *xml.Decoder, src []byte, _ xml.StartElement) (*TableCell, error) {
	cell := &TableCell{}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parse table cell: %w", err)
		}
		switch tt := tok.(type) {
		case xml.StartElement:
			switch tt.Name.Local {
			case "tcPr":
				raw, err := rawSpan(dec, src, tt)
				if err != nil {
					return nil, err
				}
				cell.TcPr = raw
			case "p":
				p, err := parseParagraph(dec, src, tt)
				if err != nil {
					return nil, err
				}
				p.setParent(cell)
				cell.Blocks = append(cell.Blocks, p)
			case "tbl":
				nested, err := parseTable(dec, src, tt)
				if err != nil {
					return nil, err
				}
				nested.setParent(cell)
				cell.Blocks = append(cell.Blocks, nested)
			default:
				if err := dec.Skip(); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			return cell, nil
		}
	}
}
