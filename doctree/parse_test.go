package doctree

import (
	"strings"
	"testing"
)

func normalizeXML(s string) string {
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", "")
	return s
}

func TestParseSerializeRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{
			name: "plain paragraph",
			in:   `<w:p><w:r><w:t xml:space="preserve">hello</w:t></w:r></w:p>`,
		},
		{
			name: "bold run with properties preserved",
			in:   `<w:p><w:pPr><w:jc w:val="center"/></w:pPr><w:r><w:rPr><w:b/><w:color w:val="FF0000"/></w:rPr><w:t xml:space="preserve">hi</w:t></w:r></w:p>`,
		},
		{
			name: "tab and break round-trip",
			in:   `<w:p><w:r><w:t xml:space="preserve">a</w:t><w:tab/><w:t xml:space="preserve">b</w:t><w:br/><w:t xml:space="preserve">c</w:t></w:r></w:p>`,
		},
		{
			name: "table with cell properties",
			in:   `<w:tbl><w:tblPr><w:tblW w:w="0" w:type="auto"/></w:tblPr><w:tr><w:trPr/><w:tc><w:tcPr><w:tcW w:w="0" w:type="auto"/></w:tcPr><w:p><w:r><w:t xml:space="preserve">cell</w:t></w:r></w:p></w:tc></w:tr></w:tbl>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			got := Serialize(doc)
			if normalizeXML(got) != normalizeXML(tt.in) {
				t.Errorf("round trip mismatch:\n got: %s\nwant: %s", got, tt.in)
			}
		})
	}
}

func TestParseRunFormatFields(t *testing.T) {
	in := `<w:p><w:r><w:rPr><w:b/><w:i/><w:strike/><w:u w:val="single"/><w:sz w:val="24"/></w:rPr><w:t>x</w:t></w:r></w:p>`
	doc, err := Parse(in)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	p := doc.Blocks[0].(*Paragraph)
	f := p.Runs[0].Format
	if !f.Bold || !f.Italic || !f.Strike || f.Underline != "single" || f.Size != "24" {
		t.Errorf("unexpected format: %+v", f)
	}
}

func TestParseNestedTableInCell(t *testing.T) {
	in := `<w:tbl><w:tr><w:tc><w:p><w:r><w:t>outer</w:t></w:r></w:p><w:tbl><w:tr><w:tc><w:p><w:r><w:t>inner</w:t></w:r></w:p></w:tc></w:tr></w:tbl></w:tc></w:tr></w:tbl>`
	doc, err := Parse(in)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	outer := doc.Blocks[0].(*Table)
	cell := outer.Rows[0].Cells[0]
	if len(cell.Blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(cell.Blocks))
	}
	if _, ok := cell.Blocks[1].(*Table); !ok {
		t.Errorf("expected second block to be a nested table, got %T", cell.Blocks[1])
	}
}
