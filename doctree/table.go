package doctree

// TableCell is a <w:tc>: a sequence of block-level children, each either
// a Paragraph or a nested Table.
type TableCell struct {
	base
	Blocks []Node
	TcPr   string // raw <w:tcPr>, opaque
}

func (c *TableCell) children() []Node      { return c.Blocks }
func (c *TableCell) setChildren(n []Node)  { c.Blocks = n }
func (c *TableCell) ReplaceChildren(n []Node) {
	c.Blocks = n
	for _, b := range n {
		b.setParent(c)
	}
}

func (c *TableCell) Clone() Node {
	clone := &TableCell{TcPr: c.TcPr}
	clone.Blocks = make([]Node, len(c.Blocks))
	for i, b := range c.Blocks {
		bc := b.Clone()
		bc.setParent(clone)
		clone.Blocks[i] = bc
	}
	return clone
}

func (c *TableCell) Detach()            { detachFrom(c.parent, c); c.parent = nil }
func (c *TableCell) Remove()            { c.Detach() }
func (c *TableCell) InsertBefore(n Node) { insertRelative(c, n, false) }
func (c *TableCell) InsertAfter(n Node)  { insertRelative(c, n, true) }
func (c *TableCell) SetText(s string) {
	p := &Paragraph{}
	p.SetText(s)
	p.setParent(c)
	c.Blocks = []Node{p}
}

// Text concatenates the text of every paragraph this cell (directly)
// contains — used by the table-row-form detectors to sniff "this cell's
// visible text is exactly {{#foreach NAME}}".
func (c *TableCell) Text() string {
	var out string
	for _, b := range c.Blocks {
		if p, ok := b.(*Paragraph); ok {
			out += p.Text()
		}
	}
	return out
}

// TableRow is a <w:tr>: an ordered list of cells.
type TableRow struct {
	base
	Cells []*TableCell
	TrPr  string // raw <w:trPr>, opaque
}

func (r *TableRow) children() []Node {
	out := make([]Node, len(r.Cells))
	for i, c := range r.Cells {
		out[i] = c
	}
	return out
}

func (r *TableRow) setChildren(nodes []Node) {
	cells := make([]*TableCell, 0, len(nodes))
	for _, n := range nodes {
		if c, ok := n.(*TableCell); ok {
			cells = append(cells, c)
		}
	}
	r.Cells = cells
}

func (r *TableRow) ReplaceChildren(nodes []Node) {
	r.setChildren(nodes)
	for _, c := range r.Cells {
		c.setParent(r)
	}
}

func (r *TableRow) Clone() Node {
	clone := &TableRow{TrPr: r.TrPr}
	clone.Cells = make([]*TableCell, len(r.Cells))
	for i, c := range r.Cells {
		cc := c.Clone().(*TableCell)
		cc.setParent(clone)
		clone.Cells[i] = cc
	}
	return clone
}

func (r *TableRow) Detach()            { detachFrom(r.parent, r); r.parent = nil }
func (r *TableRow) Remove()            { r.Detach() }
func (r *TableRow) InsertBefore(n Node) { insertRelative(r, n, false) }
func (r *TableRow) InsertAfter(n Node)  { insertRelative(r, n, true) }
func (r *TableRow) SetText(s string) {
	if len(r.Cells) > 0 {
		r.Cells[0].SetText(s)
	}
}

// Text concatenates the text of every cell in the row.
func (r *TableRow) Text() string {
	var out string
	for _, c := range r.Cells {
		out += c.Text()
	}
	return out
}

// Table is a <w:tbl>: an ordered list of rows.
type Table struct {
	base
	Rows []*TableRow
	TblPr string // raw <w:tblPr>/<w:tblGrid>, opaque
}

func (t *Table) children() []Node {
	out := make([]Node, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r
	}
	return out
}

func (t *Table) setChildren(nodes []Node) {
	rows := make([]*TableRow, 0, len(nodes))
	for _, n := range nodes {
		if r, ok := n.(*TableRow); ok {
			rows = append(rows, r)
		}
	}
	t.Rows = rows
}

func (t *Table) ReplaceChildren(nodes []Node) {
	t.setChildren(nodes)
	for _, r := range t.Rows {
		r.setParent(t)
	}
}

func (t *Table) Clone() Node {
	clone := &Table{TblPr: t.TblPr}
	clone.Rows = make([]*TableRow, len(t.Rows))
	for i, r := range t.Rows {
		rc := r.Clone().(*TableRow)
		rc.setParent(clone)
		clone.Rows[i] = rc
	}
	return clone
}

func (t *Table) Detach()            { detachFrom(t.parent, t); t.parent = nil }
func (t *Table) Remove()            { t.Detach() }
func (t *Table) InsertBefore(n Node) { insertRelative(t, n, false) }
func (t *Table) InsertAfter(n Node)  { insertRelative(t, n, true) }
func (t *Table) SetText(s string) {
	if len(t.Rows) > 0 {
		t.Rows[0].SetText(s)
	}
}
