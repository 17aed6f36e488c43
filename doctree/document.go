package doctree

// Document is the root container: the <w:body> sequence of block-level
// nodes (Paragraph or Table). It has no parent and is never detached.
type Document struct {
	Blocks []Node
}

func (d *Document) children() []Node     { return d.Blocks }
func (d *Document) setChildren(n []Node) { d.Blocks = n }
func (d *Document) ReplaceChildren(n []Node) {
	d.Blocks = n
	for _, b := range n {
		b.setParent(d)
	}
}

// Parent, Siblings, Clone, Detach, Remove, InsertBefore/After, SetText,
// setParent exist only so *Document can participate as a container root;
// the walker never calls the node-identity operations on it directly.
func (d *Document) Parent() Node        { return nil }
func (d *Document) Siblings() []Node    { return nil }
func (d *Document) Detach()             {}
func (d *Document) Remove()             {}
func (d *Document) InsertBefore(Node)   {}
func (d *Document) InsertAfter(Node)    {}
func (d *Document) SetText(string)      {}
func (d *Document) setParent(Node)      {}

func (d *Document) Clone() Node {
	clone := &Document{Blocks: make([]Node, len(d.Blocks))}
	for i, b := range d.Blocks {
		bc := b.Clone()
		bc.setParent(clone)
		clone.Blocks[i] = bc
	}
	return clone
}
