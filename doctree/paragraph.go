package doctree

// Paragraph is a <w:p>: an ordered list of Runs sharing one opaque
// paragraph-properties blob (alignment, numbering, spacing — the engine
// never interprets pPr, only copies it, same posture as RunFormat).
type Paragraph struct {
	base
	Runs []*Run
	PPr  string // raw <w:pPr>...</w:pPr>, empty if absent
}

// NewParagraph builds a detached Paragraph with the given runs.
func NewParagraph(runs ...*Run) *Paragraph {
	p := &Paragraph{Runs: runs}
	for _, r := range runs {
		r.setParent(p)
	}
	return p
}

// Text concatenates every run's text, giving the position-tagged buffer
// the inline detectors scan over.
func (p *Paragraph) Text() string {
	var out []byte
	for _, r := range p.Runs {
		out = append(out, r.Text...)
	}
	return string(out)
}

func (p *Paragraph) children() []Node {
	out := make([]Node, len(p.Runs))
	for i, r := range p.Runs {
		out[i] = r
	}
	return out
}

func (p *Paragraph) setChildren(nodes []Node) {
	runs := make([]*Run, 0, len(nodes))
	for _, n := range nodes {
		if r, ok := n.(*Run); ok {
			runs = append(runs, r)
		}
	}
	p.Runs = runs
}

// ReplaceChildren replaces the paragraph's runs with the given nodes,
// which must all be *Run (the only child type a Paragraph holds). This is
// how the placeholder visitor splices a multi-run markdown expansion back
// into a paragraph.
func (p *Paragraph) ReplaceChildren(nodes []Node) {
	p.setChildren(nodes)
	for _, r := range p.Runs {
		r.setParent(p)
	}
}

func (p *Paragraph) Clone() Node {
	clone := &Paragraph{PPr: p.PPr}
	clone.Runs = make([]*Run, len(p.Runs))
	for i, r := range p.Runs {
		rc := r.Clone().(*Run)
		rc.setParent(clone)
		clone.Runs[i] = rc
	}
	return clone
}

func (p *Paragraph) Detach()           { detachFrom(p.parent, p); p.parent = nil }
func (p *Paragraph) Remove()           { p.Detach() }
func (p *Paragraph) InsertBefore(n Node) { insertRelative(p, n, false) }
func (p *Paragraph) InsertAfter(n Node)  { insertRelative(p, n, true) }

// SetText collapses the paragraph to a single run carrying s, inheriting
// the first existing run's formatting (or a zero RunFormat for an empty
// paragraph).
func (p *Paragraph) SetText(s string) {
	var format RunFormat
	if len(p.Runs) > 0 {
		format = p.Runs[0].Format
	}
	run := &Run{Format: format, Text: s}
	run.setParent(p)
	p.Runs = []*Run{run}
}
