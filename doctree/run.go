package doctree

// RunFormat is an opaque bag of character-level formatting: the engine
// never interprets it, only copies and merges. Field coverage follows the
// w:rPr children real Word documents carry (bold/italic/strike/underline/
// highlight/color/size/fonts/shading).
type RunFormat struct {
	Bold      bool
	Italic    bool
	Strike    bool
	Underline string // w:u val, e.g. "single"; "" means none
	Highlight string // w:highlight val
	Color     string // w:color val, hex RGB
	Size      string // w:sz val, half-points
	FontAscii string // w:rFonts ascii
	Shading   string // w:shd fill
	VertAlign string // w:vertAlign val (superscript/subscript)

	// RawExtra preserves any rPr children this model doesn't name, so a
	// round trip through a static template (no placeholders) is lossless
	// even for formatting the engine doesn't otherwise understand.
	RawExtra string
}

// Clone returns a structural copy. RunFormat is a plain value type, so a
// shallow Go copy suffices.
func (f RunFormat) Clone() RunFormat { return f }

// Equal reports structural equality: two RunFormats are equal iff every
// field matches.
func (f RunFormat) Equal(o RunFormat) bool {
	return f.Bold == o.Bold && f.Italic == o.Italic && f.Strike == o.Strike &&
		f.Underline == o.Underline && f.Highlight == o.Highlight &&
		f.Color == o.Color && f.Size == o.Size && f.FontAscii == o.FontAscii &&
		f.Shading == o.Shading && f.VertAlign == o.VertAlign && f.RawExtra == o.RawExtra
}

// Merge combines two formats such that a boolean attribute is set if
// either source asserts it. Non-boolean fields prefer the receiver's
// value, falling back to the other's when the receiver's is empty.
func (f RunFormat) Merge(o RunFormat) RunFormat {
	out := f
	out.Bold = f.Bold || o.Bold
	out.Italic = f.Italic || o.Italic
	out.Strike = f.Strike || o.Strike
	if out.Underline == "" {
		out.Underline = o.Underline
	}
	if out.Highlight == "" {
		out.Highlight = o.Highlight
	}
	if out.Color == "" {
		out.Color = o.Color
	}
	if out.Size == "" {
		out.Size = o.Size
	}
	if out.FontAscii == "" {
		out.FontAscii = o.FontAscii
	}
	if out.Shading == "" {
		out.Shading = o.Shading
	}
	if out.VertAlign == "" {
		out.VertAlign = o.VertAlign
	}
	return out
}

// Run is a run of text sharing one RunFormat. Text uses "\t" and "\n" to
// stand in for <w:tab/> and <w:br/> respectively while the tree is in
// memory; Serialize unwraps them again.
//
// RawXML, when non-empty, is rich inline content (a qrcode/barcode drawing
// fragment, say) that replaces Text verbatim on serialization instead of
// being escaped.
type Run struct {
	base
	Format RunFormat
	Text   string
	RawXML string
}

// NewRun builds a detached Run node.
func NewRun(text string, format RunFormat) *Run {
	return &Run{Format: format, Text: text}
}

func (r *Run) Clone() Node {
	return &Run{Format: r.Format.Clone(), Text: r.Text, RawXML: r.RawXML}
}

func (r *Run) Detach()          { detachFrom(r.parent, r); r.parent = nil }
func (r *Run) Remove()          { r.Detach() }
func (r *Run) InsertBefore(n Node) { insertRelative(r, n, false) }
func (r *Run) InsertAfter(n Node)  { insertRelative(r, n, true) }
func (r *Run) SetText(s string) {
	r.Text = s
	r.RawXML = ""
}
