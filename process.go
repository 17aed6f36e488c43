package docxtpl

import (
	"fmt"
	"sort"
	"strings"

	"docxtpl/culture"
	"docxtpl/doctree"
	"docxtpl/evalctx"
	"docxtpl/format"
	"docxtpl/value"
	"docxtpl/visit"
)

// ExecuteTemplate expands every template construct in word/document.xml
// against data, under the options captured by SetOptions. On success the
// document part is replaced with the expanded tree; on a fatal error the
// document is left untouched and the error is classified in the result.
func (d *Docx) ExecuteTemplate(data map[string]any) (Result, error) {
	tree, prefix, suffix, err := d.bodyTree()
	if err != nil {
		res := Result{Error: &EngineError{Kind: ErrMalformedTemplate, Message: err.Error()}}
		return res, fmt.Errorf("execute template: %w", err)
	}

	d.resolveIncludes(tree, 0)

	proc := visit.NewProcessor()
	proc.Behavior = d.opts.MissingVariables
	proc.Locale = culture.Lookup(d.opts.Culture)
	if d.opts.Booleans != nil {
		proc.Booleans = d.opts.Booleans
	}
	proc.Formats = d.boundFormats()
	proc.Fonts = d.fonts

	ctx := evalctx.NewGlobal(value.FromGo(data))
	procErr := proc.Process(tree, ctx)

	missing := proc.MissingNames()
	sort.Strings(missing)
	res := Result{
		ReplacementCount: proc.Replacements,
		MissingVariables: missing,
	}
	if procErr != nil {
		res.Error = classify(procErr)
		return res, fmt.Errorf("execute template: %w", procErr)
	}

	res.Success = true
	d.UpdateContentPart("document", prefix+doctree.Serialize(tree)+suffix)
	return res, nil
}

// boundFormats returns the specifier registry for this run with the
// drawing specifiers bound to this document, since a generated image has
// to land in this document's media pool and relationships.
func (d *Docx) boundFormats() *format.Registry {
	var reg *format.Registry
	if d.opts.Formats != nil {
		reg = d.opts.Formats.Clone()
	} else {
		reg = format.NewRegistry()
	}

	reg.Register("qrcode", func(v value.Value, args []string, fc *format.Context) (format.Output, error) {
		return format.Output{RawXML: d.QrCode(format.DisplayText(v, fc), args...)}, nil
	})
	reg.Register("barcode", func(v value.Value, args []string, fc *format.Context) (format.Output, error) {
		return format.Output{RawXML: d.Barcode(format.DisplayText(v, fc), args...)}, nil
	})
	return reg
}

// bodyTree parses the body of word/document.xml into a document tree
// after repairing split tokens. prefix and suffix hold the XML around the
// block sequence — the document element and namespaces in front, the
// section properties and closing tags behind — and are reattached
// verbatim on serialization.
func (d *Docx) bodyTree() (*doctree.Document, string, string, error) {
	content, err := d.ContentPart("document")
	if err != nil {
		return nil, "", "", err
	}
	content = RepairTemplateTags(content)

	prefix, inner, suffix, err := splitBody(content)
	if err != nil {
		return nil, "", "", err
	}

	tree, err := doctree.Parse(inner)
	if err != nil {
		return nil, "", "", err
	}
	return tree, prefix, suffix, nil
}

// splitBody cuts document.xml into the part before the first block node,
// the block sequence itself, and the trailing section properties plus
// everything after </w:body>.
func splitBody(content string) (prefix, inner, suffix string, err error) {
	open := strings.Index(content, "<w:body")
	if open < 0 {
		return "", "", "", fmt.Errorf("document body not found")
	}
	openEnd := strings.IndexByte(content[open:], '>')
	if openEnd < 0 {
		return "", "", "", fmt.Errorf("document body not found")
	}
	openEnd += open + 1

	close := strings.LastIndex(content, "</w:body>")
	if close < 0 || close < openEnd {
		return "", "", "", fmt.Errorf("document body not closed")
	}

	prefix = content[:openEnd]
	inner = content[openEnd:close]
	suffix = content[close:]

	// Section properties are not part of the block sequence; keep them
	// in the suffix so parsing doesn't have to model them.
	if si := strings.LastIndex(inner, "<w:sectPr"); si >= 0 {
		suffix = inner[si:] + suffix
		inner = inner[:si]
	}
	return prefix, inner, suffix, nil
}
