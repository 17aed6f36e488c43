package docxtpl

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"

	"docxtpl/doctree"
)

// maxIncludeDepth bounds include chains so two files including each other
// cannot recurse forever.
const maxIncludeDepth = 8

var reInclude = regexp.MustCompile(
	`^\{\{#include\s+"([^"]+)"(?:\s+(body|table|p|paragraph)(?:\s+([0-9]+))?)?\s*\}\}$`)

// includeSpec describes one {{#include "file.docx" [fragment [n]]}}
// directive: which file, and whether to pull its whole body, its n-th
// table, or its n-th paragraph.
type includeSpec struct {
	File     string
	Fragment string
	Index    int
}

func parseIncludeTag(text string) (includeSpec, bool) {
	m := reInclude.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return includeSpec{}, false
	}
	spec := includeSpec{File: m[1], Fragment: "body", Index: 1}
	switch m[2] {
	case "table":
		spec.Fragment = "table"
	case "p", "paragraph":
		spec.Fragment = "p"
	}
	if m[3] != "" {
		n, err := strconv.Atoi(m[3])
		if err == nil && n > 0 {
			spec.Index = n
		}
	}
	return spec, true
}

// resolveIncludes splices the bodies of included documents in place of
// their marker paragraphs, before the template walk runs. A directive
// that cannot be satisfied (missing file, path escaping the template's
// directory, byte-sourced document with no directory) is dropped rather
// than failing the whole document — matching how an unresolvable block
// marker degrades to nothing visible.
func (d *Docx) resolveIncludes(doc *doctree.Document, depth int) {
	if depth > maxIncludeDepth {
		return
	}
	for _, n := range doc.Children() {
		p, ok := n.(*doctree.Paragraph)
		if !ok {
			continue
		}
		spec, ok := parseIncludeTag(p.Text())
		if !ok {
			continue
		}
		blocks, err := d.loadFragment(spec, depth)
		if err != nil {
			p.Detach()
			continue
		}
		for _, b := range blocks {
			p.InsertBefore(b)
		}
		p.Detach()
	}
}

func (d *Docx) loadFragment(spec includeSpec, depth int) ([]doctree.Node, error) {
	child, err := d.openFragmentDoc(spec.File)
	if err != nil {
		return nil, err
	}
	tree, _, _, err := child.bodyTree()
	if err != nil {
		return nil, err
	}
	child.resolveIncludes(tree, depth+1)

	switch spec.Fragment {
	case "table":
		nth := 0
		for _, b := range tree.Children() {
			if t, ok := b.(*doctree.Table); ok {
				nth++
				if nth == spec.Index {
					t.Detach()
					return []doctree.Node{t}, nil
				}
			}
		}
		return nil, fmt.Errorf("include: table %d not found", spec.Index)
	case "p":
		nth := 0
		for _, b := range tree.Children() {
			if p, ok := b.(*doctree.Paragraph); ok {
				nth++
				if nth == spec.Index {
					p.Detach()
					return []doctree.Node{p}, nil
				}
			}
		}
		return nil, fmt.Errorf("include: paragraph %d not found", spec.Index)
	default:
		blocks := tree.Children()
		for _, b := range blocks {
			b.Detach()
		}
		return blocks, nil
	}
}

// openFragmentDoc opens an included file relative to the template's own
// directory, with the joined path confined to that directory.
func (d *Docx) openFragmentDoc(rel string) (*Docx, error) {
	if d.sourcePath == "" {
		return nil, fmt.Errorf("include: no base directory")
	}
	ext := strings.ToLower(filepath.Ext(rel))
	if ext != ".docx" && ext != ".dotx" {
		return nil, fmt.Errorf("unsupported include extension: %s", rel)
	}
	base := filepath.Dir(d.sourcePath)
	full, err := securejoin.SecureJoin(base, rel)
	if err != nil {
		return nil, fmt.Errorf("forbidden include path: %w", err)
	}
	if _, err := os.Stat(full); err != nil {
		return nil, err
	}
	return Open(full)
}
