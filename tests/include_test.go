package tests

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"docxtpl"
)

func writeDocx(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, buildDocx(t, body), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestIncludeDirective(t *testing.T) {
	dir := t.TempDir()
	writeDocx(t, filepath.Join(dir, "fragment.docx"),
		paraXML("included clause about {{Subject}}"))
	writeDocx(t, filepath.Join(dir, "main.docx"),
		paraXML("before")+
			paraXML(`{{#include "fragment.docx"}}`)+
			paraXML("after"))

	d, err := docxtpl.Open(filepath.Join(dir, "main.docx"))
	if err != nil {
		t.Fatal(err)
	}
	res, err := d.ExecuteTemplate(map[string]any{"Subject": "payments"})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Success {
		t.Fatalf("result = %+v", res)
	}

	out, err := d.ContentPart("document")
	if err != nil {
		t.Fatal(err)
	}
	// The included body is spliced in place and its placeholders are
	// expanded with the same data bundle.
	if !strings.Contains(out, "included clause about payments") {
		t.Errorf("include content missing: %s", out)
	}
	if strings.Contains(out, "#include") {
		t.Error("include marker left in output")
	}
	before := strings.Index(out, "before")
	mid := strings.Index(out, "included clause")
	after := strings.Index(out, "after")
	if !(before < mid && mid < after) {
		t.Errorf("include order wrong: %d %d %d", before, mid, after)
	}
}

func TestIncludeFragmentSelection(t *testing.T) {
	dir := t.TempDir()
	writeDocx(t, filepath.Join(dir, "frag.docx"),
		paraXML("first paragraph")+paraXML("second paragraph"))
	writeDocx(t, filepath.Join(dir, "main.docx"),
		paraXML(`{{#include "frag.docx" p 2}}`))

	d, err := docxtpl.Open(filepath.Join(dir, "main.docx"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := d.ExecuteTemplate(map[string]any{}); err != nil {
		t.Fatal(err)
	}
	out, _ := d.ContentPart("document")
	if strings.Contains(out, "first paragraph") || !strings.Contains(out, "second paragraph") {
		t.Errorf("fragment selection wrong: %s", out)
	}
}

func TestIncludeMissingFileIsDropped(t *testing.T) {
	dir := t.TempDir()
	writeDocx(t, filepath.Join(dir, "main.docx"),
		paraXML("kept")+paraXML(`{{#include "nope.docx"}}`))

	d, err := docxtpl.Open(filepath.Join(dir, "main.docx"))
	if err != nil {
		t.Fatal(err)
	}
	res, err := d.ExecuteTemplate(map[string]any{})
	if err != nil {
		t.Fatalf("missing include should not fail processing: %v", err)
	}
	if !res.Success {
		t.Fatalf("result = %+v", res)
	}
	out, _ := d.ContentPart("document")
	if !strings.Contains(out, "kept") || strings.Contains(out, "#include") {
		t.Errorf("output = %s", out)
	}
}

func TestIncludeEscapingPathIsRejected(t *testing.T) {
	dir := t.TempDir()
	outside := filepath.Join(dir, "outside")
	if err := os.MkdirAll(filepath.Join(dir, "tpl"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(outside, 0755); err != nil {
		t.Fatal(err)
	}
	writeDocx(t, filepath.Join(outside, "secret.docx"), paraXML("secret"))
	writeDocx(t, filepath.Join(dir, "tpl", "main.docx"),
		paraXML(`{{#include "../outside/secret.docx"}}`))

	d, err := docxtpl.Open(filepath.Join(dir, "tpl", "main.docx"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := d.ExecuteTemplate(map[string]any{}); err != nil {
		t.Fatal(err)
	}
	out, _ := d.ContentPart("document")
	if strings.Contains(out, "secret") {
		t.Error("path traversal escaped the template directory")
	}
}
