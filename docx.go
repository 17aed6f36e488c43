// Package docxtpl renders Word document templates: placeholders,
// conditional blocks and loops written as {{...}} tokens inside a .docx
// file are expanded against a data bundle while every piece of original
// formatting is preserved.
package docxtpl

import (
	"archive/zip"
	"bytes"
	"crypto/sha1"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"docxtpl/metrics"
)

// Docx is an unpacked DOCX document: every file of the archive held in
// memory, plus the media attachments generated while executing the
// template. An instance may be reused for sequential ExecuteTemplate
// calls; it is not safe for concurrent use.
type Docx struct {
	files      map[string][]byte
	localMedia map[string][]byte
	sourcePath string
	fonts      *metrics.FontSet
	opts       Options
}

// Open reads and unpacks a DOCX file.
func Open(path string) (*Docx, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open docx: %w", err)
	}
	defer func(reader *zip.ReadCloser) {
		_ = reader.Close()
	}(reader)

	d, err := readArchive(&reader.Reader)
	if err != nil {
		return nil, err
	}
	d.sourcePath = path
	return d, nil
}

// OpenBytes unpacks a DOCX from memory. Relative {{#include}} paths
// cannot be resolved for a byte-sourced document and are dropped.
func OpenBytes(data []byte) (*Docx, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open docx: %w", err)
	}
	return readArchive(reader)
}

func readArchive(reader *zip.Reader) (*Docx, error) {
	files := make(map[string][]byte)
	for _, file := range reader.File {
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", file.Name, err)
		}
		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", file.Name, err)
		}
		if err := rc.Close(); err != nil {
			return nil, fmt.Errorf("close %s: %w", file.Name, err)
		}
		files[file.Name] = data
	}
	return &Docx{
		files:      files,
		localMedia: make(map[string][]byte),
	}, nil
}

// SetOptions captures the options every subsequent ExecuteTemplate call
// runs under.
func (d *Docx) SetOptions(opts Options) {
	d.opts = opts
}

// LoadFonts loads the font set the fit specifier measures text against.
func (d *Docx) LoadFonts(pathRegular, pathBold, pathItalic, pathBoldItalic string) error {
	fonts, err := metrics.LoadFonts(pathRegular, pathBold, pathItalic, pathBoldItalic)
	if err != nil {
		return fmt.Errorf("load fonts: %w", err)
	}
	d.fonts = fonts
	return nil
}

// Save writes the document back to a DOCX archive on disk.
func (d *Docx) Save(path string) error {
	buffer := new(bytes.Buffer)
	if err := d.writeArchive(buffer); err != nil {
		return err
	}
	if err := os.WriteFile(path, buffer.Bytes(), 0644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// SaveToWriter writes the current DOCX directly to a stream (for example
// an http.ResponseWriter), repeating the Save logic without a temp file.
func (d *Docx) SaveToWriter(w io.Writer) error {
	buffer := new(bytes.Buffer)
	if err := d.writeArchive(buffer); err != nil {
		return err
	}
	if _, err := io.Copy(w, buffer); err != nil {
		return fmt.Errorf("write to stream: %w", err)
	}
	return nil
}

func (d *Docx) writeArchive(buffer *bytes.Buffer) error {
	writer := zip.NewWriter(buffer)

	// Fold generated media into the archive and keep rels and
	// [Content_Types].xml consistent with it.
	var mediaNames []string
	for name, data := range d.localMedia {
		d.files[name] = data
		mediaNames = append(mediaNames, strings.TrimPrefix(name, "word/media/"))
	}
	if len(mediaNames) > 0 {
		d.updateMediaRelationships("document", mediaNames)
	}

	for name, data := range d.files {
		name = strings.TrimPrefix(name, "/")
		name = strings.ReplaceAll(name, "\\", "/")
		if strings.TrimSpace(name) == "" {
			continue
		}

		header := &zip.FileHeader{
			Name:     name,
			Method:   zip.Deflate,
			Modified: time.Now().UTC(),
		}
		writerFile, err := writer.CreateHeader(header)
		if err != nil {
			return fmt.Errorf("create entry %s: %w", name, err)
		}
		if _, err := writerFile.Write(data); err != nil {
			return fmt.Errorf("write entry %s: %w", name, err)
		}
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("close zip: %w", err)
	}
	return nil
}

// GetFile returns the contents of a file from the archive.
func (d *Docx) GetFile(name string) ([]byte, bool) {
	data, ok := d.files[name]
	return data, ok
}

// SetFile updates or adds a file. Media files land in the local media
// pool so Save can wire their relationships.
func (d *Docx) SetFile(name string, data []byte) {
	name = strings.ReplaceAll(strings.TrimPrefix(name, "/"), "\\", "/")

	if strings.HasPrefix(name, "word/media/") {
		d.localMedia[name] = data
	} else {
		d.files[name] = data
	}
}

// ContentPart returns the XML of the document body, header or footer.
func (d *Docx) ContentPart(part string) (string, error) {
	if !strings.HasPrefix(part, "word/") {
		part = "word/" + part
	}
	if !strings.HasSuffix(part, ".xml") {
		part += ".xml"
	}
	data, ok := d.files[part]
	if !ok {
		return "", fmt.Errorf("no %s in docx", part)
	}
	return string(data), nil
}

// UpdateContentPart replaces the XML of the given part.
func (d *Docx) UpdateContentPart(part, content string) {
	if !strings.HasPrefix(part, "word/") {
		part = "word/" + part
	}
	if !strings.HasSuffix(part, ".xml") {
		part += ".xml"
	}
	d.files[part] = []byte(content)
}

// AddImageRel stores image data as a media file and returns the rId and
// base name a drawing fragment references it by. The name is derived
// from a content hash, so identical images share one archive entry.
func (d *Docx) AddImageRel(data []byte) (string, string) {
	hash := sha1.Sum(data)
	base := fmt.Sprintf("document_%x", hash)
	filename := base + ".png"
	rId := "rId_" + base

	d.SetFile("word/media/"+filename, data)
	return rId, base
}

// updateMediaRelationships updates rels and MIME types for a set of
// media files referenced from the given part.
func (d *Docx) updateMediaRelationships(part string, filenames []string) {
	relsPath := fmt.Sprintf("word/_rels/%s.xml.rels", part)

	relsData, _ := d.GetFile(relsPath)
	if len(relsData) == 0 {
		relsData = []byte(`<?xml version="1.0" encoding="UTF-8"?><Relationships></Relationships>`)
	}

	type Relationship struct {
		ID     string `xml:"Id,attr"`
		Type   string `xml:"Type,attr"`
		Target string `xml:"Target,attr"`
	}
	type Relationships struct {
		XMLName xml.Name       `xml:"Relationships"`
		XMLNS   string         `xml:"xmlns,attr,omitempty"`
		Items   []Relationship `xml:"Relationship"`
	}

	var rels Relationships
	if err := xml.Unmarshal(relsData, &rels); err != nil {
		return
	}
	if rels.XMLNS == "" {
		rels.XMLNS = "http://schemas.openxmlformats.org/package/2006/relationships"
	}

	existing := make(map[string]bool)
	for _, r := range rels.Items {
		existing[r.ID] = true
	}

	for _, name := range filenames {
		ext := filepath.Ext(name)
		base := strings.TrimSuffix(name, ext)
		rId := "rId_" + base
		if existing[rId] {
			continue
		}
		rels.Items = append(rels.Items, Relationship{
			ID:     rId,
			Type:   "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image",
			Target: "media/" + name,
		})
	}

	output, _ := xml.MarshalIndent(rels, "", "  ")
	d.files[relsPath] = append([]byte(xml.Header), output...)
	d.updateContentTypes(filenames)
}

// updateContentTypes registers MIME types for a set of images.
func (d *Docx) updateContentTypes(filenames []string) {
	const contentPath = "[Content_Types].xml"

	data, _ := d.GetFile(contentPath)
	if len(data) == 0 {
		data = []byte(`<?xml version="1.0" encoding="UTF-8"?><Types></Types>`)
	}

	type Override struct {
		PartName    string `xml:"PartName,attr"`
		ContentType string `xml:"ContentType,attr"`
	}
	type Types struct {
		XMLName   xml.Name   `xml:"Types"`
		XMLNS     string     `xml:"xmlns,attr,omitempty"`
		Overrides []Override `xml:"Override"`
	}

	var types Types
	if err := xml.Unmarshal(data, &types); err != nil {
		return
	}
	if types.XMLNS == "" {
		types.XMLNS = "http://schemas.openxmlformats.org/package/2006/content-types"
	}

	mime := map[string]string{
		"png":  "image/png",
		"jpg":  "image/jpeg",
		"jpeg": "image/jpeg",
		"gif":  "image/gif",
		"bmp":  "image/bmp",
		"tif":  "image/tiff",
		"tiff": "image/tiff",
		"svg":  "image/svg+xml",
	}

	exists := make(map[string]struct{})
	for _, o := range types.Overrides {
		exists[o.PartName] = struct{}{}
	}

	for _, file := range filenames {
		part := "/word/media/" + file
		if _, ok := exists[part]; ok {
			continue
		}
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(file), "."))
		ct := mime[ext]
		if ct == "" {
			ct = "application/octet-stream"
		}
		types.Overrides = append(types.Overrides, Override{
			PartName:    part,
			ContentType: ct,
		})
	}

	out, _ := xml.MarshalIndent(types, "", "  ")
	d.files[contentPath] = append([]byte(xml.Header), out...)
}
