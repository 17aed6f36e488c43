package docxtpl

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strconv"
	"strings"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/ean"
)

// Barcode generates a Code128 or EAN13 barcode image for text and returns
// the <w:drawing> fragment referencing it:
//
//	{{product.code:barcode:code128:inline:50mm*15mm}}
//
// Options, any order: "code128"/"ean13" type; "anchor"/"inline" mode;
// alignment and vertical alignment; "<W>mm" width or "<W>*<H>" size,
// each side given as "<N>mm" or "<N>%" (percent of page width for W, of
// page height for H); a lone "<N>%" is the crop; "T/S[/B[/L]]" margins in
// mm; "border".
func (d *Docx) Barcode(text string, opts ...string) string {
	if text == "" {
		return ""
	}

	const emuPerMM = 36000

	codeType := "code128"
	mode := "anchor"
	align := "right"
	valign := "top"
	sizeWMM := 40.0
	sizeHMM := 0.0 // 0 keeps the 3:1 default aspect
	crop := 0.0
	hasBorder := false
	distT, distB, distL, distR := 0, 0, 0, 0

	pageW, pageH := d.GetPageSizeEMU()

	for _, token := range opts {
		token = strings.TrimSpace(token)
		switch {
		case token == "anchor" || token == "inline":
			mode = token

		case strings.EqualFold(token, "left"),
			strings.EqualFold(token, "center"),
			strings.EqualFold(token, "right"):
			align = token

		case strings.EqualFold(token, "top"),
			strings.EqualFold(token, "middle"),
			strings.EqualFold(token, "bottom"):
			if token == "middle" {
				token = "center"
			}
			valign = token

		case strings.HasSuffix(token, "%") && !strings.Contains(token, "*"):
			if v, err := strconv.ParseFloat(strings.TrimSuffix(token, "%"), 64); err == nil {
				crop = v
			}

		case strings.Contains(token, "/"):
			distT, distR, distB, distL = parseMargins(token, emuPerMM)

		case strings.Contains(token, "*"):
			parts := strings.Split(token, "*")
			if len(parts) == 2 {
				sizeWMM = parseMMorPercent(parts[0], pageW)
				sizeHMM = parseMMorPercent(parts[1], pageH)
			}

		case strings.HasSuffix(token, "mm"):
			if v, err := strconv.ParseFloat(strings.TrimSuffix(token, "mm"), 64); err == nil {
				sizeWMM = v
			}

		case token == "border":
			hasBorder = true

		case token != "":
			codeType = strings.ToLower(token)
		}
	}

	var img barcode.Barcode
	var err error
	switch codeType {
	case "ean13":
		img, err = ean.Encode(text)
	default:
		img, err = code128.Encode(text)
	}
	if err != nil {
		return fmt.Sprintf("<w:t>barcode error: %v</w:t>", err)
	}

	if sizeHMM <= 0 {
		sizeHMM = sizeWMM / 3
		img, _ = barcode.Scale(img, int(sizeWMM*12), int(sizeHMM*12))
	} else {
		// Explicit dimensions keep the original raster so the bars stay
		// crisp; the drawing extent does the visual scaling.
		img, _ = barcode.Scale(img, img.Bounds().Dx(), img.Bounds().Dy())
	}
	buf, err := encodePNG(img)
	if err != nil {
		return fmt.Sprintf("<w:t>barcode error: %v</w:t>", err)
	}
	rId, base := d.AddImageRel(buf)

	return drawingXML(drawingParams{
		mode: mode, align: align, valign: valign,
		name: base, rId: rId,
		cx: int(sizeWMM * emuPerMM), cy: int(sizeHMM * emuPerMM),
		crop:   crop,
		border: hasBorder,
		distT:  distT, distB: distB, distL: distL, distR: distR,
	})
}

// parseMMorPercent parses "40mm" or "80%" into millimeters, resolving
// percentages against a page dimension given in EMU.
func parseMMorPercent(token string, pageSizeEMU int) float64 {
	token = strings.TrimSpace(token)
	switch {
	case strings.HasSuffix(token, "mm"):
		v, _ := strconv.ParseFloat(strings.TrimSuffix(token, "mm"), 64)
		return v
	case strings.HasSuffix(token, "%"):
		v, _ := strconv.ParseFloat(strings.TrimSuffix(token, "%"), 64)
		pageMM := float64(pageSizeEMU) / 36000
		return pageMM * v / 100
	default:
		return 0
	}
}

// GetPageSizeEMU reads the page size from document.xml, in EMU. Falls
// back to A4.
func (d *Docx) GetPageSizeEMU() (width, height int) {
	data, ok := d.files["word/document.xml"]
	if !ok {
		return 210 * 36000, 297 * 36000
	}
	str := string(data)
	w := extractAttrInt(str, `w:pgSz`, `w:w`)
	h := extractAttrInt(str, `w:pgSz`, `w:h`)
	if w == 0 || h == 0 {
		return 210 * 36000, 297 * 36000
	}
	// Values are twips; 1 twip = 635 EMU.
	return w * 635, h * 635
}

func extractAttrInt(xml, tag, attr string) int {
	start := strings.Index(xml, "<"+tag)
	if start == -1 {
		return 0
	}
	part := xml[start:]
	attrStart := strings.Index(part, attr+`="`)
	if attrStart == -1 {
		return 0
	}
	attrStart += len(attr) + 2
	end := strings.Index(part[attrStart:], `"`)
	if end < 0 {
		return 0
	}
	val, _ := strconv.Atoi(part[attrStart : attrStart+end])
	return val
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
