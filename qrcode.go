package docxtpl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/skip2/go-qrcode"
)

// QrCode generates a QR image for text and returns the <w:drawing>
// fragment referencing it, sized and placed per the options:
//
//	{{code:qrcode:inline:40mm}}
//	{{code:qrcode:right:top:8%:5/5:border}}
//
// Options, any order: "anchor"/"inline" mode; "left"/"center"/"right"
// alignment; "top"/"middle"/"bottom" vertical alignment; "<N>mm" size;
// "<N>%" white-margin crop; "T/S[/B[/L]]" distances in mm; "border".
func (d *Docx) QrCode(text string, opts ...string) string {
	const emuPerMM = 36000

	if text == "" {
		return ""
	}

	mode := "anchor"
	sizeMM := 32.0
	crop := 4.0
	align := "right"
	valign := "top"
	distT, distB, distL, distR := 0, 0, 0, 0
	hasBorder := false

	for _, token := range opts {
		token = strings.TrimSpace(token)
		switch {
		case token == "anchor" || token == "inline":
			mode = token
		case strings.HasSuffix(token, "%"):
			crop, _ = strconv.ParseFloat(strings.TrimSuffix(token, "%"), 64)
		case strings.Contains(token, "/"):
			distT, distR, distB, distL = parseMargins(token, emuPerMM)
		case token == "left" || token == "center" || token == "right":
			align = token
		case token == "top" || token == "middle" || token == "bottom":
			if token == "middle" {
				token = "center"
			}
			valign = token
		case token == "border":
			hasBorder = true
		default:
			if v, err := strconv.ParseFloat(strings.TrimSuffix(token, "mm"), 64); err == nil {
				sizeMM = v
			}
		}
	}

	sizePx := int(sizeMM / 25.4 * 96)
	data, err := qrcode.Encode(text, qrcode.Medium, sizePx)
	if err != nil {
		return fmt.Sprintf("<w:t>QR error: %v</w:t>", err)
	}

	rId, base := d.AddImageRel(data)

	cx := int(sizeMM * emuPerMM)
	cy := cx
	return drawingXML(drawingParams{
		mode: mode, align: align, valign: valign,
		name: base, rId: rId,
		cx: cx, cy: cy,
		crop:   crop,
		border: hasBorder,
		distT:  distT, distB: distB, distL: distL, distR: distR,
	})
}

// parseMargins reads "T/S", "T/S/B" or "T/R/B/L" millimeter distances.
func parseMargins(token string, emuPerMM int) (t, r, b, l int) {
	parts := strings.Split(token, "/")
	mm := func(s string) int {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0
		}
		return int(v * float64(emuPerMM))
	}
	switch len(parts) {
	case 2:
		t = mm(parts[0])
		b = t
		l = mm(parts[1])
		r = l
	case 3:
		t = mm(parts[0])
		l = mm(parts[1])
		r = l
		b = mm(parts[2])
	case 4:
		t = mm(parts[0])
		r = mm(parts[1])
		b = mm(parts[2])
		l = mm(parts[3])
	}
	return
}

type drawingParams struct {
	mode, align, valign string
	name, rId           string
	cx, cy              int
	crop                float64
	border              bool
	distT, distB        int
	distL, distR        int
}

// drawingXML renders the shared <w:drawing> scaffolding both generated
// image kinds use, as inline or anchored placement.
func drawingXML(p drawingParams) string {
	cropXML := ""
	if p.crop > 0 {
		c := int(p.crop * 1000)
		cropXML = fmt.Sprintf(`<a:srcRect l="%d" t="%d" r="%d" b="%d"/>`, c, c, c, c)
	}
	borderXML := ""
	if p.border {
		borderXML = `<a:ln w="12700"><a:solidFill><a:srgbClr val="000000"/></a:solidFill></a:ln>`
	}

	pic := fmt.Sprintf(`
<pic:pic xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture">
  <pic:nvPicPr>
    <pic:cNvPr id="1" name="%s"/>
    <pic:cNvPicPr><a:picLocks noChangeAspect="1" noChangeArrowheads="1"/></pic:cNvPicPr>
  </pic:nvPicPr>
  <pic:blipFill>
    <a:blip r:embed="%s" cstate="print"/>
    %s
    <a:stretch><a:fillRect/></a:stretch>
  </pic:blipFill>
  <pic:spPr bwMode="auto">
    <a:xfrm><a:off x="0" y="0"/><a:ext cx="%d" cy="%d"/></a:xfrm>
    <a:prstGeom prst="rect"><a:avLst/></a:prstGeom>
    <a:noFill/>%s
  </pic:spPr>
</pic:pic>`, p.name, p.rId, cropXML, p.cx, p.cy, borderXML)

	if p.mode == "inline" {
		return fmt.Sprintf(`
<w:drawing xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
  <wp:inline distT="0" distB="0" distL="0" distR="0">
    <wp:extent cx="%d" cy="%d"/>
    <wp:effectExtent l="0" t="0" r="0" b="0"/>
    <wp:docPr id="1" name="%s"/>
    <wp:cNvGraphicFramePr>
      <a:graphicFrameLocks xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" noChangeAspect="1"/>
    </wp:cNvGraphicFramePr>
    <a:graphic xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">
      <a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/picture">%s</a:graphicData>
    </a:graphic>
  </wp:inline>
</w:drawing>`, p.cx, p.cy, p.name, pic)
	}

	return fmt.Sprintf(`
<w:drawing xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
  <wp:anchor behindDoc="0" distT="%d" distB="%d" distL="%d" distR="%d"
	simplePos="0" locked="0" layoutInCell="0" allowOverlap="1" relativeHeight="2">
	<wp:simplePos x="0" y="0"/>
    <wp:positionH relativeFrom="column"><wp:align>%s</wp:align></wp:positionH>
    <wp:positionV relativeFrom="paragraph"><wp:align>%s</wp:align></wp:positionV>
    <wp:extent cx="%d" cy="%d"/>
    <wp:effectExtent l="0" t="0" r="0" b="0"/>
    <wp:wrapSquare wrapText="bothSides"/>
    <wp:docPr id="1" name="%s"/>
    <wp:cNvGraphicFramePr>
      <a:graphicFrameLocks xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" noChangeAspect="1"/>
    </wp:cNvGraphicFramePr>
    <a:graphic xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">
      <a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/picture">%s</a:graphicData>
    </a:graphic>
  </wp:anchor>
</w:drawing>`, p.distT, p.distB, p.distL, p.distR, p.align, p.valign, p.cx, p.cy, p.name, pic)
}
