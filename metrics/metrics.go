// Package metrics measures rendered string widths against TrueType
// fonts, so text can be fitted to a fixed line width before it reaches
// the document.
package metrics

import (
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Style selects which face of a FontSet measures a string.
type Style int

const (
	Regular Style = iota
	Bold
	Italic
	BoldItalic
)

// FontSet holds the four faces of one font family.
type FontSet struct {
	Regular    *sfnt.Font
	Bold       *sfnt.Font
	Italic     *sfnt.Font
	BoldItalic *sfnt.Font
}

// FontMeasurer is anything that can measure a string's width in points.
type FontMeasurer interface {
	Measure(s string, style Style, sizePt float64) (float64, error)
}

// LoadFonts reads and parses the four TTF faces from disk.
func LoadFonts(pathRegular, pathBold, pathItalic, pathBoldItalic string) (*FontSet, error) {
	paths := []string{pathRegular, pathBold, pathItalic, pathBoldItalic}
	var faces [4]*sfnt.Font

	for i, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read font %s: %w", path, err)
		}
		face, err := sfnt.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parse font %s: %w", path, err)
		}
		faces[i] = face
	}

	return &FontSet{
		Regular:    faces[0],
		Bold:       faces[1],
		Italic:     faces[2],
		BoldItalic: faces[3],
	}, nil
}

// Measure returns the width of text in points for the given style and
// size, summing glyph advances at 72 DPI (1 pt = 1 px).
func (fs *FontSet) Measure(text string, style Style, sizePt float64) (float64, error) {
	var face *sfnt.Font
	switch style {
	case Regular:
		face = fs.Regular
	case Bold:
		face = fs.Bold
	case Italic:
		face = fs.Italic
	case BoldItalic:
		face = fs.BoldItalic
	default:
		return 0, fmt.Errorf("unknown style")
	}

	ppem := fixed.Int26_6(sizePt * 64)

	buf := &sfnt.Buffer{}
	total := 0.0
	for _, r := range text {
		gid, err := face.GlyphIndex(buf, r)
		if err != nil {
			return 0, fmt.Errorf("glyphIndex: %w", err)
		}
		adv, err := face.GlyphAdvance(buf, gid, ppem, font.HintingNone)
		if err != nil {
			return 0, fmt.Errorf("glyphAdvance: %w", err)
		}
		total += float64(adv) / 64.0
	}

	return total, nil
}
