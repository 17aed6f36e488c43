package format

import "strings"

// markdown delimiters, longest first so "***" wins over "**" over "*".
var mdDelims = []string{"***", "**", "__", "~~", "*", "_"}

// ScanMarkdown splits s into segments carrying the inline emphasis of
// markdown-style markers: **bold**, __bold__, *italic*, _italic_,
// ~~strike~~ and ***bold italic***. A marker with no closing counterpart
// is literal text. Newlines pass through inside segment text.
func ScanMarkdown(s string) []Segment {
	runes := []rune(s)
	var segs []Segment
	var buf []rune
	var bold, italic, strike bool

	flush := func() {
		if len(buf) > 0 {
			segs = append(segs, Segment{Text: string(buf), Bold: bold, Italic: italic, Strike: strike})
			buf = nil
		}
	}

	i := 0
	for i < len(runes) {
		d := delimiterAt(runes, i)
		if d == "" {
			buf = append(buf, runes[i])
			i++
			continue
		}

		opening := !delimActive(d, bold, italic, strike)
		if opening && !hasClosing(runes, i+len(d), d) {
			buf = append(buf, runes[i:i+len(d)]...)
			i += len(d)
			continue
		}

		flush()
		switch d {
		case "***":
			bold = !bold
			italic = !italic
		case "**", "__":
			bold = !bold
		case "*", "_":
			italic = !italic
		case "~~":
			strike = !strike
		}
		i += len(d)
	}
	flush()
	return segs
}

func delimiterAt(runes []rune, i int) string {
	rest := string(runes[i:])
	for _, d := range mdDelims {
		if strings.HasPrefix(rest, d) {
			return d
		}
	}
	return ""
}

// delimActive reports whether the style a delimiter toggles is currently
// on, i.e. this occurrence would close it.
func delimActive(d string, bold, italic, strike bool) bool {
	switch d {
	case "***":
		return bold && italic
	case "**", "__":
		return bold
	case "*", "_":
		return italic
	case "~~":
		return strike
	}
	return false
}

func hasClosing(runes []rune, from int, d string) bool {
	return strings.Contains(string(runes[from:]), d)
}
