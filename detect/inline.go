package detect

import "strings"

// PlaceholderMatch is a {{VAR[:FMT]}} token found inside a paragraph's
// concatenated run text. Offsets are rune offsets into that text so the
// placeholder visitor can map characters back to their source runs.
type PlaceholderMatch struct {
	VarText  string // the variable path, or a parenthesized expression
	SpecText string // the raw specifier after the top-level ':', "" if none
	Start    int
	Length   int
}

// InlineBranch is one arm of an inline conditional: the text between its
// marker and the next branch marker (or the end marker), as rune offsets.
type InlineBranch struct {
	ConditionText string
	IsElse        bool
	ContentStart  int
	ContentEnd    int
}

// InlineSpan is a complete {{#if}}...{{/if}} that lives within a single
// paragraph. Start/End cover the whole span including both markers.
type InlineSpan struct {
	Start    int
	End      int
	Branches []InlineBranch
}

// inlineToken is one {{...}} occurrence with classified content.
type inlineToken struct {
	kind  markerKind // markerNone for ordinary placeholders
	arg   string
	start int // rune offset of "{{"
	end   int // rune offset just past "}}"
	inner string
}

// scanTokens finds every balanced {{...}} occurrence left to right. A "{{"
// with no matching "}}" is skipped, leaving it as literal text.
func scanTokens(runes []rune) []inlineToken {
	var out []inlineToken
	i := 0
	for i+1 < len(runes) {
		if runes[i] != '{' || runes[i+1] != '{' {
			i++
			continue
		}
		j := i + 2
		for j+1 < len(runes) && !(runes[j] == '}' && runes[j+1] == '}') {
			j++
		}
		if j+1 >= len(runes) {
			break
		}
		inner := strings.TrimSpace(string(runes[i+2 : j]))
		out = append(out, inlineToken{
			kind:  classifyInner(inner),
			arg:   markerArg(inner),
			start: i,
			end:   j + 2,
			inner: inner,
		})
		i = j + 2
	}
	return out
}

// classifyInner classifies already-trimmed token content.
func classifyInner(inner string) markerKind {
	switch {
	case strings.HasPrefix(inner, "#if ") || strings.HasPrefix(inner, "#if\t"):
		return markerIf
	case strings.HasPrefix(inner, "#elseif ") || strings.HasPrefix(inner, "#elseif\t"):
		return markerElseIf
	case inner == "else" || inner == "#else":
		return markerElse
	case inner == "/if":
		return markerEndIf
	case strings.HasPrefix(inner, "#foreach ") || strings.HasPrefix(inner, "#foreach\t"):
		return markerForeach
	case inner == "/foreach":
		return markerEndForeach
	default:
		return markerNone
	}
}

func markerArg(inner string) string {
	switch {
	case strings.HasPrefix(inner, "#if"):
		return strings.TrimSpace(strings.TrimPrefix(inner, "#if"))
	case strings.HasPrefix(inner, "#elseif"):
		return strings.TrimSpace(strings.TrimPrefix(inner, "#elseif"))
	case strings.HasPrefix(inner, "#foreach"):
		return strings.TrimSpace(strings.TrimPrefix(inner, "#foreach"))
	default:
		return ""
	}
}

// Placeholders returns every {{VAR[:FMT]}} in text, in document order.
// Block and branch markers are not placeholders and are skipped, as is
// anything starting with '#' or '/' (an unresolved directive stays
// literal rather than being misread as a variable named "#foo").
func Placeholders(text string) []PlaceholderMatch {
	runes := []rune(text)
	var out []PlaceholderMatch
	for _, tok := range scanTokens(runes) {
		if tok.kind != markerNone {
			continue
		}
		if tok.inner == "" || strings.HasPrefix(tok.inner, "#") || strings.HasPrefix(tok.inner, "/") {
			continue
		}
		varText, specText := splitSpecifier(tok.inner)
		out = append(out, PlaceholderMatch{
			VarText:  varText,
			SpecText: specText,
			Start:    tok.start,
			Length:   tok.end - tok.start,
		})
	}
	return out
}

// splitSpecifier splits placeholder content at the first ':' that is not
// inside parentheses or quotes, so {{(A > 1):yesno}} and
// {{Name:decl:дательный}} both split correctly ("decl:дательный" stays
// together as the specifier with its argument).
func splitSpecifier(inner string) (varText, specText string) {
	depth := 0
	var quote rune
	for i, r := range inner {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
		case r == '(':
			depth++
		case r == ')':
			depth--
		case r == ':' && depth == 0:
			return strings.TrimSpace(inner[:i]), strings.TrimSpace(inner[i+1:])
		}
	}
	return strings.TrimSpace(inner), ""
}

// InlineConditionals finds the top-level inline {{#if}}...{{/if}} spans of
// a paragraph's text. Nested inline conditionals are left inside their
// enclosing branch's content range; the visitor re-runs detection on the
// winning branch text. Unclosed spans are dropped (their markers remain
// literal text).
func InlineConditionals(text string) []InlineSpan {
	runes := []rune(text)
	toks := scanTokens(runes)

	var out []InlineSpan
	for i := 0; i < len(toks); i++ {
		if toks[i].kind != markerIf {
			continue
		}
		span, next := collectInlineSpan(toks, i)
		if span == nil {
			continue
		}
		out = append(out, *span)
		i = next
	}
	return out
}

// collectInlineSpan pairs the start token at toks[start] with its end
// marker and splits the interior into branches. Returns the span plus the
// index of the end token so the caller can resume after it.
func collectInlineSpan(toks []inlineToken, start int) (*InlineSpan, int) {
	span := &InlineSpan{Start: toks[start].start}
	cur := InlineBranch{ConditionText: toks[start].arg, ContentStart: toks[start].end}
	depth := 1

	for i := start + 1; i < len(toks); i++ {
		switch toks[i].kind {
		case markerIf:
			depth++
		case markerEndIf:
			depth--
			if depth == 0 {
				cur.ContentEnd = toks[i].start
				span.Branches = append(span.Branches, cur)
				span.End = toks[i].end
				return span, i
			}
		case markerElseIf:
			if depth == 1 {
				cur.ContentEnd = toks[i].start
				span.Branches = append(span.Branches, cur)
				cur = InlineBranch{ConditionText: toks[i].arg, ContentStart: toks[i].end}
			}
		case markerElse:
			if depth == 1 {
				cur.ContentEnd = toks[i].start
				span.Branches = append(span.Branches, cur)
				cur = InlineBranch{IsElse: true, ContentStart: toks[i].end}
			}
		}
	}
	return nil, start
}

// LoopMarkerSpan is the rune span of one {{#foreach ...}} or {{/foreach}}
// token inside a text buffer.
type LoopMarkerSpan struct {
	Start  int
	End    int
	IsOpen bool
}

// LoopMarkerSpans returns every loop marker token in text, in order. The
// loop visitor uses the spans to strip marker text out of body rows that
// carry the marker alongside real content.
func LoopMarkerSpans(text string) []LoopMarkerSpan {
	var out []LoopMarkerSpan
	for _, tok := range scanTokens([]rune(text)) {
		switch tok.kind {
		case markerForeach:
			out = append(out, LoopMarkerSpan{Start: tok.start, End: tok.end, IsOpen: true})
		case markerEndForeach:
			out = append(out, LoopMarkerSpan{Start: tok.start, End: tok.end})
		}
	}
	return out
}

// loopMarkerCounts tallies the loop markers of a row's combined text and
// collects the collection names of the open markers.
func loopMarkerCounts(text string) (opens []string, closes int) {
	for _, tok := range scanTokens([]rune(text)) {
		switch tok.kind {
		case markerForeach:
			opens = append(opens, tok.arg)
		case markerEndForeach:
			closes++
		}
	}
	return
}
