// Package format converts resolved values to display text. A value without
// a specifier renders per its kind and the active locale; a specifier
// selects a named format (boolean pairs, declension, numerals, drawings)
// or a numeric/date pattern. String output is additionally scanned for
// markdown-style inline emphasis so the placeholder visitor can split it
// into styled runs.
package format

import (
	"fmt"
	"strconv"
	"strings"

	"docxtpl/boolfmt"
	"docxtpl/culture"
	"docxtpl/metrics"
	"docxtpl/value"
)

// Segment is one fragment of formatted text with the inline emphasis the
// markdown scanner recognized on it.
type Segment struct {
	Text   string
	Bold   bool
	Italic bool
	Strike bool
}

// Output is what a formatting pass produces: styled text segments, or a
// raw XML fragment (a generated drawing) that is spliced verbatim instead
// of being escaped.
type Output struct {
	Segments []Segment
	RawXML   string
}

// Plain wraps s in a single unstyled segment.
func Plain(s string) Output {
	if s == "" {
		return Output{}
	}
	return Output{Segments: []Segment{{Text: s}}}
}

// Text returns the concatenated segment text.
func (o Output) Text() string {
	var b strings.Builder
	for _, s := range o.Segments {
		b.WriteString(s.Text)
	}
	return b.String()
}

// UnknownFormatError reports a specifier that is not registered for the
// current culture and value type. It aborts processing.
type UnknownFormatError struct {
	Specifier string
}

func (e *UnknownFormatError) Error() string {
	return fmt.Sprintf("unknown format %q", e.Specifier)
}

// Context carries the per-document state a specifier function may need:
// the locale, the boolean pair registry, and (for width-fitting) the font
// set plus the style and size of the run being replaced.
type Context struct {
	Locale   culture.Locale
	Booleans *boolfmt.Registry
	Fonts    *metrics.FontSet
	Style    metrics.Style
	SizePt   float64
}

// Format renders v under spec. A nil spec renders the kind's default. The
// lookup order for a named specifier: boolean pair registry (for Bool
// values), then the specifier registry, then numeric/date patterns; a name
// none of them recognize is an UnknownFormatError.
func Format(v value.Value, spec *Specifier, reg *Registry, fc *Context) (Output, error) {
	if fc == nil {
		fc = &Context{Locale: culture.Invariant}
	}
	if spec == nil {
		return defaultOutput(v, fc), nil
	}

	if v.Kind() == value.KindBool && fc.Booleans != nil {
		if pair, ok := fc.Booleans.Lookup(fc.Locale.Tag, spec.Name); ok {
			if v.Truthy() {
				return Plain(pair.True), nil
			}
			return Plain(pair.False), nil
		}
	}

	if reg != nil {
		if fn, ok := reg.lookup(spec.Name); ok {
			return fn(v, spec.Args, fc)
		}
	}

	switch v.Kind() {
	case value.KindInteger, value.KindDecimal, value.KindFloat:
		if out, ok := numericPattern(v, spec.Name, fc); ok {
			return out, nil
		}
	case value.KindDateTime:
		dt := v.(value.DateTime)
		return Plain(dt.T.Format(dateLayout(spec.Raw))), nil
	case value.KindString:
		// A date pattern applied to a string that parses as a date is
		// honored; otherwise the specifier must be a registered name.
		if t, ok := parseTime(string(v.(value.String))); ok && looksLikeDateLayout(spec.Raw) {
			return Plain(t.Format(dateLayout(spec.Raw))), nil
		}
	}

	return Output{}, &UnknownFormatError{Specifier: spec.Raw}
}

// defaultOutput renders a value with no specifier.
func defaultOutput(v value.Value, fc *Context) Output {
	switch x := v.(type) {
	case value.Null:
		return Output{}
	case value.Bool:
		if x {
			return Plain("True")
		}
		return Plain("False")
	case value.Integer:
		return Plain(strconv.FormatInt(int64(x), 10))
	case value.Float:
		return Plain(localizeNumber(strconv.FormatFloat(float64(x), 'f', -1, 64), fc.Locale))
	case value.Decimal:
		if x.Rat == nil {
			return Output{}
		}
		if x.Rat.IsInt() {
			return Plain(x.Rat.Num().String())
		}
		f, _ := x.Rat.Float64()
		return Plain(localizeNumber(strconv.FormatFloat(f, 'f', -1, 64), fc.Locale))
	case value.DateTime:
		return Plain(x.T.Format(fc.Locale.DateTimePattern))
	case value.String:
		return Output{Segments: ScanMarkdown(normalizeNewlines(string(x)))}
	default:
		// Sequence, Mapping, Record: no sensible scalar rendering; stay
		// empty rather than leaking an internal representation.
		return Output{}
	}
}

// localizeNumber swaps the '.' decimal separator for the locale's.
func localizeNumber(s string, loc culture.Locale) string {
	if loc.DecimalSeparator == "." || loc.DecimalSeparator == "" {
		return s
	}
	return strings.Replace(s, ".", loc.DecimalSeparator, 1)
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
