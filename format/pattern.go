package format

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"docxtpl/culture"
	"docxtpl/value"
)

var reNumericPattern = regexp.MustCompile(`^([NnFf])([0-9]+)?$`)

// numericPattern applies an N2/F0-style pattern to a numeric value:
// N groups thousands per the locale, F does not. The digit gives the
// fixed decimal count, default 2.
func numericPattern(v value.Value, name string, fc *Context) (Output, bool) {
	m := reNumericPattern.FindStringSubmatch(name)
	if m == nil {
		return Output{}, false
	}
	decimals := 2
	if m[2] != "" {
		decimals, _ = strconv.Atoi(m[2])
	}
	f, ok := asFloat(v)
	if !ok {
		return Output{}, false
	}

	if m[1] == "N" || m[1] == "n" {
		p := fc.Locale.Printer()
		return Plain(p.Sprint(number.Decimal(f,
			number.MinFractionDigits(decimals),
			number.MaxFractionDigits(decimals)))), true
	}
	return Plain(localizeNumber(strconv.FormatFloat(f, 'f', decimals, 64), fc.Locale)), true
}

// groupedNumber renders f with locale-aware grouping and the given number
// of decimals; Money uses it for the whole part.
func groupedNumber(f float64, decimals int, loc culture.Locale) string {
	var p *message.Printer = loc.Printer()
	return p.Sprint(number.Decimal(f,
		number.MinFractionDigits(decimals),
		number.MaxFractionDigits(decimals)))
}

// dateLayout accepts either a Go reference layout ("02.01.2006 15:04") or
// a handful of common day/month/year tokens and returns a Go layout.
func dateLayout(raw string) string {
	raw = unquote(strings.TrimSpace(raw))
	if strings.Contains(raw, "2006") {
		return raw
	}
	if !strings.Contains(raw, "yyyy") && !strings.Contains(raw, "dd") &&
		!strings.Contains(raw, "MM") && !strings.Contains(raw, "HH") {
		return raw
	}
	rep := strings.NewReplacer(
		"yyyy", "2006", "yy", "06",
		"MMMM", "January", "MMM", "Jan", "MM", "01",
		"dd", "02", "d", "2",
		"HH", "15", "hh", "03",
		"mm", "04", "ss", "05",
	)
	return rep.Replace(raw)
}

func looksLikeDateLayout(raw string) bool {
	raw = unquote(strings.TrimSpace(raw))
	return strings.Contains(raw, "2006") || strings.Contains(raw, "yyyy") ||
		strings.Contains(raw, "dd") || strings.Contains(raw, "MM")
}

// parseTime tries the formats template data commonly arrives in.
func parseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"02.01.2006",
		"2006/01/02",
		"02.01.2006 15:04",
		"2006-01-02 15:04:05",
	}
	for _, l := range layouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// asFloat widens any numeric variant to float64.
func asFloat(v value.Value) (float64, bool) {
	switch x := v.(type) {
	case value.Integer:
		return float64(x), true
	case value.Float:
		return float64(x), true
	case value.Decimal:
		if x.Rat == nil {
			return 0, false
		}
		f, _ := x.Rat.Float64()
		return f, true
	case value.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(string(x)), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// asInt narrows any numeric variant to int.
func asInt(v value.Value) (int, bool) {
	f, ok := asFloat(v)
	if !ok {
		return 0, false
	}
	return int(f), true
}

// display renders a value the way an argumentless specifier sees it: the
// default output's plain text.
func display(v value.Value, fc *Context) string {
	return defaultOutput(v, fc).Text()
}

// DisplayText is display for callers outside the package, used by host
// specifiers (the drawing generators) that need the scalar rendering of
// their input value.
func DisplayText(v value.Value, fc *Context) string {
	return display(v, fc)
}
