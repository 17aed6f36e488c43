package format

import (
	"strings"
	"time"

	"docxtpl/value"
)

// DateFormat renders a date value under an explicit layout argument:
// {{deadline:date_format:02.01.2006}}. Strings are parsed with the usual
// interchange layouts first; a string that is not a date passes through.
func DateFormat(v value.Value, args []string, fc *Context) (Output, error) {
	layout := fc.Locale.DatePattern
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		layout = dateLayout(args[0])
	}

	var t time.Time
	switch x := v.(type) {
	case value.DateTime:
		t = x.T
	case value.String:
		parsed, ok := parseTime(string(x))
		if !ok {
			return Plain(string(x)), nil
		}
		t = parsed
	case value.Integer:
		t = time.Unix(int64(x), 0)
	default:
		return Plain(display(v, fc)), nil
	}
	return Plain(t.Format(layout)), nil
}

// Prefix prepends its argument when the value is non-empty.
func Prefix(v value.Value, args []string, fc *Context) (Output, error) {
	s := display(v, fc)
	if s == "" || len(args) == 0 {
		return Plain(s), nil
	}
	return Plain(args[0] + s), nil
}

// Postfix appends its argument when the value is non-empty.
func Postfix(v value.Value, args []string, fc *Context) (Output, error) {
	s := display(v, fc)
	if s == "" || len(args) == 0 {
		return Plain(s), nil
	}
	return Plain(s + args[0]), nil
}

// Default substitutes its argument for an empty or missing value.
func Default(v value.Value, args []string, fc *Context) (Output, error) {
	s := display(v, fc)
	if strings.TrimSpace(s) == "" && len(args) > 0 {
		return Plain(args[0]), nil
	}
	return Plain(s), nil
}

// Replace substitutes every occurrence of the first argument with the
// second: {{code:replace:-:_}}.
func Replace(v value.Value, args []string, fc *Context) (Output, error) {
	s := display(v, fc)
	if len(args) < 2 {
		return Plain(s), nil
	}
	return Plain(strings.ReplaceAll(s, args[0], args[1])), nil
}

// Truncate cuts the text to n runes, appending the optional suffix when
// something was cut: {{title:truncate:20:…}}.
func Truncate(v value.Value, args []string, fc *Context) (Output, error) {
	s := display(v, fc)
	if len(args) == 0 {
		return Plain(s), nil
	}
	n, _ := asInt(value.String(args[0]))
	if n <= 0 {
		return Plain(s), nil
	}
	runes := []rune(s)
	if len(runes) <= n {
		return Plain(s), nil
	}
	suffix := ""
	if len(args) >= 2 {
		suffix = args[1]
	}
	return Plain(string(runes[:n]) + suffix), nil
}

// Compact collapses runs of whitespace into single spaces and trims.
func Compact(v value.Value, _ []string, fc *Context) (Output, error) {
	return Plain(strings.Join(strings.Fields(display(v, fc)), " ")), nil
}

// Nowrap replaces ordinary spaces with non-breaking ones so Word keeps
// the phrase on one line.
func Nowrap(v value.Value, _ []string, fc *Context) (Output, error) {
	return Plain(strings.ReplaceAll(display(v, fc), " ", " ")), nil
}

// Abbr reduces all words but the first to initials, keeping words of one
// or two letters whole: "Общество с ограниченной ответственностью" →
// "Общество с о. о.".
func Abbr(v value.Value, _ []string, fc *Context) (Output, error) {
	words := strings.Fields(display(v, fc))
	if len(words) == 0 {
		return Output{}, nil
	}
	out := make([]string, 0, len(words))
	out = append(out, words[0])
	for _, w := range words[1:] {
		r := []rune(w)
		if len(r) > 2 {
			out = append(out, string(r[0])+".")
		} else {
			out = append(out, w)
		}
	}
	return Plain(strings.Join(out, " ")), nil
}

// RuPhone normalizes a Russian phone number to +7 (XXX) XXX-XX-XX.
// Inputs with a non-Russian length pass through untouched.
func RuPhone(v value.Value, _ []string, fc *Context) (Output, error) {
	s := display(v, fc)
	var digits []rune
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	if len(digits) == 11 && (digits[0] == '7' || digits[0] == '8') {
		digits = digits[1:]
	}
	if len(digits) != 10 {
		return Plain(s), nil
	}
	d := string(digits)
	return Plain("+7 (" + d[0:3] + ") " + d[3:6] + "-" + d[6:8] + "-" + d[8:10]), nil
}

// Upper uppercases the rendered value.
func Upper(v value.Value, _ []string, fc *Context) (Output, error) {
	return Plain(strings.ToUpper(display(v, fc))), nil
}

// Lower lowercases the rendered value.
func Lower(v value.Value, _ []string, fc *Context) (Output, error) {
	return Plain(strings.ToLower(display(v, fc))), nil
}
