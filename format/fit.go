package format

import (
	"strconv"
	"strings"

	"docxtpl/tostring"
	"docxtpl/value"
)

// Fit breaks the rendered text into lines measured against the active
// run's font, using an underscore ruler: {{notes:fit:20:65}} fits the
// first line into the width of 20 underscores and every following line
// into 65. Line breaks become explicit break nodes in the output run.
// Without a loaded font set the text passes through unchanged.
func Fit(v value.Value, args []string, fc *Context) (Output, error) {
	s := display(v, fc)
	if fc.Fonts == nil || len(args) < 2 || s == "" {
		return Plain(s), nil
	}

	first, err1 := strconv.Atoi(strings.TrimSpace(args[0]))
	rest, err2 := strconv.Atoi(strings.TrimSpace(args[1]))
	if err1 != nil || err2 != nil || first <= 0 || rest <= 0 {
		return Plain(s), nil
	}

	sizePt := fc.SizePt
	if sizePt <= 0 {
		sizePt = 11
	}

	lines, err := tostring.SplitParagraphByUnderscore(s, fc.Fonts, fc.Style, sizePt, first, rest)
	if err != nil {
		return Plain(s), nil
	}
	return Plain(strings.Join(lines, "\n")), nil
}
