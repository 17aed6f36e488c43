package format

import (
	"fmt"
	"math"
	"strings"

	"github.com/normiridium/rusnum"

	"docxtpl/value"
)

// Numeral spells a number out in Russian words with morphology options:
// gender, grammatical case, the alternative spelling of eight, and the
// zero variant. Options may arrive in any order and in Russian or English.
//
//	{{count:numeral}}                      → "один"
//	{{count:numeral:предложный}}           → "одном"
//	{{count:numeral:женский:творительный}} → "одной"
func Numeral(v value.Value, args []string, _ *Context) (Output, error) {
	n, ok := asInt(v)
	if !ok {
		return Output{}, nil
	}

	g := rusnum.Masc
	c := rusnum.Nom
	nullStyle := rusnum.ZeroNul
	alt8 := false

	for _, p := range args {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		switch p {
		case "м", "муж", "мужской", "masc", "m", "masculine":
			g = rusnum.Masc
			continue
		case "ж", "жен", "женский", "fem", "f", "feminine":
			g = rusnum.Fem
			continue
		case "ср", "сред", "средний", "neut", "n", "neutral":
			g = rusnum.Neut
			continue
		}
		switch p {
		case "им", "именительный", "nom", "nominative":
			c = rusnum.Nom
			continue
		case "род", "родительный", "gen", "genitive":
			c = rusnum.Gen
			continue
		case "дат", "дательный", "dat", "dative":
			c = rusnum.Dat
			continue
		case "вин", "винительный", "acc", "accusative":
			c = rusnum.Acc
			continue
		case "тв", "творительный", "ins", "instrumental":
			c = rusnum.Ins
			continue
		case "пред", "предложный", "prep", "prepositional":
			c = rusnum.Prep
			continue
		}
		switch p {
		case "восемью", "альт8", "альтернативная8", "alt8":
			alt8 = true
			continue
		case "восьмью", "стандартная8", "std8":
			alt8 = false
			continue
		}
		switch p {
		case "нуль", "nul", "zero-nul":
			nullStyle = rusnum.ZeroNul
		case "ноль", "nol", "zero-nol":
			nullStyle = rusnum.ZeroNol
		}
	}

	return Plain(rusnum.ToWords(
		n,
		rusnum.WithGender(g),
		rusnum.WithCase(c),
		rusnum.WithNullStyle(nullStyle),
		rusnum.WithInsEightAlt(alt8),
	)), nil
}

// Plural picks the word form agreeing with a count:
// {{days:plural:день:дня:дней}}. Two forms extend to three by reusing the
// second; no forms fall back to "сотрудник".
func Plural(v value.Value, args []string, _ *Context) (Output, error) {
	n, ok := asInt(v)
	if !ok {
		return Output{}, nil
	}

	forms := args
	if len(forms) == 0 {
		forms = []string{"сотрудник", "сотрудника", "сотрудников"}
	}
	if len(forms) == 2 {
		forms = []string{forms[0], forms[1], forms[1]}
	}
	if len(forms) < 3 {
		forms = append(forms, forms[len(forms)-1], forms[len(forms)-1])
	}

	var idx int
	switch {
	case n%10 == 1 && n%100 != 11:
		idx = 0
	case n%10 >= 2 && n%10 <= 4 && (n%100 < 10 || n%100 >= 20):
		idx = 1
	default:
		idx = 2
	}
	return Plain(forms[idx]), nil
}

// Money formats a number as a monetary amount with locale grouping.
// {{sum:money}} → "1 234,56"; an "int" argument drops the fraction; an
// argument with a %-verb is a custom layout over the grouped whole part
// and the kopeck remainder.
func Money(v value.Value, args []string, fc *Context) (Output, error) {
	f, ok := asFloat(v)
	if !ok {
		return Plain(display(v, fc)), nil
	}

	intPart := int64(f)
	fracPart := int64(math.Round((f - float64(intPart)) * 100))
	main := groupedNumber(float64(intPart), 0, fc.Locale)

	if len(args) > 0 {
		arg := strings.TrimSpace(args[0])
		switch strings.ToLower(arg) {
		case "int", "целое":
			return Plain(main), nil
		}
		if strings.Contains(arg, "%") {
			if strings.Count(arg, "%") == 1 {
				return Plain(fmt.Sprintf(arg, main)), nil
			}
			return Plain(fmt.Sprintf(arg, main, fracPart)), nil
		}
	}

	sep := fc.Locale.DecimalSeparator
	if sep == "" {
		sep = "."
	}
	return Plain(fmt.Sprintf("%s%s%02d", main, sep, fracPart)), nil
}

var romanValues = []struct {
	n int
	s string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

// Roman converts a positive integer to Roman numerals.
func Roman(v value.Value, _ []string, fc *Context) (Output, error) {
	n, ok := asInt(v)
	if !ok || n <= 0 {
		return Plain(display(v, fc)), nil
	}
	var b strings.Builder
	for _, rv := range romanValues {
		for n >= rv.n {
			b.WriteString(rv.s)
			n -= rv.n
		}
	}
	return Plain(b.String()), nil
}

// Sign prefixes positive numbers with '+'.
func Sign(v value.Value, _ []string, fc *Context) (Output, error) {
	f, ok := asFloat(v)
	if !ok {
		return Plain(display(v, fc)), nil
	}
	s := display(v, fc)
	if f > 0 {
		return Plain("+" + s), nil
	}
	return Plain(s), nil
}

// PadLeft pads the rendered value on the left to a target length:
// {{num:pad_left:5:0}} → "00042".
func PadLeft(v value.Value, args []string, fc *Context) (Output, error) {
	s := display(v, fc)
	length, char := padArgs(args)
	for len([]rune(s)) < length {
		s = char + s
	}
	return Plain(s), nil
}

// PadRight pads the rendered value on the right to a target length.
func PadRight(v value.Value, args []string, fc *Context) (Output, error) {
	s := display(v, fc)
	length, char := padArgs(args)
	for len([]rune(s)) < length {
		s += char
	}
	return Plain(s), nil
}

func padArgs(args []string) (int, string) {
	length := 0
	char := " "
	if len(args) >= 1 {
		fmt.Sscanf(strings.TrimSpace(args[0]), "%d", &length)
	}
	if len(args) >= 2 && args[1] != "" {
		char = args[1]
	}
	return length, char
}
