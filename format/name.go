package format

import (
	"strings"

	"docxtpl/petrovich"
	"docxtpl/value"
)

// Declension inflects a Russian full name into the requested grammatical
// case and layout. A plain "Фамилия Имя Отчество" string is inflected
// automatically; a Mapping of prepared forms (keys like last_gen,
// first_dat) picks the matching form instead.
//
//	{{fio:decl:дательный:ф и о}}      → "Иванову Ивану Ивановичу"
//	{{fio:decl:родительный:фамилия и.о.}} → "Иванова И.И."
func Declension(v value.Value, args []string, fc *Context) (Output, error) {
	caseName := "родительный"
	layout := ""
	if len(args) >= 1 && strings.TrimSpace(args[0]) != "" {
		caseName = strings.ToLower(strings.TrimSpace(args[0]))
	}
	if len(args) >= 2 && strings.TrimSpace(args[1]) != "" {
		layout = strings.ToLower(strings.TrimSpace(args[1]))
	}

	if m, ok := v.(*value.Mapping); ok {
		first, last, middle := pickPrepared(m, caseName)
		return Plain(formatName(first, last, middle, layout)), nil
	}

	src := strings.TrimSpace(display(v, fc))
	if src == "" {
		return Output{}, nil
	}

	rules, err := petrovich.LoadRules()
	if err != nil {
		return Plain(src), nil
	}

	parts := strings.Fields(src)
	gender := petrovich.Androgynous
	if len(parts) == 3 {
		if strings.HasSuffix(parts[2], "ич") {
			gender = petrovich.Male
		}
		if strings.HasSuffix(parts[2], "на") {
			gender = petrovich.Female
		}
	}

	c := petrovichCase(caseName)
	var first, last, middle string
	switch len(parts) {
	case 3:
		last = rules.InfLastname(parts[0], c, gender)
		first = rules.InfFirstname(parts[1], c, gender)
		middle = rules.InfMiddlename(parts[2], c, gender)
	case 2:
		last = rules.InfLastname(parts[0], c, gender)
		first = rules.InfFirstname(parts[1], c, gender)
	default:
		last = rules.InfLastname(parts[0], c, gender)
	}

	return Plain(formatName(first, last, middle, layout)), nil
}

func petrovichCase(c string) petrovich.Case {
	switch strings.ToLower(strings.TrimSpace(c)) {
	case "род", "родительный", "gen", "р":
		return petrovich.Genitive
	case "дат", "дательный", "dat", "д":
		return petrovich.Dative
	case "вин", "винительный", "acc", "в":
		return petrovich.Accusative
	case "тв", "творительный", "ins", "т":
		return petrovich.Instrumental
	case "пред", "предложный", "prep", "п":
		return petrovich.Prepositional
	default:
		return petrovich.Genitive
	}
}

// formatName assembles the name parts per layout tokens: ф/фамилия,
// и/имя, о/отчество, and the initial forms и., о., и.о. An empty layout
// means "ф и о".
func formatName(first, last, middle, layout string) string {
	trim := strings.TrimSpace

	if strings.TrimSpace(layout) == "" {
		out := strings.Join([]string{trim(last), trim(first), trim(middle)}, " ")
		return strings.Join(strings.Fields(out), " ")
	}

	initial := func(s string) string {
		if s == "" {
			return ""
		}
		r := []rune(trim(s))
		return string(r[0]) + "."
	}

	tokens := strings.Fields(layout)
	res := make([]string, 0, len(tokens))
	for _, t := range tokens {
		switch t {
		case "ф", "фамилия":
			res = append(res, trim(last))
		case "и", "имя":
			res = append(res, trim(first))
		case "о", "отчество":
			res = append(res, trim(middle))
		case "и.":
			res = append(res, initial(first))
		case "о.":
			res = append(res, initial(middle))
		case "и.о.":
			res = append(res, initial(first)+initial(middle))
		default:
			res = append(res, t)
		}
	}
	out := strings.Join(res, " ")
	return strings.Join(strings.Fields(out), " ")
}

// pickPrepared selects ready-made case forms from a mapping with keys of
// the shape first_gen / last_dat / middle_ins, falling back to the
// nominative and then the bare key.
func pickPrepared(m *value.Mapping, caseName string) (first, last, middle string) {
	c := normalizeCaseKey(caseName)
	get := func(keys ...string) string {
		for _, k := range keys {
			if v, ok := m.Get(k); ok {
				if s, ok := v.(value.String); ok && strings.TrimSpace(string(s)) != "" {
					return string(s)
				}
			}
		}
		return ""
	}
	first = get("first_"+c, "first_nom", "first")
	last = get("last_"+c, "last_nom", "last", "surname_"+c, "surname")
	middle = get("middle_"+c, "middle_nom", "middle", "patronymic_"+c, "patronymic")
	return
}

func normalizeCaseKey(c string) string {
	switch strings.ToLower(strings.TrimSpace(c)) {
	case "им", "именительный", "nom", "nominative":
		return "nom"
	case "дат", "дательный", "dat", "dative", "д":
		return "dat"
	case "вин", "винительный", "acc", "accusative", "в":
		return "acc"
	case "тв", "творительный", "ins", "instrumental", "т":
		return "ins"
	case "пред", "предложный", "prep", "prepositional", "п":
		return "prep"
	default:
		return "gen"
	}
}
