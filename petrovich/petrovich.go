// Package petrovich inflects Russian personal names (surname, first
// name, patronymic) through the grammatical cases, using the rule tables
// of the Petrovich project (https://github.com/petrovich/petrovich-rules),
// MIT licensed.
package petrovich

import (
	"embed"
	"encoding/json"
	"io"
	"strings"
	"sync"
)

//go:embed assets/rules.json
var rulesFS embed.FS

type (
	Gender string
	Case   int
)

const (
	Male        Gender = "male"
	Female      Gender = "female"
	Androgynous Gender = "androgynous"
)

// Cases, in the order the rule tables list their modifiers. The
// nominative is the input form and has no entry.
const (
	Genitive Case = iota
	Dative
	Accusative
	Instrumental
	Prepositional
)

// Rules holds the three rule groups of the rules file.
type Rules struct {
	Lastname   rulesGroup `json:"lastname"`
	Firstname  rulesGroup `json:"firstname"`
	Middlename rulesGroup `json:"middlename"`
}

type rulesGroup struct {
	Exceptions []rule `json:"exceptions"`
	Suffixes   []rule `json:"suffixes"`
}

// rule tests name suffixes (or, for exceptions, whole names) and carries
// one modifier per case: "." keeps the name, each leading "-" removes one
// trailing rune, the rest is appended.
type rule struct {
	Gender string   `json:"gender"`
	Test   []string `json:"test"`
	Mods   []string `json:"mods"`
	Tags   []string `json:"tags"`
}

var (
	loadOnce    sync.Once
	loadedRules *Rules
	loadErr     error
)

// LoadRules returns the embedded rule tables, parsed once per process.
func LoadRules() (*Rules, error) {
	loadOnce.Do(func() {
		file, err := rulesFS.Open("assets/rules.json")
		if err != nil {
			loadErr = err
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			loadErr = err
			return
		}

		var r Rules
		if err := json.Unmarshal(data, &r); err != nil {
			loadErr = err
			return
		}
		loadedRules = &r
	})
	return loadedRules, loadErr
}

// InfFirstname inflects a first name.
func (r *Rules) InfFirstname(value string, c Case, g Gender) string {
	return inflect(value, r.Firstname, c, g)
}

// InfLastname inflects a surname.
func (r *Rules) InfLastname(value string, c Case, g Gender) string {
	return inflect(value, r.Lastname, c, g)
}

// InfMiddlename inflects a patronymic.
func (r *Rules) InfMiddlename(value string, c Case, g Gender) string {
	return inflect(value, r.Middlename, c, g)
}

// InfFio inflects a full "Фамилия Имя Отчество" string. With short true
// the result is "Фамилия И.О."; gender is read off the patronymic.
// Anything that is not three space-separated parts comes back unchanged.
func (r *Rules) InfFio(fio string, c Case, short bool) string {
	fio = strings.TrimSpace(fio)
	if fio == "" {
		return ""
	}

	parts := strings.Fields(fio)
	if len(parts) != 3 {
		return fio
	}

	g := detectGender(parts[2])

	parts[0] = inflect(parts[0], r.Lastname, c, g)
	if short {
		return parts[0] + " " +
			string([]rune(parts[1])[0]) + "." +
			string([]rune(parts[2])[0]) + "."
	}

	parts[1] = inflect(parts[1], r.Firstname, c, g)
	parts[2] = inflect(parts[2], r.Middlename, c, g)
	return strings.Join(parts, " ")
}

func detectGender(middlename string) Gender {
	l := strings.ToLower(strings.TrimSpace(middlename))
	switch {
	case strings.HasSuffix(l, "ич"):
		return Male
	case strings.HasSuffix(l, "на"):
		return Female
	default:
		return Androgynous
	}
}

func inflect(value string, group rulesGroup, c Case, g Gender) string {
	if res := checkExceptions(value, group, c, g); res != "" {
		return res
	}

	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}

	// Double-barrelled surnames inflect part by part.
	parts := strings.Split(value, "-")
	if len(parts) > 1 {
		for i := range parts {
			parts[i] = findRule(parts[i], group, c, g)
		}
		return strings.Join(parts, "-")
	}
	return findRule(value, group, c, g)
}

func checkExceptions(name string, group rulesGroup, c Case, g Gender) string {
	lower := strings.ToLower(name)
	for _, ex := range group.Exceptions {
		if ex.Gender != string(g) && ex.Gender != string(Androgynous) {
			continue
		}
		for _, t := range ex.Test {
			if t == lower {
				return applyMod(ex.Mods[c], name)
			}
		}
	}
	return ""
}

func findRule(name string, group rulesGroup, c Case, g Gender) string {
	for _, rule := range group.Suffixes {
		if rule.Gender != string(g) && rule.Gender != string(Androgynous) {
			continue
		}
		for _, test := range rule.Test {
			if len(test) < len(name) && strings.HasSuffix(name, test) {
				if rule.Mods[c] == "." {
					continue
				}
				return applyMod(rule.Mods[c], name)
			}
		}
	}
	return name
}

func applyMod(mod, name string) string {
	if mod == "." {
		return name
	}
	runes := []rune(name)
	remove := strings.Count(mod, "-")
	if remove > len(runes) {
		remove = len(runes)
	}
	base := runes[:len(runes)-remove]
	return string(base) + strings.ReplaceAll(mod, "-", "")
}
