// Package culture folds locale-dependent formatting into a small value
// object, per spec Design Note 9: "do not depend on a specific host locale
// library; pass a locale descriptor explicitly." It leans on
// golang.org/x/text for the pieces that genuinely need a locale database
// (tag parsing, number grouping) rather than hand-rolling those.
package culture

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Locale is a small, explicit description of how to render numbers, dates
// and boolean pairs for a given BCP-47-like tag. It is a value object: two
// Locales with the same Tag compare equal field-by-field.
type Locale struct {
	Tag              string
	DecimalSeparator string
	GroupSeparator   string
	DatePattern      string
	DateTimePattern  string
	YesNo            [2]string // [true, false]
}

// Invariant is the default culture-independent locale.
var Invariant = Locale{
	Tag:              "invariant",
	DecimalSeparator: ".",
	GroupSeparator:   ",",
	DatePattern:      "2006-01-02",
	DateTimePattern:  "2006-01-02 15:04:05",
	YesNo:            [2]string{"Yes", "No"},
}

var builtins = map[string]Locale{
	"invariant": Invariant,
	"en-US": {
		Tag: "en-US", DecimalSeparator: ".", GroupSeparator: ",",
		DatePattern: "01/02/2006", DateTimePattern: "01/02/2006 3:04 PM",
		YesNo: [2]string{"Yes", "No"},
	},
	"ru-RU": {
		Tag: "ru-RU", DecimalSeparator: ",", GroupSeparator: " ",
		DatePattern: "02.01.2006", DateTimePattern: "02.01.2006 15:04",
		YesNo: [2]string{"Да", "Нет"},
	},
	"de-DE": {
		Tag: "de-DE", DecimalSeparator: ",", GroupSeparator: ".",
		DatePattern: "02.01.2006", DateTimePattern: "02.01.2006 15:04",
		YesNo: [2]string{"Ja", "Nein"},
	},
	"fr-FR": {
		Tag: "fr-FR", DecimalSeparator: ",", GroupSeparator: " ",
		DatePattern: "02/01/2006", DateTimePattern: "02/01/2006 15:04",
		YesNo: [2]string{"Oui", "Non"},
	},
	"es-ES": {
		Tag: "es-ES", DecimalSeparator: ",", GroupSeparator: ".",
		DatePattern: "02/01/2006", DateTimePattern: "02/01/2006 15:04",
		YesNo: [2]string{"Sí", "No"},
	},
	"it-IT": {
		Tag: "it-IT", DecimalSeparator: ",", GroupSeparator: ".",
		DatePattern: "02/01/2006", DateTimePattern: "02/01/2006 15:04",
		YesNo: [2]string{"Sì", "No"},
	},
	"pt-PT": {
		Tag: "pt-PT", DecimalSeparator: ",", GroupSeparator: ".",
		DatePattern: "02/01/2006", DateTimePattern: "02/01/2006 15:04",
		YesNo: [2]string{"Sim", "Não"},
	},
}

// Lookup resolves a BCP-47-like tag to a known Locale, falling back to
// Invariant for unknown tags — formatting must never fail because of an
// unrecognized culture; only an unrecognized specifier is a hard error.
func Lookup(tag string) Locale {
	if tag == "" {
		return Invariant
	}
	if l, ok := builtins[tag]; ok {
		return l
	}
	// Normalize via golang.org/x/text/language so "ru" and "ru-RU" agree,
	// and "en" falls back sensibly to en-US's formatting conventions.
	parsed, err := language.Parse(tag)
	if err != nil {
		return Invariant
	}
	base, conf := parsed.Base()
	if conf == language.No {
		return Invariant
	}
	for key, l := range builtins {
		known, _ := language.Parse(key)
		kb, _ := known.Base()
		if base == kb {
			return l
		}
	}
	return Invariant
}

// Printer returns a golang.org/x/text/message.Printer for this locale, used
// by the format package to group digits (1,234 / 1 234 / 1.234) without
// hand-rolling grouping logic per culture.
func (l Locale) Printer() *message.Printer {
	tag, err := language.Parse(l.Tag)
	if err != nil {
		tag = language.Und
	}
	return message.NewPrinter(tag)
}
