package culture

import "testing"

func TestLookupKnownTags(t *testing.T) {
	if l := Lookup("ru-RU"); l.DecimalSeparator != "," || l.DatePattern != "02.01.2006" {
		t.Errorf("ru-RU = %+v", l)
	}
	if l := Lookup("en-US"); l.DecimalSeparator != "." {
		t.Errorf("en-US = %+v", l)
	}
}

func TestLookupFallsBackToInvariant(t *testing.T) {
	if l := Lookup(""); l.Tag != "invariant" {
		t.Errorf("empty tag = %+v", l)
	}
	if l := Lookup("zz-ZZ"); l.Tag != "invariant" {
		t.Errorf("unknown tag = %+v", l)
	}
}

func TestLookupNormalizesBaseLanguage(t *testing.T) {
	// "ru" should land on the same conventions as "ru-RU".
	if l := Lookup("ru"); l.DecimalSeparator != "," {
		t.Errorf("ru = %+v", l)
	}
}

func TestYesNoPairs(t *testing.T) {
	if l := Lookup("de-DE"); l.YesNo != [2]string{"Ja", "Nein"} {
		t.Errorf("de-DE YesNo = %v", l.YesNo)
	}
}
