package petrovich

import "testing"

func TestInfFioFullForms(t *testing.T) {
	r, err := LoadRules()
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		fio  string
		c    Case
		want string
	}{
		{"Иванов Иван Иванович", Genitive, "Иванова Ивана Ивановича"},
		{"Иванов Иван Иванович", Dative, "Иванову Ивану Ивановичу"},
		{"Иванов Иван Иванович", Instrumental, "Ивановым Иваном Ивановичем"},
		{"Петрова Анна Сергеевна", Genitive, "Петровой Анны Сергеевны"},
		{"Петрова Анна Сергеевна", Dative, "Петровой Анне Сергеевне"},
		{"Петрова Анна Сергеевна", Accusative, "Петрову Анну Сергеевну"},
	}
	for _, tt := range tests {
		if got := r.InfFio(tt.fio, tt.c, false); got != tt.want {
			t.Errorf("InfFio(%q, %d) = %q, want %q", tt.fio, tt.c, got, tt.want)
		}
	}
}

func TestInfFioShortForm(t *testing.T) {
	r, err := LoadRules()
	if err != nil {
		t.Fatal(err)
	}
	if got := r.InfFio("Иванов Иван Иванович", Dative, true); got != "Иванову И.И." {
		t.Errorf("short form = %q", got)
	}
}

func TestExceptions(t *testing.T) {
	r, err := LoadRules()
	if err != nil {
		t.Fatal(err)
	}
	if got := r.InfFirstname("Лев", Genitive, Male); got != "Льва" {
		t.Errorf("Лев gen = %q", got)
	}
	if got := r.InfFirstname("Павел", Dative, Male); got != "Павлу" {
		t.Errorf("Павел dat = %q", got)
	}
}

func TestImmutableLastnames(t *testing.T) {
	r, err := LoadRules()
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"Шевченко", "Седых"} {
		if got := r.InfLastname(name, Genitive, Male); got != name {
			t.Errorf("%s should not inflect, got %q", name, got)
		}
	}
}

func TestHyphenatedLastname(t *testing.T) {
	r, err := LoadRules()
	if err != nil {
		t.Fatal(err)
	}
	if got := r.InfLastname("Петров-Водкин", Genitive, Male); got != "Петрова-Водкина" {
		t.Errorf("hyphenated = %q", got)
	}
}
