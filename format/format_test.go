package format

import (
	"errors"
	"math/big"
	"testing"
	"time"

	"docxtpl/boolfmt"
	"docxtpl/culture"
	"docxtpl/value"
)

func fcFor(tag string) *Context {
	return &Context{Locale: culture.Lookup(tag), Booleans: boolfmt.NewRegistry()}
}

func render(t *testing.T, v value.Value, spec string, tag string) string {
	t.Helper()
	out, err := Format(v, ParseSpecifier(spec), NewRegistry(), fcFor(tag))
	if err != nil {
		t.Fatalf("Format(%#v, %q): %v", v, spec, err)
	}
	return out.Text()
}

func TestDefaultRendering(t *testing.T) {
	tests := []struct {
		v    value.Value
		tag  string
		want string
	}{
		{value.Null{}, "", ""},
		{value.Bool(true), "", "True"},
		{value.Bool(false), "", "False"},
		{value.Integer(42), "", "42"},
		{value.Float(1.5), "", "1.5"},
		{value.Float(1.5), "ru-RU", "1,5"},
		{value.NewDecimal(big.NewRat(7, 1)), "", "7"},
		{value.String("plain"), "", "plain"},
		{value.Sequence{value.Integer(1)}, "", ""},
	}
	for _, tt := range tests {
		if got := render(t, tt.v, "", tt.tag); got != tt.want {
			t.Errorf("default %#v (%s) = %q, want %q", tt.v, tt.tag, got, tt.want)
		}
	}
}

func TestDefaultDateTimeUsesLocalePattern(t *testing.T) {
	d := value.NewDateTime(time.Date(2026, 3, 1, 14, 30, 0, 0, time.UTC))
	if got := render(t, d, "", "ru-RU"); got != "01.03.2026 14:30" {
		t.Errorf("ru-RU datetime = %q", got)
	}
}

func TestBooleanSpecifiers(t *testing.T) {
	if got := render(t, value.Bool(true), "yesno", ""); got != "Yes" {
		t.Errorf("yesno true = %q", got)
	}
	if got := render(t, value.Bool(false), "yesno", "de-DE"); got != "Nein" {
		t.Errorf("de yesno false = %q", got)
	}
	if got := render(t, value.Bool(true), "checkbox", ""); got != "☑" {
		t.Errorf("checkbox = %q", got)
	}
}

func TestUnknownSpecifierFails(t *testing.T) {
	_, err := Format(value.Bool(true), ParseSpecifier("nosuch"), NewRegistry(), fcFor(""))
	var uf *UnknownFormatError
	if !errors.As(err, &uf) {
		t.Fatalf("err = %v, want UnknownFormatError", err)
	}
	if _, err := Format(value.Integer(5), ParseSpecifier("zzz"), NewRegistry(), fcFor("")); err == nil {
		t.Error("unknown numeric specifier should fail")
	}
}

func TestNumericPatterns(t *testing.T) {
	if got := render(t, value.Float(1234.5), "F2", ""); got != "1234.50" {
		t.Errorf("F2 = %q", got)
	}
	if got := render(t, value.Integer(7), "F0", ""); got != "7" {
		t.Errorf("F0 = %q", got)
	}
	if got := render(t, value.Float(1234.5), "N2", ""); got != "1,234.50" {
		t.Errorf("N2 = %q", got)
	}
	if got := render(t, value.Float(1234.5), "F2", "ru-RU"); got != "1234,50" {
		t.Errorf("ru F2 = %q", got)
	}
}

func TestDateTimePatternSpecifier(t *testing.T) {
	d := value.NewDateTime(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	if got := render(t, d, "02.01.2006", ""); got != "01.03.2026" {
		t.Errorf("layout = %q", got)
	}
	if got := render(t, d, "dd.MM.yyyy", ""); got != "01.03.2026" {
		t.Errorf("token layout = %q", got)
	}
}

func TestDateFormatSpecifier(t *testing.T) {
	if got := render(t, value.String("2026-03-01"), "date_format:02.01.2006", ""); got != "01.03.2026" {
		t.Errorf("date_format on string = %q", got)
	}
	if got := render(t, value.String("not a date"), "date_format:02.01.2006", ""); got != "not a date" {
		t.Errorf("non-date passes through = %q", got)
	}
}

func TestStringSpecifiers(t *testing.T) {
	tests := []struct {
		v    value.Value
		spec string
		want string
	}{
		{value.String("x"), "prefix:'№ '", "№ x"},
		{value.String(""), "prefix:'№ '", ""},
		{value.String("x"), "postfix:' шт.'", "x шт."},
		{value.String(""), "default:—", "—"},
		{value.String("keep"), "default:—", "keep"},
		{value.String("a-b-c"), "replace:-:_", "a_b_c"},
		{value.String("долгое название"), "truncate:6:…", "долгое…"},
		{value.String("  a   b  "), "compact", "a b"},
		{value.String("abc"), "upper", "ABC"},
		{value.String("ABC"), "lower", "abc"},
		{value.String("89991234567"), "ru_phone", "+7 (999) 123-45-67"},
		{value.String("hello"), "ru_phone", "hello"},
	}
	for _, tt := range tests {
		if got := render(t, tt.v, tt.spec, ""); got != tt.want {
			t.Errorf("%q %q = %q, want %q", tt.v, tt.spec, got, tt.want)
		}
	}
}

func TestPluralForms(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{1, "день"}, {2, "дня"}, {5, "дней"},
		{11, "дней"}, {21, "день"}, {104, "дня"},
	}
	for _, tt := range tests {
		got := render(t, value.Integer(tt.n), "plural:день:дня:дней", "")
		if got != tt.want {
			t.Errorf("plural(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestRomanAndPadding(t *testing.T) {
	if got := render(t, value.Integer(14), "roman", ""); got != "XIV" {
		t.Errorf("roman = %q", got)
	}
	if got := render(t, value.Integer(1999), "roman", ""); got != "MCMXCIX" {
		t.Errorf("roman 1999 = %q", got)
	}
	if got := render(t, value.Integer(42), "pad_left:5:0", ""); got != "00042" {
		t.Errorf("pad_left = %q", got)
	}
	if got := render(t, value.Integer(42), "pad_right:4:_", ""); got != "42__" {
		t.Errorf("pad_right = %q", got)
	}
}

func TestMoney(t *testing.T) {
	if got := render(t, value.Float(1234.56), "money", ""); got != "1,234.56" {
		t.Errorf("money = %q", got)
	}
	if got := render(t, value.Float(1234.56), "money:int", ""); got != "1,234" {
		t.Errorf("money int = %q", got)
	}
}

func TestSign(t *testing.T) {
	if got := render(t, value.Integer(5), "sign", ""); got != "+5" {
		t.Errorf("sign(5) = %q", got)
	}
	if got := render(t, value.Integer(-3), "sign", ""); got != "-3" {
		t.Errorf("sign(-3) = %q", got)
	}
}

func TestDeclension(t *testing.T) {
	tests := []struct {
		fio      string
		caseName string
		layout   string
		want     string
	}{
		{"Петрова Анна Сергеевна", "родительный", "ф и о", "Петровой Анны Сергеевны"},
		{"Петрова Анна Сергеевна", "дательный", "ф и о", "Петровой Анне Сергеевне"},
		{"Петрова Анна Сергеевна", "винительный", "ф и о", "Петрову Анну Сергеевну"},
		{"Петрова Анна Сергеевна", "творительный", "ф и о", "Петровой Анной Сергеевной"},
		{"Иванов Иван Иванович", "родительный", "ф и о", "Иванова Ивана Ивановича"},
		{"Иванов Иван Иванович", "дательный", "ф и.о.", "Иванову И.И."},
	}
	for _, tt := range tests {
		out, err := Declension(value.String(tt.fio), []string{tt.caseName, tt.layout}, fcFor(""))
		if err != nil {
			t.Fatalf("declension: %v", err)
		}
		if got := out.Text(); got != tt.want {
			t.Errorf("decl(%s, %s, %s) = %q, want %q", tt.fio, tt.caseName, tt.layout, got, tt.want)
		}
	}
}

func TestDeclensionPreparedForms(t *testing.T) {
	m := value.NewMapping()
	m.Set("last_dat", value.String("Сидорову"))
	m.Set("first_dat", value.String("Петру"))
	m.Set("middle_dat", value.String("Алексеевичу"))
	out, err := Declension(m, []string{"дательный", "ф и о"}, fcFor(""))
	if err != nil {
		t.Fatal(err)
	}
	if got := out.Text(); got != "Сидорову Петру Алексеевичу" {
		t.Errorf("prepared = %q", got)
	}
}
