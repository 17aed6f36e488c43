package value

import "testing"

func mapOf(pairs ...any) *Mapping {
	m := NewMapping()
	for i := 0; i < len(pairs); i += 2 {
		m.Set(pairs[i].(string), pairs[i+1].(Value))
	}
	return m
}

func TestParsePath(t *testing.T) {
	tests := []struct {
		in   string
		want []PathSegment
	}{
		{"Name", []PathSegment{{Text: "Name"}}},
		{"a.b.c", []PathSegment{{Text: "a"}, {Text: "b"}, {Text: "c"}}},
		{"Orders[0].Amount", []PathSegment{
			{Text: "Orders"}, {Text: "0", IsIndex: true}, {Text: "Amount"}}},
		{`Items["key"]`, []PathSegment{
			{Text: "Items"}, {Text: "key", IsIndex: true}}},
		{"@index", []PathSegment{{Text: "@index"}}},
	}
	for _, tt := range tests {
		got := ParsePath(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("ParsePath(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("ParsePath(%q)[%d] = %v, want %v", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}

func TestResolveMapping(t *testing.T) {
	root := mapOf(
		"A", String("x"),
		"Nested", mapOf("B", Integer(7)),
	)

	v, ok := Resolve(root, ParsePath("A"))
	if !ok || v != String("x") {
		t.Errorf("A = %v, %v", v, ok)
	}

	v, ok = Resolve(root, ParsePath("Nested.B"))
	if !ok || v != Integer(7) {
		t.Errorf("Nested.B = %v, %v", v, ok)
	}

	// Mapping keys are case-sensitive.
	if _, ok := Resolve(root, ParsePath("a")); ok {
		t.Error("lowercase key should not resolve")
	}

	if _, ok := Resolve(root, ParsePath("Missing")); ok {
		t.Error("missing key should not resolve")
	}
}

func TestResolveSequence(t *testing.T) {
	root := mapOf("Items", Sequence{String("a"), String("b")})

	v, ok := Resolve(root, ParsePath("Items[1]"))
	if !ok || v != String("b") {
		t.Errorf("Items[1] = %v, %v", v, ok)
	}

	// Out of range is a miss, not a panic.
	if _, ok := Resolve(root, ParsePath("Items[2]")); ok {
		t.Error("out-of-range index should not resolve")
	}
	if _, ok := Resolve(root, ParsePath("Items[-1]")); ok {
		t.Error("negative index should not resolve")
	}

	// A bare name on a sequence requires an indexer.
	if _, ok := Resolve(root, ParsePath("Items.a")); ok {
		t.Error("name segment on sequence should not resolve")
	}
}

type hostRecord struct{ fields map[string]Value }

func (r hostRecord) FieldByName(name string) (Value, bool) {
	for k, v := range r.fields {
		if equalFold(k, name) {
			return v, true
		}
	}
	return Null{}, false
}

func TestResolveRecord(t *testing.T) {
	root := mapOf("Rec", NewRecord(hostRecord{fields: map[string]Value{"Name": String("n")}}))

	// Record fields resolve case-insensitively, unlike Mapping keys.
	for _, path := range []string{"Rec.Name", "Rec.name", "Rec[name]"} {
		v, ok := Resolve(root, ParsePath(path))
		if !ok || v != String("n") {
			t.Errorf("%s = %v, %v", path, v, ok)
		}
	}
	if _, ok := Resolve(root, ParsePath("Rec.Other")); ok {
		t.Error("missing record field should not resolve")
	}
}

func TestResolveEmptyPathReturnsRoot(t *testing.T) {
	root := String("x")
	v, ok := Resolve(root, nil)
	if !ok || v != root {
		t.Errorf("empty path = %v, %v", v, ok)
	}
}

func TestTruthiness(t *testing.T) {
	tests := []struct {
		v    Value
		want bool
	}{
		{Null{}, false},
		{Bool(true), true},
		{Bool(false), false},
		{Integer(0), false},
		{Integer(3), true},
		{Float(0), false},
		{String(""), false},
		{String("x"), true},
		{Sequence{}, false},
		{Sequence{Null{}}, true},
		{NewMapping(), false},
		{mapOf("k", Integer(1)), true},
	}
	for _, tt := range tests {
		if got := tt.v.Truthy(); got != tt.want {
			t.Errorf("Truthy(%#v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}
