package evalctx

import (
	"testing"

	"docxtpl/value"
)

func mapOf(pairs ...any) *value.Mapping {
	m := value.NewMapping()
	for i := 0; i < len(pairs); i += 2 {
		m.Set(pairs[i].(string), pairs[i+1].(value.Value))
	}
	return m
}

func TestGlobalResolve(t *testing.T) {
	g := NewGlobal(mapOf("A", value.String("x")))
	v, ok := g.Resolve(value.ParsePath("A"))
	if !ok || v != value.String("x") {
		t.Errorf("A = %v, %v", v, ok)
	}
	if _, ok := g.Resolve(value.ParsePath("B")); ok {
		t.Error("B should not resolve")
	}
	if g.Parent() != nil {
		t.Error("global has no parent")
	}
}

func TestLoopMetadata(t *testing.T) {
	g := NewGlobal(mapOf())
	l := NewLoop(value.String("item"), 1, 3, "Items", g)

	tests := []struct {
		path string
		want value.Value
	}{
		{"@index", value.Integer(1)},
		{"@first", value.Bool(false)},
		{"@last", value.Bool(false)},
		{"@count", value.Integer(3)},
		{".", value.String("item")},
		{"this", value.String("item")},
	}
	for _, tt := range tests {
		v, ok := l.Resolve(value.ParsePath(tt.path))
		if !ok || v != tt.want {
			t.Errorf("%s = %v, %v; want %v", tt.path, v, ok, tt.want)
		}
	}

	first := NewLoop(value.String("a"), 0, 2, "Items", g)
	if v, _ := first.Resolve(value.ParsePath("@first")); v != value.Bool(true) {
		t.Error("@first should be true at index 0")
	}
	last := NewLoop(value.String("b"), 1, 2, "Items", g)
	if v, _ := last.Resolve(value.ParsePath("@last")); v != value.Bool(true) {
		t.Error("@last should be true at the final index")
	}
}

func TestLoopItemFieldsAndParentFallback(t *testing.T) {
	g := NewGlobal(mapOf("Company", value.String("Acme"), "A", value.String("out")))
	item := mapOf("Name", value.String("Eng"), "A", value.String("in"))
	l := NewLoop(item, 0, 1, "Depts", g)

	// Item fields resolve in the loop frame.
	if v, _ := l.Resolve(value.ParsePath("Name")); v != value.String("Eng") {
		t.Errorf("Name = %v", v)
	}
	// Names the item doesn't bind fall back to the parent.
	if v, _ := l.Resolve(value.ParsePath("Company")); v != value.String("Acme") {
		t.Errorf("Company = %v", v)
	}
	// An inner name masks an outer name with no escape back out.
	if v, _ := l.Resolve(value.ParsePath("A")); v != value.String("in") {
		t.Errorf("A = %v, want the inner binding", v)
	}
}

func TestNestedLoopFrames(t *testing.T) {
	g := NewGlobal(mapOf("Company", value.String("Acme")))
	dept := mapOf("Name", value.String("Eng"))
	outer := NewLoop(dept, 0, 1, "Depts", g)
	emp := mapOf("N", value.String("A"))
	inner := NewLoop(emp, 0, 2, "Emps", outer)

	if v, _ := inner.Resolve(value.ParsePath("N")); v != value.String("A") {
		t.Errorf("N = %v", v)
	}
	if v, _ := inner.Resolve(value.ParsePath("Name")); v != value.String("Eng") {
		t.Errorf("Name = %v", v)
	}
	if v, _ := inner.Resolve(value.ParsePath("Company")); v != value.String("Acme") {
		t.Errorf("Company = %v", v)
	}
	// Inner loop metadata shadows the outer loop's.
	if v, _ := inner.Resolve(value.ParsePath("@count")); v != value.Integer(2) {
		t.Errorf("@count = %v", v)
	}
	if inner.RootData() != g.RootData() {
		t.Error("RootData should reach the global frame")
	}
}

func TestThisWithFieldPath(t *testing.T) {
	g := NewGlobal(mapOf())
	item := mapOf("X", value.Integer(9))
	l := NewLoop(item, 0, 1, "L", g)
	if v, _ := l.Resolve(value.ParsePath("this.X")); v != value.Integer(9) {
		t.Errorf("this.X = %v", v)
	}
}
