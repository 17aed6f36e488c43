package value

import (
	"testing"
	"time"
)

func TestFromGoScalars(t *testing.T) {
	if FromGo(nil).Kind() != KindNull {
		t.Error("nil should be Null")
	}
	if FromGo(true) != Bool(true) {
		t.Error("bool")
	}
	if FromGo(42) != Integer(42) {
		t.Error("int")
	}
	if FromGo(int64(42)) != Integer(42) {
		t.Error("int64")
	}
	if FromGo(1.5) != Float(1.5) {
		t.Error("float64")
	}
	if FromGo("s") != String("s") {
		t.Error("string")
	}
	now := time.Now()
	dt, ok := FromGo(now).(DateTime)
	if !ok || !dt.T.Equal(now) {
		t.Error("time.Time")
	}
}

func TestFromGoMapIsSortedAndNested(t *testing.T) {
	m, ok := FromGo(map[string]any{
		"b": 2,
		"a": []any{map[string]any{"x": "y"}},
	}).(*Mapping)
	if !ok {
		t.Fatal("map[string]any should become *Mapping")
	}
	keys := m.Keys()
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Errorf("keys = %v", keys)
	}
	seq, _ := m.Get("a")
	inner, ok := seq.(Sequence)
	if !ok || len(inner) != 1 {
		t.Fatalf("a = %#v", seq)
	}
	if _, ok := inner[0].(*Mapping); !ok {
		t.Errorf("nested element = %#v", inner[0])
	}
}

type order struct {
	Amount int
	Label  string
}

func TestFromGoStructBecomesRecord(t *testing.T) {
	v := FromGo(order{Amount: 5, Label: "l"})
	rec, ok := v.(RecordValue)
	if !ok {
		t.Fatalf("struct = %#v", v)
	}
	got, ok := rec.Rec.FieldByName("amount")
	if !ok || got != Integer(5) {
		t.Errorf("amount = %v, %v", got, ok)
	}
	if _, ok := rec.Rec.FieldByName("nope"); ok {
		t.Error("unknown field should miss")
	}
}

func TestFromGoTypedSlices(t *testing.T) {
	seq, ok := FromGo([]string{"a", "b"}).(Sequence)
	if !ok || len(seq) != 2 || seq[0] != String("a") {
		t.Errorf("[]string = %#v", seq)
	}
	seq, ok = FromGo([]int{1, 2, 3}).(Sequence)
	if !ok || len(seq) != 3 || seq[2] != Integer(3) {
		t.Errorf("[]int = %#v", seq)
	}
	// The reflection fallback covers slices of concrete struct types.
	seq, ok = FromGo([]order{{Amount: 1}}).(Sequence)
	if !ok || len(seq) != 1 {
		t.Fatalf("[]order = %#v", seq)
	}
	if _, ok := seq[0].(RecordValue); !ok {
		t.Errorf("element = %#v", seq[0])
	}
}
