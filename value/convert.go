package value

import (
	"math/big"
	"reflect"
	"sort"
	"time"
)

// FromGo converts a host Go value into the engine's Value variant. Maps
// become Mappings (keys sorted for deterministic iteration), slices
// become Sequences, time.Time becomes DateTime, *big.Rat becomes Decimal,
// and anything implementing Record is wrapped as-is. Other types go
// through reflection: arbitrary slices, string-keyed maps, structs (as
// Records) and basic kinds are converted; anything else, such as a map
// with non-string keys, becomes Null.
func FromGo(v any) Value {
	switch x := v.(type) {
	case nil:
		return Null{}
	case Value:
		return x
	case Record:
		return NewRecord(x)
	case bool:
		return Bool(x)
	case string:
		return String(x)
	case int:
		return Integer(x)
	case int8:
		return Integer(x)
	case int16:
		return Integer(x)
	case int32:
		return Integer(x)
	case int64:
		return Integer(x)
	case uint:
		return Integer(x)
	case uint8:
		return Integer(x)
	case uint16:
		return Integer(x)
	case uint32:
		return Integer(x)
	case uint64:
		return Integer(int64(x))
	case float32:
		return Float(x)
	case float64:
		return Float(x)
	case time.Time:
		return NewDateTime(x)
	case *time.Time:
		if x == nil {
			return Null{}
		}
		return NewDateTime(*x)
	case *big.Rat:
		if x == nil {
			return Null{}
		}
		return NewDecimal(x)
	case map[string]any:
		return mappingFromGo(x)
	case map[string]string:
		m := NewMapping()
		for _, k := range sortedKeys(x) {
			m.Set(k, String(x[k]))
		}
		return m
	case []any:
		seq := make(Sequence, len(x))
		for i, e := range x {
			seq[i] = FromGo(e)
		}
		return seq
	case []map[string]any:
		seq := make(Sequence, len(x))
		for i, e := range x {
			seq[i] = mappingFromGo(e)
		}
		return seq
	case []string:
		seq := make(Sequence, len(x))
		for i, e := range x {
			seq[i] = String(e)
		}
		return seq
	case []int:
		seq := make(Sequence, len(x))
		for i, e := range x {
			seq[i] = Integer(e)
		}
		return seq
	}

	return fromReflect(reflect.ValueOf(v))
}

func mappingFromGo(x map[string]any) *Mapping {
	m := NewMapping()
	keys := make([]string, 0, len(x))
	for k := range x {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		m.Set(k, FromGo(x[k]))
	}
	return m
}

func sortedKeys(x map[string]string) []string {
	keys := make([]string, 0, len(x))
	for k := range x {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// fromReflect covers the long tail: arbitrary slices, string-keyed maps,
// and structs, which become Records resolved by exported field name.
func fromReflect(rv reflect.Value) Value {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null{}
		}
		return fromReflect(rv.Elem())
	case reflect.Slice, reflect.Array:
		seq := make(Sequence, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			seq[i] = FromGo(rv.Index(i).Interface())
		}
		return seq
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return Null{}
		}
		m := NewMapping()
		keys := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		for _, k := range keys {
			m.Set(k, FromGo(rv.MapIndex(reflect.ValueOf(k)).Interface()))
		}
		return m
	case reflect.Struct:
		return NewRecord(structRecord{rv: rv})
	case reflect.Bool:
		return Bool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Integer(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Integer(int64(rv.Uint()))
	case reflect.Float32, reflect.Float64:
		return Float(rv.Float())
	case reflect.String:
		return String(rv.String())
	default:
		return Null{}
	}
}

// structRecord resolves struct fields case-insensitively, giving plain
// host structs the same lookup behavior as a hand-implemented Record.
type structRecord struct {
	rv reflect.Value
}

func (s structRecord) FieldByName(name string) (Value, bool) {
	t := s.rv.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if equalFold(f.Name, name) {
			return FromGo(s.rv.Field(i).Interface()), true
		}
	}
	return Null{}, false
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
