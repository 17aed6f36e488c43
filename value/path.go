package value

import "strconv"

// PathSegment is one step of a PropertyPath: either a bare name
// (".Foo", used for Mapping keys and Record fields) or an indexer
// ("[Foo]"/"[2]", used for Sequence/Mapping access).
type PathSegment struct {
	Text    string
	IsIndex bool
}

// PropertyPath is an ordered sequence of segments produced by parsing the
// placeholder text before the optional ":" format specifier.
type PropertyPath []PathSegment

// ParsePath parses a dotted/indexed path such as "Orders[0].Amount" or
// "Items.first_name" into a PropertyPath. It never fails: a malformed
// fragment is folded into the nearest name segment, leaving failure to
// resolution, which treats anything it cannot follow as a miss.
func ParsePath(s string) PropertyPath {
	var path PropertyPath
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			path = append(path, PathSegment{Text: string(cur)})
			cur = nil
		}
	}
	i := 0
	runes := []rune(s)
	for i < len(runes) {
		r := runes[i]
		switch r {
		case '.':
			flush()
			i++
		case '[':
			flush()
			j := i + 1
			for j < len(runes) && runes[j] != ']' {
				j++
			}
			inner := string(runes[i+1 : j])
			path = append(path, PathSegment{Text: trimQuotes(inner), IsIndex: true})
			if j < len(runes) {
				j++
			}
			i = j
		default:
			cur = append(cur, r)
			i++
		}
	}
	flush()
	return path
}

func trimQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// Resolve navigates root by path, applying the segment rules left-to-right
// with short-circuit on a missing segment. It never fails — a missing
// segment simply yields (Null{}, false).
func Resolve(root Value, path PropertyPath) (Value, bool) {
	if len(path) == 0 {
		return root, true
	}

	// Fast path: a single-segment name against a top-level Mapping.
	if len(path) == 1 && !path[0].IsIndex {
		if m, ok := root.(*Mapping); ok {
			if v, found := m.Get(path[0].Text); found {
				return v, true
			}
		}
	}

	cur := root
	for _, seg := range path {
		next, ok := resolveSegment(cur, seg)
		if !ok {
			return Null{}, false
		}
		cur = next
	}
	return cur, true
}

func resolveSegment(cur Value, seg PathSegment) (Value, bool) {
	switch v := cur.(type) {
	case *Mapping:
		// Name and string-indexer behave identically on a Mapping:
		// case-sensitive key lookup, no integer keys.
		return v.Get(seg.Text)

	case Sequence:
		if !seg.IsIndex {
			// "Name on Sequence" → None; sequences require an indexer.
			return Null{}, false
		}
		n, err := strconv.Atoi(seg.Text)
		if err != nil {
			return Null{}, false
		}
		if n < 0 || n >= len(v) {
			return Null{}, false
		}
		return v[n], true

	case RecordValue:
		if v.Rec == nil {
			return Null{}, false
		}
		// Name and string-indexer both do a case-insensitive field lookup.
		return v.Rec.FieldByName(seg.Text)

	default:
		return Null{}, false
	}
}
