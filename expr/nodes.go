package expr

import (
	"fmt"
	"strings"
	"time"

	"docxtpl/value"
)

type litNode struct{ v value.Value }

func (n *litNode) eval(EvalContext) (value.Value, error) { return n.v, nil }

type identNode struct{ path value.PropertyPath }

func (n *identNode) eval(ctx EvalContext) (value.Value, error) {
	// Unknown identifiers resolve to Null.
	v, ok := ctx.Resolve(n.path)
	if !ok {
		return value.Null{}, nil
	}
	return v, nil
}

type notNode struct{ inner Node }

func (n *notNode) eval(ctx EvalContext) (value.Value, error) {
	v, err := n.inner.eval(ctx)
	if err != nil {
		return nil, err
	}
	return value.Bool(!v.Truthy()), nil
}

type andNode struct{ left, right Node }

func (n *andNode) eval(ctx EvalContext) (value.Value, error) {
	l, err := n.left.eval(ctx)
	if err != nil {
		return nil, err
	}
	// Short-circuit: a false left side never evaluates the right side, so
	// `{{#if false and MISSING}}` never trips a missing-variable failure.
	if !l.Truthy() {
		return value.Bool(false), nil
	}
	r, err := n.right.eval(ctx)
	if err != nil {
		return nil, err
	}
	return value.Bool(r.Truthy()), nil
}

type orNode struct{ left, right Node }

func (n *orNode) eval(ctx EvalContext) (value.Value, error) {
	l, err := n.left.eval(ctx)
	if err != nil {
		return nil, err
	}
	if l.Truthy() {
		return value.Bool(true), nil
	}
	r, err := n.right.eval(ctx)
	if err != nil {
		return nil, err
	}
	return value.Bool(r.Truthy()), nil
}

type relNode struct {
	op          string
	left, right Node
}

func (n *relNode) eval(ctx EvalContext) (value.Value, error) {
	l, err := n.left.eval(ctx)
	if err != nil {
		return nil, err
	}
	r, err := n.right.eval(ctx)
	if err != nil {
		return nil, err
	}

	cmp, err := compare(l, r)
	if err != nil {
		return nil, err
	}

	switch n.op {
	case "==", "=":
		return value.Bool(cmp == 0), nil
	case "!=":
		return value.Bool(cmp != 0), nil
	case ">":
		return value.Bool(cmp > 0), nil
	case ">=":
		return value.Bool(cmp >= 0), nil
	case "<":
		return value.Bool(cmp < 0), nil
	case "<=":
		return value.Bool(cmp <= 0), nil
	default:
		return nil, fmt.Errorf("unknown relational operator %q", n.op)
	}
}

// compare coerces per shape: numeric vs numeric compares numerically,
// DateTime vs DateTime compares chronologically, otherwise ordinal string
// comparison. A string on either side forces string comparison — "5" is
// never auto-coerced against 5.
func compare(l, r value.Value) (int, error) {
	lf, lok := asFloat(l)
	rf, rok := asFloat(r)
	_, lIsString := l.(value.String)
	_, rIsString := r.(value.String)

	if lok && rok && !lIsString && !rIsString {
		switch {
		case lf < rf:
			return -1, nil
		case lf > rf:
			return 1, nil
		default:
			return 0, nil
		}
	}

	if ldt, lok := l.(value.DateTime); lok {
		if rdt, rok := r.(value.DateTime); rok {
			return compareTime(ldt.T, rdt.T), nil
		}
	}

	ls, rs := asString(l), asString(r)
	return strings.Compare(ls, rs), nil
}

func compareTime(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}

func asFloat(v value.Value) (float64, bool) {
	switch x := v.(type) {
	case value.Integer:
		return float64(x), true
	case value.Float:
		return float64(x), true
	case value.Decimal:
		if x.Rat == nil {
			return 0, false
		}
		f, _ := x.Rat.Float64()
		return f, true
	default:
		return 0, false
	}
}

func asString(v value.Value) string {
	switch x := v.(type) {
	case value.String:
		return string(x)
	case value.Null:
		return ""
	case value.Bool:
		if x {
			return "True"
		}
		return "False"
	default:
		return fmt.Sprint(v)
	}
}
