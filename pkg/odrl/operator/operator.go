// Package operator implements the comparison, set, and logic operators ODRL
// constraints apply to typed operand values (spec.md §4.2).
package operator

import (
	"math"
	"strings"

	"github.com/odrlcore/odrlengine/pkg/odrl/value"
	"github.com/odrlcore/odrlengine/pkg/odrlerr"
)

// Operator is the closed set of ODRL constraint operators.
type Operator string

const (
	Eq    Operator = "eq"
	Neq   Operator = "neq"
	Gt    Operator = "gt"
	Gteq  Operator = "gteq"
	Lt    Operator = "lt"
	Lteq  Operator = "lteq"

	IsA     Operator = "isA"
	HasPart Operator = "hasPart"
	IsPartOf Operator = "isPartOf"
	IsAllOf  Operator = "isAllOf"
	IsAnyOf  Operator = "isAnyOf"
	IsNoneOf Operator = "isNoneOf"

	And         Operator = "and"
	Or          Operator = "or"
	Xone        Operator = "xone"
	AndSequence Operator = "andSequence"
)

// epsilon is the tolerance used for float equality, per spec.md §4.2.
const epsilon = 2.220446049250313e-16

// Compare applies a comparison operator (eq/neq/gt/gteq/lt/lteq) to two
// values under the given data type. string only supports eq/neq; boolean
// only supports eq/neq; integer, float, date, time, and dateTime support
// the full set.
func Compare(op Operator, left, right value.Value, dt value.DataType) (bool, error) {
	switch dt {
	case value.String:
		return compareString(op, left, right)
	case value.Boolean:
		return compareBoolean(op, left, right)
	case value.Integer:
		return compareInteger(op, left, right)
	case value.Float:
		return compareFloat(op, left, right)
	case value.Date, value.Time, value.DateTime:
		return compareTimestamp(op, left, right, dt)
	default:
		return false, odrlerr.New(odrlerr.KindUnsupportedType, "unsupported data type for comparison").WithSubject(string(dt))
	}
}

func compareString(op Operator, left, right value.Value) (bool, error) {
	switch op {
	case Eq:
		return left.AsScalar() == right.AsScalar(), nil
	case Neq:
		return left.AsScalar() != right.AsScalar(), nil
	default:
		return false, odrlerr.New(odrlerr.KindUnsupportedOperatorForType, "string supports only eq/neq").WithSubject(string(op))
	}
}

func compareBoolean(op Operator, left, right value.Value) (bool, error) {
	l, err := left.ParseBoolean()
	if err != nil {
		return false, err
	}
	r, err := right.ParseBoolean()
	if err != nil {
		return false, err
	}
	switch op {
	case Eq:
		return l == r, nil
	case Neq:
		return l != r, nil
	default:
		return false, odrlerr.New(odrlerr.KindUnsupportedOperatorForType, "boolean supports only eq/neq").WithSubject(string(op))
	}
}

func compareInteger(op Operator, left, right value.Value) (bool, error) {
	l, err := left.ParseInteger()
	if err != nil {
		return false, err
	}
	r, err := right.ParseInteger()
	if err != nil {
		return false, err
	}
	switch op {
	case Eq:
		return l == r, nil
	case Neq:
		return l != r, nil
	case Gt:
		return l > r, nil
	case Gteq:
		return l >= r, nil
	case Lt:
		return l < r, nil
	case Lteq:
		return l <= r, nil
	default:
		return false, odrlerr.New(odrlerr.KindUnsupportedOperatorForType, "unsupported operator for integer").WithSubject(string(op))
	}
}

func compareFloat(op Operator, left, right value.Value) (bool, error) {
	l, err := left.ParseFloat()
	if err != nil {
		return false, err
	}
	r, err := right.ParseFloat()
	if err != nil {
		return false, err
	}
	switch op {
	case Eq:
		return math.Abs(l-r) < epsilon, nil
	case Neq:
		return math.Abs(l-r) >= epsilon, nil
	case Gt:
		return l > r, nil
	case Gteq:
		return l >= r, nil
	case Lt:
		return l < r, nil
	case Lteq:
		return l <= r, nil
	default:
		return false, odrlerr.New(odrlerr.KindUnsupportedOperatorForType, "unsupported operator for float").WithSubject(string(op))
	}
}

func compareTimestamp(op Operator, left, right value.Value, dt value.DataType) (bool, error) {
	l, err := left.ParseTimestamp(dt)
	if err != nil {
		return false, err
	}
	r, err := right.ParseTimestamp(dt)
	if err != nil {
		return false, err
	}
	switch op {
	case Eq:
		return l.Equal(r), nil
	case Neq:
		return !l.Equal(r), nil
	case Gt:
		return l.After(r), nil
	case Gteq:
		return l.After(r) || l.Equal(r), nil
	case Lt:
		return l.Before(r), nil
	case Lteq:
		return l.Before(r) || l.Equal(r), nil
	default:
		return false, odrlerr.New(odrlerr.KindUnsupportedOperatorForType, "unsupported operator for "+string(dt)).WithSubject(string(op))
	}
}

// SetOp applies a set operator. right must be set-valued; left may be
// scalar (treated as a singleton set) or set-valued.
//
// isA, hasPart, and isPartOf are membership tests: every element of left
// must appear in right. isAllOf additionally requires left to be the
// left-hand side of a subset test against right (same truth table as the
// membership operators, kept distinct at the type level because ODRL gives
// them different vocabulary roles: isA classifies a single resource,
// isAllOf is the declared ODRL set-subset operator).
func SetOp(op Operator, left, right value.Value) (bool, error) {
	l := toSet(left)
	r := toSet(right)

	switch op {
	case IsA, HasPart, IsPartOf, IsAllOf:
		return subset(l, r), nil
	case IsAnyOf:
		return intersects(l, r), nil
	case IsNoneOf:
		return !intersects(l, r), nil
	default:
		return false, odrlerr.New(odrlerr.KindUnsupportedOperatorForType, "not a set operator").WithSubject(string(op))
	}
}

func toSet(v value.Value) []string {
	return v.AsSet()
}

func subset(l, r []string) bool {
	set := toLookup(r)
	for _, item := range l {
		if !set[item] {
			return false
		}
	}
	return true
}

func intersects(l, r []string) bool {
	set := toLookup(r)
	for _, item := range l {
		if set[item] {
			return true
		}
	}
	return false
}

func toLookup(items []string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, item := range items {
		m[strings.TrimSpace(item)] = true
	}
	return m
}

// Combine applies and/or/xone truth tables to a slice of already-evaluated
// booleans. andSequence uses the same truth table as and; only the
// evaluation order (the caller's responsibility) differs.
func Combine(op Operator, results []bool) (bool, error) {
	switch op {
	case And, AndSequence:
		for _, r := range results {
			if !r {
				return false, nil
			}
		}
		return true, nil
	case Or:
		for _, r := range results {
			if r {
				return true, nil
			}
		}
		return false, nil
	case Xone:
		count := 0
		for _, r := range results {
			if r {
				count++
			}
		}
		return count == 1, nil
	default:
		return false, odrlerr.New(odrlerr.KindUnsupportedOperatorForType, "not a logic operator").WithSubject(string(op))
	}
}
