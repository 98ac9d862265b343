package constraint

import "github.com/odrlcore/odrlengine/pkg/odrl/value"

// RightOperandKind tags which case of the RightOperand sum type is populated,
// per original_source/src/model/constraint_right_operand.rs.
type RightOperandKind int

const (
	// RightOperandLiteral is a single literal value.
	RightOperandLiteral RightOperandKind = iota
	// RightOperandLiteralSet is a literal set value.
	RightOperandLiteralSet
	// RightOperandReference is an IRI that must be dereferenced against the
	// state world's referredOperand map at evaluation time.
	RightOperandReference
)

// RightOperand is the tagged union a constraint's right-hand side takes:
// a literal, a literal set, or a reference IRI to be dereferenced.
type RightOperand struct {
	Kind      RightOperandKind
	Literal   string
	LiteralSet []string
	Reference string
}

// Lit constructs a literal RightOperand.
func Lit(s string) RightOperand { return RightOperand{Kind: RightOperandLiteral, Literal: s} }

// LitSet constructs a literal-set RightOperand.
func LitSet(items []string) RightOperand {
	return RightOperand{Kind: RightOperandLiteralSet, LiteralSet: items}
}

// Ref constructs a reference RightOperand.
func Ref(iri string) RightOperand { return RightOperand{Kind: RightOperandReference, Reference: iri} }

// resolve turns a RightOperand into a value.Value, dereferencing through w
// when Kind is RightOperandReference. spec.md §4.3 step (ii): "resolving
// the right operand (literal, joined literal-set, or dereferenced
// reference)".
func (r RightOperand) resolve(w World) (value.Value, error) {
	switch r.Kind {
	case RightOperandLiteralSet:
		return value.Set(r.LiteralSet), nil
	case RightOperandReference:
		v, ok := w.ResolveReference(r.Reference)
		if !ok {
			return value.Value{}, missingRightOperand(r.Reference)
		}
		return v, nil
	default:
		return value.Scalar(r.Literal), nil
	}
}
