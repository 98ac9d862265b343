// Package odrlerr defines the classified error taxonomy used across the
// ODRL ingestion, validation, and evaluation pipeline.
package odrlerr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the purposes of propagation policy: ingestion
// and validation errors abort handle construction, while evaluation errors
// are swallowed into a boolean false at the constraint-engine boundary.
type Kind string

const (
	// KindInvalidIRI indicates a string failed RFC 3987 IRI validation.
	KindInvalidIRI Kind = "invalid-iri"

	// KindInvalidRuleDefinition indicates a rule is structurally malformed.
	KindInvalidRuleDefinition Kind = "invalid-rule-definition"

	// KindNoneRuleDefinition indicates a policy has no permission,
	// prohibition, or obligation rules at all.
	KindNoneRuleDefinition Kind = "none-rule-definition"

	// KindMissingOfferTarget indicates an Offer policy rule has no target
	// after normalization.
	KindMissingOfferTarget Kind = "missing-offer-target"

	// KindMissingOfferAssigner indicates an Offer policy rule has no
	// assigner after normalization.
	KindMissingOfferAssigner Kind = "missing-offer-assigner"

	// KindMissingAgreementTarget indicates an Agreement policy rule has no
	// target after normalization.
	KindMissingAgreementTarget Kind = "missing-agreement-target"

	// KindMissingAgreementAssigner indicates an Agreement policy rule has
	// no assigner after normalization.
	KindMissingAgreementAssigner Kind = "missing-agreement-assigner"

	// KindMissingAgreementAssignee indicates an Agreement policy rule has
	// no assignee after normalization.
	KindMissingAgreementAssignee Kind = "missing-agreement-assignee"

	// KindInvalidAssetIRI indicates an asset reference is not a valid IRI.
	KindInvalidAssetIRI Kind = "invalid-asset-iri"

	// KindParse indicates a value failed to parse under its declared data type.
	KindParse Kind = "parse"

	// KindResolution indicates a left or right operand could not be resolved.
	KindResolution Kind = "resolution"

	// KindUnsupportedType indicates an unrecognized data type. An
	// unrecognized policy @type is not an error; ingestion maps it to Set.
	KindUnsupportedType Kind = "unsupported-type"

	// KindMissingOperator indicates a constraint has no operator.
	KindMissingOperator Kind = "missing-operator"

	// KindMissingLeftOperand indicates a constraint has no left operand.
	KindMissingLeftOperand Kind = "missing-left-operand"

	// KindMissingRightOperand indicates a constraint has no right operand.
	KindMissingRightOperand Kind = "missing-right-operand"

	// KindUnsupportedOperatorForType indicates an operator does not apply
	// to the constraint's declared data type (e.g. gt on a boolean).
	KindUnsupportedOperatorForType Kind = "unsupported-operator-for-type"
)

// Error is a classified error with enough context for an operator or caller
// to distinguish "this policy is malformed" from "this one constraint could
// not be resolved at runtime".
//
// nolint:revive // Error is intentionally named to distinguish from the
// standard library's error interface.
type Error struct {
	// Kind is the error classification.
	Kind Kind

	// Message is the human-readable description.
	Message string

	// Subject is the IRI or identifier the error concerns, if any.
	Subject string

	// Err is the underlying error that caused this one, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Subject != "" {
		if e.Err != nil {
			return fmt.Sprintf("[%s] %s (%s): %v", e.Kind, e.Message, e.Subject, e.Err)
		}
		return fmt.Sprintf("[%s] %s (%s)", e.Kind, e.Message, e.Subject)
	}
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error for errors.Is/errors.As chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error with the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New constructs a classified error.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap constructs a classified error that wraps an underlying cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// WithSubject attaches the IRI or identifier the error concerns.
func (e *Error) WithSubject(subject string) *Error {
	e.Subject = subject
	return e
}

// KindOf extracts the Kind from err if it is (or wraps) an *Error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// IsKind reports whether err is (or wraps) an *Error of the given Kind.
func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
