package ingest

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"

	"github.com/odrlcore/odrlengine/pkg/odrl/action"
	"github.com/odrlcore/odrlengine/pkg/odrl/constraint"
	"github.com/odrlcore/odrlengine/pkg/odrl/normalize"
	"github.com/odrlcore/odrlengine/pkg/odrl/operator"
	"github.com/odrlcore/odrlengine/pkg/odrl/policy"
	"github.com/odrlcore/odrlengine/pkg/odrl/value"
	"github.com/odrlcore/odrlengine/pkg/odrlerr"
)

// operatorFromString casts a raw operator string onto the closed Operator
// type without checking it. An atomic constraint's operator has already
// been checked against the recognized set by the validate tag on
// RawConstraintNode.Operator (see mapAtomicConstraint); a logic
// constraint's operator comes from which and/or/xone/andSequence key the
// node used.
func operatorFromString(s string) operator.Operator {
	return operator.Operator(s)
}

var validate = validator.New()

// typeToVariant dispatches an ODRL @type IRI or bare term onto a Variant,
// the ModelFactory step spec.md §4.7 step 3 describes. An unrecognized
// @type falls back to Set, the least specific variant, rather than
// rejecting the document outright — only Agreement and Offer carry
// mandatory-field validation (policy.ValidateAgreement/ValidateOffer), so
// treating an unknown type as Set cannot silently grant more than a Set
// would.
func typeToVariant(types []string) policy.Variant {
	for _, t := range types {
		switch action.FromIRI(t) {
		case "Agreement":
			return policy.VariantAgreement
		case "Offer":
			return policy.VariantOffer
		case "Privacy":
			return policy.VariantPrivacy
		case "Request":
			return policy.VariantRequest
		case "Assert":
			return policy.VariantAssert
		case "Ticket":
			return policy.VariantTicket
		case "Set", "Policy":
			return policy.VariantSet
		}
	}
	return policy.VariantSet
}

// Build maps raw into a Policy AST, dispatching by @type (spec.md §4.7
// step 3). It does not run the normalizer: rules keep only the parties and
// targets they declare themselves. Decode calls Build and then normalizes.
// Steps 1-2 (JSON-LD expansion and compaction under the ODRL context) are
// assumed to have already happened upstream of this package.
func Build(raw RawPolicy) (*policy.Policy, error) {
	if err := validate.Struct(raw); err != nil {
		return nil, odrlerr.Wrap(odrlerr.KindInvalidRuleDefinition, "raw policy failed validation", err)
	}
	if raw.UID != "" {
		if err := policy.ValidateIRI(string(raw.UID)); err != nil {
			return nil, err
		}
	}

	p := &policy.Policy{
		UID:         string(raw.UID),
		Variant:     typeToVariant(raw.Type),
		Profile:     []string(raw.Profile),
		DefaultAssignee: string(raw.Assignee),
		DefaultAssigner: string(raw.Assigner),
		DefaultTarget:   string(raw.Target),
		Conflict:        conflictFromString(raw.Conflict),
		InheritFrom:     string(raw.InheritFrom),
	}

	if len(raw.Action) > 0 {
		a, err := mapAction(raw.Action[0])
		if err != nil {
			return nil, err
		}
		p.DefaultAction = &a
	}

	var err error
	if p.Permission, err = mapRules(policy.KindPermission, raw.Permission); err != nil {
		return nil, err
	}
	if p.Prohibition, err = mapRules(policy.KindProhibition, raw.Prohibition); err != nil {
		return nil, err
	}
	if p.Obligation, err = mapRules(policy.KindDuty, raw.Obligation); err != nil {
		return nil, err
	}

	if len(p.Permission)+len(p.Prohibition)+len(p.Obligation) == 0 {
		return nil, odrlerr.New(odrlerr.KindNoneRuleDefinition, "policy has no permission, prohibition, or obligation rules").WithSubject(p.UID)
	}

	return p, nil
}

// Decode parses a JSON-LD-compacted ODRL policy document and maps it onto
// the Policy AST, including the normalization step (spec.md §4.7 step 4).
func Decode(data []byte) (*policy.Policy, error) {
	var raw RawPolicy
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, odrlerr.Wrap(odrlerr.KindParse, "not a valid policy document", err)
	}
	p, err := Build(raw)
	if err != nil {
		return nil, err
	}
	normalize.Normalize(p)
	return p, nil
}

func conflictFromString(s string) policy.ConflictStrategy {
	switch policy.ConflictStrategy(s) {
	case policy.ConflictProhibit:
		return policy.ConflictProhibit
	case policy.ConflictInvalid:
		return policy.ConflictInvalid
	default:
		return policy.ConflictPerm
	}
}

func mapRules(kind policy.RuleKind, raws []RawRule) ([]*policy.Rule, error) {
	rules := make([]*policy.Rule, 0, len(raws))
	for _, raw := range raws {
		r, err := mapRule(kind, raw)
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return rules, nil
}

func mapRule(kind policy.RuleKind, raw RawRule) (*policy.Rule, error) {
	r := &policy.Rule{
		UID:      raw.UID,
		Kind:     kind,
		Target:   string(raw.Target),
		Assigner: string(raw.Assigner),
		Assignee: string(raw.Assignee),
	}

	for _, ra := range raw.Action {
		a, err := mapAction(ra)
		if err != nil {
			return nil, err
		}
		r.Actions = append(r.Actions, a)
	}

	cs, err := mapConstraints(raw.Constraint)
	if err != nil {
		return nil, err
	}
	r.Constraints = cs

	if kind == policy.KindPermission {
		r.Duty, err = mapRules(policy.KindDuty, raw.Duty)
		if err != nil {
			return nil, err
		}
		r.Consequence, err = mapRules(policy.KindPermission, raw.Consequence)
		if err != nil {
			return nil, err
		}
	}
	if kind == policy.KindProhibition {
		r.Remedy, err = mapRules(policy.KindDuty, raw.Remedy)
		if err != nil {
			return nil, err
		}
	}

	return r, nil
}

func mapAction(raw RawAction) (policy.Action, error) {
	iri := raw.IRI()
	if iri == "" {
		return policy.Action{}, odrlerr.New(odrlerr.KindInvalidRuleDefinition, "action has no identifying iri")
	}
	a := policy.Action{Type: action.FromIRI(iri)}
	for _, inc := range raw.IncludedIn {
		a.IncludedIn = append(a.IncludedIn, action.FromIRI(string(inc)))
	}
	for _, imp := range raw.Implies {
		a.Implies = append(a.Implies, action.FromIRI(string(imp)))
	}
	refs, err := mapConstraints(raw.Refinement)
	if err != nil {
		return policy.Action{}, err
	}
	a.Refinements = refs
	return a, nil
}

func mapConstraints(raws []RawConstraintNode) ([]constraint.Evaluable, error) {
	out := make([]constraint.Evaluable, 0, len(raws))
	for _, raw := range raws {
		e, err := mapConstraintNode(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func mapConstraintNode(raw RawConstraintNode) (constraint.Evaluable, error) {
	if raw.IsLogic() {
		return mapLogicConstraint(raw)
	}
	return mapAtomicConstraint(raw)
}

func mapLogicConstraint(raw RawConstraintNode) (constraint.Evaluable, error) {
	var op string
	var children []RawConstraintNode
	switch {
	case len(raw.And) > 0:
		op, children = "and", raw.And
	case len(raw.Or) > 0:
		op, children = "or", raw.Or
	case len(raw.Xone) > 0:
		op, children = "xone", raw.Xone
	case len(raw.AndSequence) > 0:
		op, children = "andSequence", raw.AndSequence
	}

	operands, err := mapConstraints(children)
	if err != nil {
		return nil, err
	}
	return &constraint.LogicConstraint{
		UID:      raw.UID,
		Operator: operatorFromString(op),
		Operands: operands,
	}, nil
}

func mapAtomicConstraint(raw RawConstraintNode) (constraint.Evaluable, error) {
	if err := validate.Struct(raw); err != nil {
		return nil, odrlerr.Wrap(odrlerr.KindInvalidRuleDefinition, "constraint failed validation", err).WithSubject(raw.UID)
	}
	c := &constraint.Constraint{
		UID:         raw.UID,
		LeftOperand: constraint.LeftOperand(raw.LeftOperand),
		Operator:    operatorFromString(raw.Operator),
		Unit:        raw.Unit,
	}

	if raw.Status != "" {
		status := raw.Status
		c.Status = &status
	}

	if raw.DataType != "" {
		dt, err := value.ParseDataType(raw.DataType)
		if err != nil {
			return nil, err
		}
		c.DataType = dt
	}

	if constraint.LeftOperand(raw.LeftOperand) == constraint.TimeWindow {
		win, err := constraint.ParseSlide(raw.Slide)
		if err != nil {
			return nil, err
		}
		c.Window = &win
	}

	right, err := mapRightOperand(raw)
	if err != nil {
		return nil, err
	}
	c.Right = right

	return c, nil
}

func mapRightOperand(raw RawConstraintNode) (constraint.RightOperand, error) {
	if raw.RightOperandReference != "" {
		return constraint.Ref(string(raw.RightOperandReference)), nil
	}
	if len(raw.RightOperand) == 0 {
		return constraint.RightOperand{}, nil
	}

	var asSet []string
	if err := json.Unmarshal(raw.RightOperand, &asSet); err == nil {
		return constraint.LitSet(asSet), nil
	}
	var asScalar string
	if err := json.Unmarshal(raw.RightOperand, &asScalar); err != nil {
		return constraint.RightOperand{}, odrlerr.Wrap(odrlerr.KindParse, "right operand is neither a literal nor a literal set", err).WithSubject(raw.UID)
	}
	return constraint.Lit(asScalar), nil
}
