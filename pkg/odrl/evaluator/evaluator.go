package evaluator

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	odrlaction "github.com/odrlcore/odrlengine/pkg/odrl/action"
	"github.com/odrlcore/odrlengine/pkg/odrl/constraint"
	"github.com/odrlcore/odrlengine/pkg/odrl/normalize"
	"github.com/odrlcore/odrlengine/pkg/odrl/policy"
	"github.com/odrlcore/odrlengine/pkg/odrl/world"
)

// Evaluator resolves requests against policies. It is stateless beyond its
// logger: all mutable evaluation state lives in the *world.World passed to
// Evaluate, so a single Evaluator is safe to reuse and share across
// concurrent evaluations against distinct worlds.
type Evaluator struct {
	logger zerolog.Logger
}

// New constructs an Evaluator with a component-scoped child logger, the
// same pattern the teacher's policy.NewEngine(logger zerolog.Logger) uses.
func New(logger zerolog.Logger) *Evaluator {
	return &Evaluator{logger: logger.With().Str("component", "evaluator").Logger()}
}

// Evaluate runs spec.md §4.5's procedure: validate, normalize, match,
// evaluate constraints, aggregate, and commit callbacks.
func (e *Evaluator) Evaluate(ctx context.Context, p *policy.Policy, w *world.World, req Request) (Decision, error) {
	if err := policy.Validate(p); err != nil {
		return Indeterminate, err
	}
	normalize.Normalize(p)

	switch p.Variant {
	case policy.VariantAgreement:
		if err := policy.ValidateAgreement(p); err != nil {
			return Indeterminate, err
		}
	case policy.VariantOffer:
		if err := policy.ValidateOffer(p); err != nil {
			return Indeterminate, err
		}
	}

	var decision Decision
	switch p.Variant {
	case policy.VariantAgreement, policy.VariantOffer, policy.VariantSet,
		policy.VariantPrivacy, policy.VariantTicket:
		decision = e.evaluateGrant(ctx, p, w, req)
	case policy.VariantRequest, policy.VariantAssert:
		decision = e.evaluateIntent(ctx, p, w, req)
	default:
		// Unimplemented variant: indeterminate, never a silent permit
		// (spec.md §4.5, §7, §9).
		e.logger.Warn().Str("variant", string(p.Variant)).Msg("unimplemented policy variant")
		return Indeterminate, nil
	}

	w.Commit(decision == Permit)
	e.logger.Debug().
		Str("policy", p.UID).
		Str("decision", decision.String()).
		Str("action", req.Action).
		Msg("evaluated request")
	return decision, nil
}

// evaluateGrant implements the aggregation in spec.md §4.5 step 5 for
// variants that grant rights (Agreement, Offer, Set, Privacy, Ticket).
func (e *Evaluator) evaluateGrant(ctx context.Context, p *policy.Policy, w *world.World, req Request) Decision {
	permitted := e.anyHolds(ctx, w, req, p.Permission)
	prohibited := e.anyHolds(ctx, w, req, p.Prohibition)
	obligationsHeld := e.allApplicableHold(ctx, w, req, p.Obligation)

	switch {
	case permitted && prohibited:
		switch p.Conflict {
		case policy.ConflictProhibit:
			return Deny
		case policy.ConflictInvalid:
			return Indeterminate
		default: // perm, the ODRL default
			return Permit
		}
	case prohibited:
		return Deny
	case permitted && obligationsHeld:
		return Permit
	default:
		// Closed-world default (spec.md §8): no matching permission, or
		// unmet obligations, denies.
		return Deny
	}
}

// evaluateIntent implements spec.md §4.5's Request/Assert override: "same
// algorithm, but prohibitions are absent by definition" — these variants
// describe a desire or claim, so only permission and obligation rules are
// considered; any prohibition rules present are not evaluated as denials.
func (e *Evaluator) evaluateIntent(ctx context.Context, p *policy.Policy, w *world.World, req Request) Decision {
	permitted := e.anyHolds(ctx, w, req, p.Permission)
	obligationsHeld := e.allApplicableHold(ctx, w, req, p.Obligation)

	if permitted && obligationsHeld {
		return Permit
	}
	return Deny
}

// anyHolds reports whether any rule in rules fully matches req, including
// its constraints, action refinements, and (for permissions) its duties.
func (e *Evaluator) anyHolds(ctx context.Context, w *world.World, req Request, rules []*policy.Rule) bool {
	for _, r := range rules {
		if e.ruleApplies(ctx, w, req, r) && e.ruleConstraintsHold(ctx, w, r) {
			return true
		}
	}
	return false
}

// allApplicableHold reports whether every rule in rules that applies to
// req (by action and party/target matching, ignoring its own constraints)
// also has its constraints hold. A rule list with no applicable rules
// vacuously holds, per spec.md §4.5 step 5 ("O = all matching obligations
// held").
func (e *Evaluator) allApplicableHold(ctx context.Context, w *world.World, req Request, rules []*policy.Rule) bool {
	for _, r := range rules {
		if e.ruleApplies(ctx, w, req, r) && !e.ruleConstraintsHold(ctx, w, r) {
			return false
		}
	}
	return true
}

// ruleApplies checks spec.md §4.5 step 3: action subsumption plus exact
// IRI match (after canonicalization) of target/assigner/assignee, treating
// an unset rule-side field (neither declared on the rule nor inherited
// from the policy by the normalizer) as unconstrained rather than as a
// forced mismatch.
func (e *Evaluator) ruleApplies(ctx context.Context, w *world.World, req Request, r *policy.Rule) bool {
	if !e.actionMatches(ctx, w, req, r) {
		return false
	}
	if r.Target != "" && canonicalize(r.Target) != canonicalize(req.Target) {
		return false
	}
	if r.Assigner != "" && canonicalize(r.Assigner) != canonicalize(req.Assigner) {
		return false
	}
	if r.Assignee != "" && canonicalize(r.Assignee) != canonicalize(req.Assignee) {
		return false
	}
	return true
}

// actionMatches implements spec.md §4.4: a rule may declare zero or more
// actions; it applies if any declared action subsumes the request's
// action and every refinement of that specific action entry evaluates
// true. A single failing refinement demotes that action entry to
// non-matching, not the whole rule — other declared actions on the same
// rule are still tried.
func (e *Evaluator) actionMatches(ctx context.Context, w *world.World, req Request, r *policy.Rule) bool {
	candidate := odrlaction.FromIRI(req.Action)
	for _, a := range r.Actions {
		if !odrlaction.Subsumes(a.Type, candidate, nil, a.Implies) {
			continue
		}
		if constraint.Infer(ctx, w, a.Refinements) {
			return true
		}
	}
	return false
}

// ruleConstraintsHold implements spec.md §4.5 step 4: the rule's own
// constraints must all evaluate true, and for permissions every attached
// duty's constraints must also all evaluate true.
func (e *Evaluator) ruleConstraintsHold(ctx context.Context, w *world.World, r *policy.Rule) bool {
	if !constraint.Infer(ctx, w, r.Constraints) {
		return false
	}
	if r.Kind == policy.KindPermission {
		for _, duty := range r.Duty {
			if !constraint.Infer(ctx, w, duty.Constraints) {
				return false
			}
		}
	}
	return true
}

// canonicalize applies the one IRI canonicalization step spec.md §4.5
// requires before exact string comparison: trimming incidental whitespace.
// IRIs are otherwise opaque, case-sensitive strings (spec.md §3), so no
// case-folding or percent-decoding is performed.
func canonicalize(iri string) string {
	return strings.TrimSpace(iri)
}
