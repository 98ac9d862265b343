package policy

import "github.com/odrlcore/odrlengine/pkg/odrlerr"

// Validate checks the structural invariants spec.md §4.5 step 1 requires
// of every policy regardless of variant: it must have a UID, and it must
// declare at least one permission, prohibition, or obligation rule. The
// conflict strategy defaults to perm when absent, mutating p in place —
// this mirrors the source's behavior of normalizing the default as part of
// validation rather than leaving it to every reader to special-case.
func Validate(p *Policy) error {
	if p.UID == "" {
		return odrlerr.New(odrlerr.KindInvalidRuleDefinition, "policy has no uid")
	}
	if err := ValidateIRI(p.UID); err != nil {
		return err
	}
	if len(p.Permission) == 0 && len(p.Prohibition) == 0 && len(p.Obligation) == 0 {
		return odrlerr.New(odrlerr.KindNoneRuleDefinition, "policy has no permission, prohibition, or obligation rules").WithSubject(p.UID)
	}
	if p.Conflict == "" {
		p.Conflict = ConflictPerm
	}
	return nil
}

// ValidateAgreement enforces the Agreement-specific invariant from
// spec.md §4.5 step 1: after normalization, every rule must have an
// assigner, assignee, and target. Must be called after the normalizer has
// propagated policy-level defaults down to each rule.
func ValidateAgreement(p *Policy) error {
	for _, r := range p.AllRules() {
		if r.Assigner == "" {
			return odrlerr.New(odrlerr.KindMissingAgreementAssigner, "agreement rule has no assigner after normalization").WithSubject(r.UID)
		}
		if r.Assignee == "" {
			return odrlerr.New(odrlerr.KindMissingAgreementAssignee, "agreement rule has no assignee after normalization").WithSubject(r.UID)
		}
		if r.Target == "" {
			return odrlerr.New(odrlerr.KindMissingAgreementTarget, "agreement rule has no target after normalization").WithSubject(r.UID)
		}
	}
	return nil
}

// ValidateOffer enforces the Offer-specific invariant (spec.md §7 names
// MissingOfferTarget/MissingOfferAssigner in the error taxonomy): after
// normalization, every rule must have a target and an assigner. Offers
// describe a unilateral proposal, so no assignee is required yet.
func ValidateOffer(p *Policy) error {
	for _, r := range p.AllRules() {
		if r.Target == "" {
			return odrlerr.New(odrlerr.KindMissingOfferTarget, "offer rule has no target after normalization").WithSubject(r.UID)
		}
		if r.Assigner == "" {
			return odrlerr.New(odrlerr.KindMissingOfferAssigner, "offer rule has no assigner after normalization").WithSubject(r.UID)
		}
	}
	return nil
}
