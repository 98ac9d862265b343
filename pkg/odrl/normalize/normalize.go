// Package normalize implements propagation of policy-level assigner,
// assignee, and target defaults down to individual rules (spec.md §4.6,
// component F).
package normalize

import "github.com/odrlcore/odrlengine/pkg/odrl/policy"

// Normalize fills in each permission, prohibition, and obligation rule's
// Assigner/Assignee/Target from the policy-level defaults wherever the
// rule itself leaves them unset. Per spec.md §4.6 (the corrected reading,
// not the source's historical bug — see DESIGN.md "Open Questions
// decided"): every rule kind's Assigner falls back to the policy's
// Assigner, and every rule kind's Assignee falls back to the policy's
// Assignee — obligation and prohibition rules are not special-cased onto
// the policy's Assignee for their Assigner field.
//
// Normalize is idempotent: running it twice in a row is a no-op, since it
// only ever fills fields that are empty.
func Normalize(p *policy.Policy) {
	for _, r := range p.AllRules() {
		if r.Assigner == "" {
			r.Assigner = p.DefaultAssigner
		}
		if r.Assignee == "" {
			r.Assignee = p.DefaultAssignee
		}
		if r.Target == "" {
			r.Target = p.DefaultTarget
		}
		if len(r.Actions) == 0 && p.DefaultAction != nil {
			r.Actions = []policy.Action{*p.DefaultAction}
		}
	}
}
