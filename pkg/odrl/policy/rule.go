package policy

import "github.com/odrlcore/odrlengine/pkg/odrl/constraint"

// RuleKind distinguishes Permission, Prohibition, and Duty — the three
// concrete rule roles sharing the Rule shape (spec.md §3).
type RuleKind string

const (
	KindPermission  RuleKind = "Permission"
	KindProhibition RuleKind = "Prohibition"
	KindDuty        RuleKind = "Duty"
)

// Rule is the shared shape behind Permission, Prohibition, and Duty. A
// Policy exclusively owns its rules; a rule exclusively owns its Actions
// and Constraints (spec.md §3 "Ownership"). Target/Assigner/Assignee are
// IRIs, resolved against the state world's registry at evaluation time,
// never owning pointers — this is what lets the same Party or Asset be
// shared across many rules without introducing ownership cycles.
type Rule struct {
	UID         string
	Kind        RuleKind
	Actions     []Action
	Constraints []constraint.Evaluable

	// Consequence holds nested rules valid on a Permission: further
	// permissions that apply once this one is exercised.
	Consequence []*Rule

	// Remedy holds nested duties valid on a Prohibition: obligations that
	// discharge the prohibition's violation.
	Remedy []*Rule

	// Duty holds pre-obligations valid on a Permission: duties that must
	// hold for the permission itself to be effective (spec.md §4.5 step 4).
	Duty []*Rule

	Target   string
	Assigner string
	Assignee string
}
