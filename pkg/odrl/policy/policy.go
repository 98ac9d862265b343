// Package policy implements the ODRL Policy AST: Policy/Rule/Permission/
// Prohibition/Duty/Party/Asset entities and their structural invariants
// (spec.md §3, component E).
package policy

// Variant is the ODRL policy type tag (spec.md §3). All variants share the
// common Policy body; they differ only in validation and evaluation
// semantics (spec.md §4.5), which live in pkg/odrl/evaluator, not here.
type Variant string

const (
	VariantSet        Variant = "Set"
	VariantAgreement   Variant = "Agreement"
	VariantOffer       Variant = "Offer"
	VariantPrivacy     Variant = "Privacy"
	VariantRequest     Variant = "Request"
	VariantAssert      Variant = "Assert"
	VariantTicket      Variant = "Ticket"
)

// ConflictStrategy resolves simultaneous permit+prohibit matches
// (spec.md §3, Glossary).
type ConflictStrategy string

const (
	ConflictPerm     ConflictStrategy = "perm"
	ConflictProhibit ConflictStrategy = "prohibit"
	ConflictInvalid  ConflictStrategy = "invalid"
)

// Policy is the common inner body every Variant embeds (spec.md §3).
type Policy struct {
	UID     string
	Variant Variant
	Profile []string

	DefaultAction   *Action
	DefaultAssignee string
	DefaultAssigner string
	DefaultTarget   string

	Permission  []*Rule
	Prohibition []*Rule
	Obligation  []*Rule

	Conflict    ConflictStrategy
	InheritFrom string
	Metadata    map[string]interface{}
}

// AllRules returns every permission, prohibition, and obligation rule in
// declaration order: permissions first, then prohibitions, then
// obligations. Used by the normalizer and by validation, which treat all
// three rule slices uniformly.
func (p *Policy) AllRules() []*Rule {
	all := make([]*Rule, 0, len(p.Permission)+len(p.Prohibition)+len(p.Obligation))
	all = append(all, p.Permission...)
	all = append(all, p.Prohibition...)
	all = append(all, p.Obligation...)
	return all
}
