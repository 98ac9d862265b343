package policy

import (
	"github.com/odrlcore/odrlengine/pkg/odrl/action"
	"github.com/odrlcore/odrlengine/pkg/odrl/constraint"
)

// Action is a rule's declared action: its type, any additional
// includedIn/implies entries declared alongside it in the source
// document, and any refinements scoping when it applies (spec.md §3).
type Action struct {
	Type        action.Type
	IncludedIn  []action.Type
	Implies     []action.Type
	Refinements []constraint.Evaluable
}
