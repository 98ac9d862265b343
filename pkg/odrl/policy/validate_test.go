package policy

import "testing"

func TestValidate_RejectsMissingUID(t *testing.T) {
	p := &Policy{Permission: []*Rule{{UID: "r1"}}}
	if err := Validate(p); err == nil {
		t.Fatalf("Validate() with empty UID: expected error, got nil")
	}
}

func TestValidate_RejectsNoRules(t *testing.T) {
	p := &Policy{UID: "http://example.com/policy/1"}
	if err := Validate(p); err == nil {
		t.Fatalf("Validate() with no rules: expected error, got nil")
	}
}

func TestValidate_DefaultsConflictToPerm(t *testing.T) {
	p := &Policy{UID: "http://example.com/policy/1", Permission: []*Rule{{UID: "r1"}}}
	if err := Validate(p); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if p.Conflict != ConflictPerm {
		t.Fatalf("Conflict = %q, want %q (default)", p.Conflict, ConflictPerm)
	}
}

func TestValidate_PreservesExplicitConflict(t *testing.T) {
	p := &Policy{UID: "http://example.com/policy/1", Permission: []*Rule{{UID: "r1"}}, Conflict: ConflictProhibit}
	if err := Validate(p); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if p.Conflict != ConflictProhibit {
		t.Fatalf("Conflict = %q, want %q (explicit)", p.Conflict, ConflictProhibit)
	}
}

func TestValidateAgreement_RequiresAllThreeParties(t *testing.T) {
	complete := &Rule{UID: "r1", Assigner: "a", Assignee: "b", Target: "t"}
	if err := ValidateAgreement(&Policy{Permission: []*Rule{complete}}); err != nil {
		t.Fatalf("ValidateAgreement() with all parties set: unexpected error: %v", err)
	}

	missingAssignee := &Rule{UID: "r1", Assigner: "a", Target: "t"}
	if err := ValidateAgreement(&Policy{Permission: []*Rule{missingAssignee}}); err == nil {
		t.Fatalf("ValidateAgreement() with missing assignee: expected error, got nil")
	}

	missingAssigner := &Rule{UID: "r1", Assignee: "b", Target: "t"}
	if err := ValidateAgreement(&Policy{Permission: []*Rule{missingAssigner}}); err == nil {
		t.Fatalf("ValidateAgreement() with missing assigner: expected error, got nil")
	}

	missingTarget := &Rule{UID: "r1", Assigner: "a", Assignee: "b"}
	if err := ValidateAgreement(&Policy{Permission: []*Rule{missingTarget}}); err == nil {
		t.Fatalf("ValidateAgreement() with missing target: expected error, got nil")
	}
}

func TestValidateOffer_NoAssigneeRequired(t *testing.T) {
	r := &Rule{UID: "r1", Assigner: "a", Target: "t"}
	if err := ValidateOffer(&Policy{Permission: []*Rule{r}}); err != nil {
		t.Fatalf("ValidateOffer() with no assignee: unexpected error: %v", err)
	}
}

func TestValidateOffer_RequiresTargetAndAssigner(t *testing.T) {
	missingTarget := &Rule{UID: "r1", Assigner: "a"}
	if err := ValidateOffer(&Policy{Permission: []*Rule{missingTarget}}); err == nil {
		t.Fatalf("ValidateOffer() with missing target: expected error, got nil")
	}

	missingAssigner := &Rule{UID: "r1", Target: "t"}
	if err := ValidateOffer(&Policy{Permission: []*Rule{missingAssigner}}); err == nil {
		t.Fatalf("ValidateOffer() with missing assigner: expected error, got nil")
	}
}

func TestAllRules_OrderAndCount(t *testing.T) {
	p := &Policy{
		Permission:  []*Rule{{UID: "p1"}},
		Prohibition: []*Rule{{UID: "x1"}},
		Obligation:  []*Rule{{UID: "o1"}},
	}
	all := p.AllRules()
	if len(all) != 3 {
		t.Fatalf("AllRules() len = %d, want 3", len(all))
	}
	if all[0].UID != "p1" || all[1].UID != "x1" || all[2].UID != "o1" {
		t.Fatalf("AllRules() order = %v, want [p1 x1 o1]", all)
	}
}
