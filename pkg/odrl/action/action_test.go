package action

import "testing"

func TestFromIRI(t *testing.T) {
	tests := []struct {
		iri  string
		want Type
	}{
		{"http://www.w3.org/ns/odrl/2/use", Use},
		{"http://www.w3.org/ns/odrl/2/Play", "Play"},
		{"https://example.com#display", Display},
		{"use", Use},
	}
	for _, tt := range tests {
		if got := FromIRI(tt.iri); got != tt.want {
			t.Errorf("FromIRI(%q) = %q, want %q", tt.iri, got, tt.want)
		}
	}
}

func TestSubsumes_ExactMatch(t *testing.T) {
	if !Subsumes(Use, Use, nil, nil) {
		t.Fatalf("Subsumes(use, use) = false, want true")
	}
}

func TestSubsumes_CaseInsensitive(t *testing.T) {
	if !Subsumes(Type("USE"), Use, nil, nil) {
		t.Fatalf("Subsumes(USE, use) = false, want true case-insensitive match")
	}
}

func TestSubsumes_IncludedInTaxonomy(t *testing.T) {
	// Play is includedIn Use per the built-in taxonomy, so a rule declaring
	// Use subsumes a request for Play.
	if !Subsumes(Use, Play, nil, nil) {
		t.Fatalf("Subsumes(use, play) = false, want true (play includedIn use)")
	}
	if Subsumes(Play, Use, nil, nil) {
		t.Fatalf("Subsumes(play, use) = true, want false (not the reverse direction)")
	}
}

func TestSubsumes_DeclaredImplies(t *testing.T) {
	if Subsumes(Modify, Translate, nil, nil) {
		t.Fatalf("Subsumes(modify, translate) = true without a declared implies, want false")
	}
	if !Subsumes(Modify, Translate, nil, []Type{Translate}) {
		t.Fatalf("Subsumes(modify, translate) with rule-declared implies = false, want true")
	}
}

func TestSubsumes_CandidateIncludedIn(t *testing.T) {
	if !Subsumes(Use, Type("customSubAction"), []Type{Use}, nil) {
		t.Fatalf("Subsumes with candidate-declared includedIn = false, want true")
	}
}

func TestSubsumes_Unrelated(t *testing.T) {
	if Subsumes(Use, Transfer, nil, nil) {
		t.Fatalf("Subsumes(use, transfer) = true, want false (unrelated roots)")
	}
}

func TestIncludedIn_TransferBranch(t *testing.T) {
	parents := IncludedIn(Distribute)
	found := false
	for _, p := range parents {
		if p == Transfer {
			found = true
		}
	}
	if !found {
		t.Fatalf("IncludedIn(distribute) = %v, want to include transfer", parents)
	}
}

func TestRegisterImplies(t *testing.T) {
	RegisterImplies(Type("custom-root-action"), Type("custom-leaf-action"))
	if !Subsumes(Type("custom-root-action"), Type("custom-leaf-action"), nil, nil) {
		t.Fatalf("Subsumes after RegisterImplies = false, want true")
	}
}
