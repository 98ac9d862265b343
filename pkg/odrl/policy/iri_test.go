package policy

import "testing"

func TestValidateIRI(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"http://example.com/policy/1", false},
		{"urn:uuid:1234", false},
		{"", true},
		{"not an iri with spaces", true},
		{"no-scheme-at-all", true},
	}
	for _, tt := range tests {
		err := ValidateIRI(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateIRI(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
	}
}
