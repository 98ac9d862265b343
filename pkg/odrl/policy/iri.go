package policy

import (
	"regexp"

	"github.com/odrlcore/odrlengine/pkg/odrlerr"
)

// iriPattern is a practical approximation of RFC 3987: a scheme followed by
// ":", with no whitespace or control characters anywhere in the string.
// IRIs are opaque, hashable, case-sensitive strings (spec.md §3); this repo
// does not attempt full Unicode IRI normalization, only the syntactic
// sanity check ingestion needs before treating a string as an identifier.
var iriPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.\-]*:\S+$`)

// ValidateIRI reports whether s is syntactically plausible as an RFC 3987
// IRI: a scheme, a colon, and no embedded whitespace.
func ValidateIRI(s string) error {
	if s == "" {
		return odrlerr.New(odrlerr.KindInvalidIRI, "iri is empty")
	}
	if !iriPattern.MatchString(s) {
		return odrlerr.New(odrlerr.KindInvalidIRI, "not a valid iri").WithSubject(s)
	}
	return nil
}
