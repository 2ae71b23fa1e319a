package reardiff

import "regexp"

// Training records are keyed by IMDb-style title ids: the literal prefix
// "tt" followed by 7 or 8 decimal digits, nothing else.
var titleIDPattern = regexp.MustCompile(`^tt[0-9]{7,8}$`)

// IsValidTitleID reports whether s is a well-formed training identifier.
// Callers must check this before any mutating call keyed by the id.
func IsValidTitleID(s string) bool {
	return titleIDPattern.MatchString(s)
}
