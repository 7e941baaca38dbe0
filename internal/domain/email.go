package domain

import "regexp"

// emailPattern is deliberately ASCII-only; internationalized domains are
// rejected.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// IsValidEmail reports whether candidate is a well-formed address. The caller
// is expected to have trimmed surrounding whitespace already.
func IsValidEmail(candidate string) bool {
	return emailPattern.MatchString(candidate)
}
