package validation

import (
	"regexp"
	"strings"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// Blank reports whether s is empty after trimming whitespace.
func Blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// MissingFields returns the names whose values are blank, in argument order.
// Arguments alternate name, value.
func MissingFields(pairs ...string) []string {
	var missing []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if Blank(pairs[i+1]) {
			missing = append(missing, pairs[i])
		}
	}
	return missing
}
