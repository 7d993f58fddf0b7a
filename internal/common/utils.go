package common

import "strings"

// HasAny reports whether s contains at least one of the substrings. Callers
// lowercase s first when matching should be case-insensitive.
func HasAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
