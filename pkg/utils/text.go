package utils

import "strings"

// Truncate returns s truncated to maxLen characters, with "..." appended if truncated.
// If maxLen is 0 or negative, returns s unchanged.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// NormalizeQuery lowercases s and strips leading and trailing whitespace.
// All intent matching and caching operates on this normalized form.
func NormalizeQuery(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
