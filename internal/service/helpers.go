package service

import "strings"

// containsFold reports whether needle occurs in haystack, case-insensitively.
func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
