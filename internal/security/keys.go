package security

import "strings"

// MaskKey masks an API key for display, keeping the first and last four
// characters.
//
// Example: "AIzaSy0123456789abcd" -> "AIza************abcd"
func MaskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}
