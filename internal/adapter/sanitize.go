package adapter

import (
	"regexp"
	"strings"
)

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// SanitizeTitle lowercases s, collapses every run of characters outside
// [a-z0-9] into one hyphen and trims leading and trailing hyphens.
//
//	SanitizeTitle("Hello World")            == "hello-world"
//	SanitizeTitle("Special@#$%Characters")  == "specialcharacters"
func SanitizeTitle(s string) string {
	s = strings.ToLower(s)
	s = nonSlug.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
