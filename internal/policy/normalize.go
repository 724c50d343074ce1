package policy

import "strings"

// Normalize canonicalizes page or anchor text for matching: lower-cased,
// internal whitespace collapsed to single spaces, leading and trailing
// whitespace removed. Total over all inputs; empty input yields empty output.
func Normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}
