package policy

import "strings"

// PageSatisfies reports whether normalized page body text satisfies the
// content requirement of a policy kind. A single keyword hit is sufficient;
// there is no weighting or minimum-count threshold.
func PageSatisfies(normalizedText string, kind Kind) bool {
	def, err := Lookup(kind)
	if err != nil {
		return false
	}

	for _, keyword := range def.ContentKeywords {
		if strings.Contains(normalizedText, keyword) {
			return true
		}
	}

	return false
}

// AnchorMatches reports whether normalized link anchor text hints at a page
// of the given policy kind. Used only to decide which links to follow, never
// to decide whether a fetched page satisfies the policy.
func AnchorMatches(normalizedAnchor string, kind Kind) bool {
	def, err := Lookup(kind)
	if err != nil {
		return false
	}

	for _, hint := range def.AnchorHints {
		if strings.Contains(normalizedAnchor, hint) {
			return true
		}
	}

	return false
}
