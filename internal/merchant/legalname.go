package merchant

import (
	"regexp"
	"strings"

	"github.com/aruushpasupathi/policy-compliance-checker/internal/policy"
)

const (
	// proximityLimit is the maximum character distance between the first and
	// last matched name parts for the proximity strategy to count as a hit.
	// Wider gaps usually mean the words appear in unrelated sentences.
	proximityLimit = 200
	// minProximityPartLen is the minimum part length considered by the
	// proximity strategy; 1-2 character fragments match too freely.
	minProximityPartLen = 3
	// minProximityParts is the minimum number of distinct name parts that must
	// be found on the page for a proximity match.
	minProximityParts = 2
)

// entitySuffixes are business-entity suffix words stripped from legal names
// before matching, so "John Doe Traders LLC" matches a page that says
// "operated by John Doe Traders".
var entitySuffixes = map[string]struct{}{
	"llc":         {},
	"inc":         {},
	"ltd":         {},
	"corp":        {},
	"corporation": {},
	"co":          {},
	"company":     {},
	"limited":     {},
}

// tokenPunctuation is trimmed from the edges of each name token so that
// "Pvt." and "Ltd." are recognized as plain words.
const tokenPunctuation = ".,;:!?()[]{}&'\"-"

// ContainsLegalName decides whether a registered legal name appears in page
// text. Two strategies run in order: an exact whole-word match of the cleaned
// name with flexible internal whitespace, then a proximity match that accepts
// the name when at least two of its parts occur as whole words within a
// bounded span. Single-part names are only ever matched whole-word; empty or
// suffix-only names never match.
func ContainsLegalName(pageText, legalName string) bool {
	parts := cleanLegalName(legalName)
	if len(parts) == 0 {
		return false
	}

	text := policy.Normalize(pageText)
	if text == "" {
		return false
	}

	if matchExact(text, parts) {
		return true
	}

	if len(parts) < minProximityParts {
		return false
	}

	return matchProximity(text, parts)
}

// cleanLegalName normalizes a legal name and strips entity suffixes,
// returning the remaining space-separated parts in order.
func cleanLegalName(legalName string) []string {
	var parts []string

	for _, token := range strings.Fields(policy.Normalize(legalName)) {
		token = strings.Trim(token, tokenPunctuation)
		if token == "" {
			continue
		}

		if _, suffix := entitySuffixes[token]; suffix {
			continue
		}

		parts = append(parts, token)
	}

	return parts
}

// matchExact tests for the whole cleaned name as consecutive whole words,
// with any run of whitespace between the parts.
func matchExact(text string, parts []string) bool {
	quoted := make([]string, 0, len(parts))
	for _, part := range parts {
		quoted = append(quoted, regexp.QuoteMeta(part))
	}

	pattern, err := regexp.Compile(`\b` + strings.Join(quoted, `\s+`) + `\b`)
	if err != nil {
		return false
	}

	return pattern.MatchString(text)
}

// matchProximity accepts the name when at least two of its longer parts occur
// as whole words and the span from the first occurrence of the earliest found
// part to the last occurrence of the latest found part stays under the
// proximity limit.
func matchProximity(text string, parts []string) bool {
	type located struct {
		first int
		last  int
	}

	var found []located

	for _, part := range parts {
		if len(part) < minProximityPartLen {
			continue
		}

		pattern, err := regexp.Compile(`\b` + regexp.QuoteMeta(part) + `\b`)
		if err != nil {
			continue
		}

		positions := pattern.FindAllStringIndex(text, -1)
		if len(positions) == 0 {
			continue
		}

		found = append(found, located{
			first: positions[0][0],
			last:  positions[len(positions)-1][0],
		})
	}

	if len(found) < minProximityParts {
		return false
	}

	distance := found[len(found)-1].last - found[0].first
	if distance < 0 {
		distance = -distance
	}

	return distance < proximityLimit
}
