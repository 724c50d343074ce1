package notice

import (
	"fmt"
	"strings"

	"github.com/aruushpasupathi/policy-compliance-checker/internal/audit"
	"github.com/aruushpasupathi/policy-compliance-checker/internal/merchant"
	"github.com/aruushpasupathi/policy-compliance-checker/internal/policy"
)

// legalNameItem mirrors the missing-items label used by the audit engine
const legalNameItem = "legal name"

// legalNameLocations are the common places a proprietor is expected to
// display the registered legal name, enumerated in the draft notice.
var legalNameLocations = []string{
	"the website footer",
	"the About Us page",
	"the Contact page",
	"invoices and order receipts",
}

// Draft is a remediation email ready for human review before sending
type Draft struct {
	// Recipient is the merchant contact address
	Recipient string `json:"recipient"`
	// Subject is the draft subject line
	Subject string `json:"subject"`
	// Body is the draft body text
	Body string `json:"body"`
}

// ShouldCompose gates draft composition: only failing merchants with a usable
// contact address and concrete missing items get a draft. Merchants flagged
// for manual review are excluded because the crawl found nothing usable and a
// generated notice would likely be wrong.
func ShouldCompose(report audit.Report, contactEmail string) bool {
	return report.ComplianceStatus == audit.VerdictFail &&
		report.ManualCheckingRequired != "YES" &&
		strings.TrimSpace(contactEmail) != "" &&
		len(report.MissingPolicies) > 0
}

// Compose builds the remediation draft from the audit report. When the legal
// name is among the missing items for a proprietorship, its display
// requirement leads as item 1; any missing policy pages follow as a single
// numbered item listing their display names.
func Compose(profile *merchant.Profile, report audit.Report) Draft {
	var (
		body strings.Builder
		item = 1
	)

	body.WriteString(fmt.Sprintf("Dear merchant,\n\nDuring a routine review of %s we found the following items that need your attention:\n\n", profile.WebsiteURL))

	missingLegalName := false

	var missingPolicies []string

	for _, missing := range report.MissingPolicies {
		if missing == legalNameItem {
			missingLegalName = true
			continue
		}

		missingPolicies = append(missingPolicies, policy.DisplayName(policy.Kind(missing)))
	}

	if missingLegalName && profile.Proprietorship {
		body.WriteString(fmt.Sprintf("%d. As a sole proprietorship, your registered legal name (%q) must be displayed on the website. Common locations include %s.\n\n",
			item, profile.LegalName, joinWithAnd(legalNameLocations)))
		item++
	}

	if len(missingPolicies) > 0 {
		body.WriteString(fmt.Sprintf("%d. The following policy pages could not be found on the website and must be published: %s.\n\n",
			item, strings.Join(missingPolicies, ", ")))
	}

	body.WriteString("Please update the website and reply to this email once the changes are live.\n\nRegards,\nCompliance Review Team\n")

	return Draft{
		Recipient: profile.ContactEmail,
		Subject:   fmt.Sprintf("Action required: compliance items missing on %s", profile.WebsiteURL),
		Body:      body.String(),
	}
}

// joinWithAnd renders a list as "a, b, c and d"
func joinWithAnd(items []string) string {
	if len(items) == 0 {
		return ""
	}

	if len(items) == 1 {
		return items[0]
	}

	return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
}
