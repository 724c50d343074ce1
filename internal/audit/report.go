package audit

import (
	"github.com/aruushpasupathi/policy-compliance-checker/internal/policy"
)

// PolicyReport is the reported state of one policy requirement
type PolicyReport struct {
	// Kind is the policy category
	Kind string `json:"kind"`
	// DisplayName is the human-readable policy name
	DisplayName string `json:"display_name"`
	// Status is FOUND, MISSING, or NOT RELEVANT
	Status string `json:"status"`
	// SourceURL is the page the policy was found on, when present
	SourceURL string `json:"source_url,omitempty"`
}

// Report is the reporting projection of an audit result: every field a
// downstream consumer sees, with all audit-scoped scratch state gone.
type Report struct {
	// Website is the audited merchant site
	Website string `json:"website"`
	// ComplianceStatus is the overall verdict, PASS or FAIL
	ComplianceStatus string `json:"compliance_status"`
	// MissingPolicies lists absent relevant policy kinds plus, when the
	// requirement applies, the literal "legal name" item
	MissingPolicies []string `json:"missing_policies"`
	// LegalNamePresent is "true", "false", or "NOT RELEVANT"
	LegalNamePresent string `json:"legal_name_present"`
	// LegalNameURL is the page the legal name was found on, if found
	LegalNameURL string `json:"legal_name_url,omitempty"`
	// IsProprietorship indicates whether the merchant is a sole proprietorship
	IsProprietorship bool `json:"is_proprietorship"`
	// MerchantType is the resolved merchant type, goods or services
	MerchantType string `json:"merchant_type"`
	// ManualCheckingRequired is YES when zero relevant policies were found
	ManualCheckingRequired string `json:"manual_checking_required"`
	// Policies holds the per-policy outcomes in catalog order
	Policies []PolicyReport `json:"policies"`
	// Error records a whole-merchant failure, if any
	Error string `json:"error,omitempty"`

	// Registrar and DomainAgeDays annotate the report with the domain
	// registration record when the batch runner's lookup succeeded
	Registrar     string `json:"registrar,omitempty"`
	DomainAgeDays int    `json:"domain_age_days,omitempty"`
	// ContactDeliverable is "true" or "false" once the contact address was
	// checked, empty when no check ran
	ContactDeliverable string `json:"contact_deliverable,omitempty"`
}

const (
	// VerdictPass is the compliance status for fully compliant merchants
	VerdictPass = "PASS"
	// VerdictFail is the compliance status for non-compliant merchants
	VerdictFail = "FAIL"

	manualCheckYes = "YES"
	manualCheckNo  = "NO"

	legalNameTrue        = "true"
	legalNameFalse       = "false"
	legalNameNotRelevant = "NOT RELEVANT"
)

// BuildReport projects a frozen audit result into its reporting fields. Pure
// string formatting; all decision logic happened during the audit.
func BuildReport(res *Result) Report {
	report := Report{
		Website:                res.Profile.WebsiteURL,
		ComplianceStatus:       VerdictFail,
		MissingPolicies:        append([]string(nil), res.MissingItems...),
		LegalNamePresent:       legalNamePresence(res.LegalName),
		LegalNameURL:           res.LegalNameURL,
		IsProprietorship:       res.Profile.Proprietorship,
		MerchantType:           string(res.Profile.Type),
		ManualCheckingRequired: manualCheckNo,
		Error:                  res.Err,
	}

	if res.Compliant {
		report.ComplianceStatus = VerdictPass
	}

	if res.AllRelevantMissing {
		report.ManualCheckingRequired = manualCheckYes
	}

	for _, kind := range policy.AllKinds() {
		out := res.Outcomes[kind]
		if out == nil {
			continue
		}

		report.Policies = append(report.Policies, PolicyReport{
			Kind:        string(kind),
			DisplayName: policy.DisplayName(kind),
			Status:      string(out.Status),
			SourceURL:   out.SourceURL,
		})
	}

	return report
}

// legalNamePresence renders the tri-state presence value for consumers
func legalNamePresence(status LegalNameStatus) string {
	switch status {
	case LegalNameFound:
		return legalNameTrue
	case LegalNameMissing:
		return legalNameFalse
	default:
		return legalNameNotRelevant
	}
}
