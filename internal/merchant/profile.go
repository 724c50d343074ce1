package merchant

import (
	"strings"

	"github.com/aruushpasupathi/policy-compliance-checker/internal/policy"
)

// Profile is one merchant record to audit. The raw fields come straight from
// the input row; Type and Proprietorship are derived once via Resolve and
// stay fixed for the life of the audit.
type Profile struct {
	// WebsiteURL is the merchant storefront URL
	WebsiteURL string
	// RawMerchantType is the free-text merchant category from the input
	RawMerchantType string
	// RawEntityType is the free-text business entity type from the input
	RawEntityType string
	// LegalName is the registered legal name, possibly empty
	LegalName string
	// ContactEmail is the merchant contact address, possibly empty
	ContactEmail string

	// Type is the resolved merchant type
	Type policy.MerchantType
	// Proprietorship indicates whether the legal-name display requirement applies
	Proprietorship bool
}

// Resolve derives the merchant type and proprietorship flag from the raw
// input fields. Safe to call more than once; the derivation is pure.
func (p *Profile) Resolve() {
	p.Type = ResolveMerchantType(p.RawMerchantType)
	p.Proprietorship = ResolveProprietorship(p.RawEntityType)
}

// RequiresLegalName reports whether the legal-name display requirement is in
// force for this merchant: proprietorship with a non-empty legal name. A
// proprietor record without a supplied legal name cannot be verified and is
// treated as out of scope for name matching.
func (p *Profile) RequiresLegalName() bool {
	return p.Proprietorship && strings.TrimSpace(p.LegalName) != ""
}
