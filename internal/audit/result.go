package audit

import (
	"github.com/aruushpasupathi/policy-compliance-checker/internal/merchant"
	"github.com/aruushpasupathi/policy-compliance-checker/internal/policy"
)

// Status tags the final state of a single policy requirement
type Status string

const (
	// StatusFound marks a policy page located during the audit
	StatusFound Status = "FOUND"
	// StatusMissing marks a relevant policy that was never located
	StatusMissing Status = "MISSING"
	// StatusNotRelevant marks a policy outside the merchant type's checklist
	StatusNotRelevant Status = "NOT RELEVANT"
)

// LegalNameStatus is the three-way legal-name presence value. It is a genuine
// tri-state: "not relevant" is distinct from "checked and absent".
type LegalNameStatus string

const (
	// LegalNameFound means the registered name was located on the site
	LegalNameFound LegalNameStatus = "FOUND"
	// LegalNameMissing means the requirement applied but the name was not located
	LegalNameMissing LegalNameStatus = "MISSING"
	// LegalNameNotRelevant means no legal-name display requirement applied
	LegalNameNotRelevant LegalNameStatus = "NOT RELEVANT"
)

// legalNameItem is the literal missing-items label for an absent legal name
const legalNameItem = "legal name"

// Outcome is the per-policy audit state. cachedText holds the normalized text
// of the page the policy was found on while later passes may still need it;
// it is audit-scoped scratch and is cleared before the outcome is reported.
type Outcome struct {
	// Kind is the policy category this outcome tracks
	Kind policy.Kind
	// Present indicates the policy page was located
	Present bool
	// SourceURL is the page the policy was found on, empty until found
	SourceURL string
	// Status is the final reported tag for this policy
	Status Status

	cachedText string
}

// visitedPage records one page fetched during the primary pass so the
// fallback search can re-test it without re-navigating.
type visitedPage struct {
	url  string
	text string
	kind policy.Kind
}

// Result is the complete audit state for one merchant. Built once per
// merchant and never reused; the engine mutates it across the four passes and
// freezes it at final evaluation.
type Result struct {
	// Profile is the merchant record this result belongs to
	Profile *merchant.Profile
	// Outcomes maps every policy kind to its audit state
	Outcomes map[policy.Kind]*Outcome
	// LegalName is the tri-state legal-name presence value
	LegalName LegalNameStatus
	// LegalNameURL is the page the legal name was found on, if any
	LegalNameURL string
	// MissingItems lists absent relevant policy kinds plus, when the
	// requirement applies, the literal "legal name" item, in checklist order
	MissingItems []string
	// AllRelevantMissing is set when zero relevant policies were found,
	// signaling that the crawl was likely insufficient and the merchant
	// needs manual checking
	AllRelevantMissing bool
	// Compliant is the overall verdict: every relevant policy found and,
	// when the requirement applies, the legal name present
	Compliant bool
	// Err records a whole-merchant failure; outcomes reflect whatever was
	// resolved before it occurred
	Err string
	// PagesVisited counts pages whose text was fetched during the audit
	PagesVisited int

	visited []visitedPage
}

// newResult initializes the audit state for a resolved merchant profile.
// Policies outside the merchant type's checklist start as NOT RELEVANT and
// are never touched again; everything else starts as missing.
func newResult(profile *merchant.Profile) *Result {
	res := &Result{
		Profile:   profile,
		Outcomes:  make(map[policy.Kind]*Outcome),
		LegalName: LegalNameNotRelevant,
	}

	for _, kind := range policy.AllKinds() {
		status := StatusNotRelevant
		if policy.Relevant(kind, profile.Type) {
			status = StatusMissing
		}

		res.Outcomes[kind] = &Outcome{Kind: kind, Status: status}
	}

	if profile.RequiresLegalName() {
		res.LegalName = LegalNameMissing
	}

	return res
}

// outcome returns the tracked state for a policy kind
func (r *Result) outcome(kind policy.Kind) *Outcome {
	return r.Outcomes[kind]
}

// markFound records a policy as satisfied by the given page. Once present,
// an outcome is never revisited or overwritten.
func (r *Result) markFound(kind policy.Kind, sourceURL, cachedText string) {
	out := r.Outcomes[kind]
	if out == nil || out.Present {
		return
	}

	out.Present = true
	out.Status = StatusFound
	out.SourceURL = sourceURL
	out.cachedText = cachedText
}
