package policy

// Kind identifies one of the mandated policy page categories.
type Kind string

const (
	// KindPrivacy identifies privacy policy pages
	KindPrivacy Kind = "privacy"
	// KindTerms identifies terms and conditions pages
	KindTerms Kind = "terms"
	// KindShipping identifies shipping or delivery policy pages
	KindShipping Kind = "shipping"
	// KindReturns identifies return and exchange policy pages
	KindReturns Kind = "returns"
	// KindRefund identifies refund policy pages
	KindRefund Kind = "refund"
	// KindCancellation identifies order cancellation policy pages
	KindCancellation Kind = "cancellation"
)

// MerchantType categorizes what a merchant sells, which determines the
// policy pages it is required to publish.
type MerchantType string

const (
	// MerchantTypeGoods covers merchants selling physical goods
	MerchantTypeGoods MerchantType = "goods"
	// MerchantTypeServices covers merchants selling services
	MerchantTypeServices MerchantType = "services"
)

// Definition holds the static matching configuration for a single policy kind.
// Anchor hints decide which homepage links are worth following; content
// keywords decide whether a fetched page actually satisfies the policy. The
// two vocabularies are deliberately disjoint: hints are short link-label
// fragments, keywords are phrases expected in the page body.
type Definition struct {
	// Kind is the policy category this definition matches
	Kind Kind
	// DisplayName is the human-readable policy name used in reports and notices
	DisplayName string
	// AnchorHints are substrings matched against normalized link anchor text
	AnchorHints []string
	// ContentKeywords are substrings matched against normalized page body text
	ContentKeywords []string
	// AppliesTo lists the merchant types this policy is mandatory for
	AppliesTo []MerchantType
}

// definitions is the ordered policy table; checklist order follows this slice
var definitions []Definition

// checklists holds the ordered per-merchant-type policy checklist
var checklists map[MerchantType][]Kind

// resolvableGroups holds, per merchant type, the policy kinds presumed to
// co-locate on a single page so that presence of one can be inferred from the
// cached text of a sibling without extra navigation.
var resolvableGroups map[MerchantType][]Kind

func init() {
	definitions = []Definition{
		{
			Kind:        KindPrivacy,
			DisplayName: "Privacy Policy",
			AnchorHints: []string{"privacy"},
			ContentKeywords: []string{
				"privacy policy",
				"privacy notice",
				"personal information",
				"personal data",
			},
			AppliesTo: []MerchantType{MerchantTypeGoods, MerchantTypeServices},
		},
		{
			Kind:        KindTerms,
			DisplayName: "Terms & Conditions",
			AnchorHints: []string{"terms", "conditions"},
			ContentKeywords: []string{
				"terms and conditions",
				"terms & conditions",
				"terms of service",
				"terms of use",
			},
			AppliesTo: []MerchantType{MerchantTypeGoods, MerchantTypeServices},
		},
		{
			Kind:        KindShipping,
			DisplayName: "Shipping Policy",
			AnchorHints: []string{"shipping", "delivery"},
			ContentKeywords: []string{
				"shipping policy",
				"delivery policy",
				"shipping and delivery",
				"dispatched within",
			},
			AppliesTo: []MerchantType{MerchantTypeGoods},
		},
		{
			Kind:        KindReturns,
			DisplayName: "Return Policy",
			AnchorHints: []string{"return", "exchange"},
			ContentKeywords: []string{
				"return policy",
				"returns and exchanges",
				"return and exchange",
				"exchange policy",
			},
			AppliesTo: []MerchantType{MerchantTypeGoods},
		},
		{
			Kind:        KindRefund,
			DisplayName: "Refund Policy",
			AnchorHints: []string{"refund"},
			ContentKeywords: []string{
				"refund policy",
				"refund",
			},
			AppliesTo: []MerchantType{MerchantTypeGoods, MerchantTypeServices},
		},
		{
			Kind:        KindCancellation,
			DisplayName: "Cancellation Policy",
			AnchorHints: []string{"cancel"},
			ContentKeywords: []string{
				"cancellation policy",
				"cancellation",
				"cancel your order",
			},
			AppliesTo: []MerchantType{MerchantTypeGoods, MerchantTypeServices},
		},
	}

	checklists = make(map[MerchantType][]Kind)

	for _, def := range definitions {
		for _, mt := range def.AppliesTo {
			checklists[mt] = append(checklists[mt], def.Kind)
		}
	}

	// Terms pages routinely embed refund and cancellation clauses, so terms
	// participates as a source alongside the fulfillment policies.
	resolvableGroups = map[MerchantType][]Kind{
		MerchantTypeGoods:    {KindTerms, KindShipping, KindReturns, KindRefund, KindCancellation},
		MerchantTypeServices: {KindTerms, KindRefund, KindCancellation},
	}
}

// AllKinds returns every policy kind in catalog order
func AllKinds() []Kind {
	kinds := make([]Kind, 0, len(definitions))
	for _, def := range definitions {
		kinds = append(kinds, def.Kind)
	}

	return kinds
}

// Lookup returns the definition for a policy kind
func Lookup(kind Kind) (Definition, error) {
	for _, def := range definitions {
		if def.Kind == kind {
			return def, nil
		}
	}

	return Definition{}, ErrUnknownKind
}

// DisplayName returns the human-readable name for a policy kind, falling
// back to the raw kind string when the kind is unknown.
func DisplayName(kind Kind) string {
	def, err := Lookup(kind)
	if err != nil {
		return string(kind)
	}

	return def.DisplayName
}

// Checklist returns the ordered policy kinds mandatory for a merchant type
func Checklist(mt MerchantType) []Kind {
	return checklists[mt]
}

// ResolvableGroup returns the policy kinds whose presence may be inferred
// from sibling pages for the given merchant type, in resolution order.
func ResolvableGroup(mt MerchantType) []Kind {
	return resolvableGroups[mt]
}

// Relevant reports whether a policy kind is mandatory for a merchant type
func Relevant(kind Kind, mt MerchantType) bool {
	for _, k := range checklists[mt] {
		if k == kind {
			return true
		}
	}

	return false
}
