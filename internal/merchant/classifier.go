package merchant

import (
	"strings"

	"github.com/aruushpasupathi/policy-compliance-checker/internal/policy"
)

// ResolveMerchantType derives the merchant type from free-text input. The
// heuristic is deliberately coarse: any occurrence of the substring "good"
// wins, so inputs like "goods_services" or "Goods and Services" resolve to
// goods. Empty input defaults to goods, the stricter checklist.
func ResolveMerchantType(raw string) policy.MerchantType {
	normalized := policy.Normalize(raw)

	if normalized == "" || strings.Contains(normalized, "good") {
		return policy.MerchantTypeGoods
	}

	return policy.MerchantTypeServices
}

// ResolveProprietorship derives whether the merchant is a sole proprietorship
// from free-text entity type. Empty input defaults to true so that unknown
// entity types fail safe toward requiring legal-name display.
func ResolveProprietorship(raw string) bool {
	normalized := policy.Normalize(raw)

	if normalized == "" {
		return true
	}

	return strings.Contains(normalized, "proprietor")
}
