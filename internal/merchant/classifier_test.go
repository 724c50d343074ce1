package merchant

import (
	"testing"

	"github.com/aruushpasupathi/policy-compliance-checker/internal/policy"
)

func TestResolveMerchantType(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected policy.MerchantType
	}{
		{"goods", "Goods", policy.MerchantTypeGoods},
		{"goods and services", "Goods and Services", policy.MerchantTypeGoods},
		{"goods_services", "goods_services", policy.MerchantTypeGoods},
		{"services", "services", policy.MerchantTypeServices},
		{"consulting", "Consulting Services", policy.MerchantTypeServices},
		{"empty defaults to goods", "", policy.MerchantTypeGoods},
		{"whitespace defaults to goods", "   ", policy.MerchantTypeGoods},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResolveMerchantType(tc.input); got != tc.expected {
				t.Errorf("ResolveMerchantType(%q): expected %q, got %q", tc.input, tc.expected, got)
			}
		})
	}
}

func TestResolveProprietorship(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"sole proprietorship", "Sole Proprietorship", true},
		{"proprietor", "Proprietor", true},
		{"private limited", "Private Limited", false},
		{"partnership", "Partnership", false},
		{"empty defaults to true", "", true},
		{"whitespace defaults to true", "  ", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResolveProprietorship(tc.input); got != tc.expected {
				t.Errorf("ResolveProprietorship(%q): expected %v, got %v", tc.input, tc.expected, got)
			}
		})
	}
}

func TestProfileResolve(t *testing.T) {
	p := &Profile{
		WebsiteURL:      "https://shop.example.com",
		RawMerchantType: "services",
		RawEntityType:   "Sole Proprietorship",
		LegalName:       "Acme Traders",
	}

	p.Resolve()

	if p.Type != policy.MerchantTypeServices {
		t.Errorf("expected services merchant type, got %q", p.Type)
	}

	if !p.Proprietorship {
		t.Error("expected proprietorship true")
	}

	if !p.RequiresLegalName() {
		t.Error("expected legal name requirement in force")
	}
}

func TestProfileRequiresLegalName(t *testing.T) {
	tests := []struct {
		name       string
		entityType string
		legalName  string
		expected   bool
	}{
		{"proprietor with name", "Sole Proprietorship", "Acme Traders", true},
		{"proprietor without name", "Sole Proprietorship", "", false},
		{"proprietor whitespace name", "Proprietor", "   ", false},
		{"non-proprietor with name", "Private Limited", "Acme Traders", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := &Profile{RawEntityType: tc.entityType, LegalName: tc.legalName}
			p.Resolve()

			if got := p.RequiresLegalName(); got != tc.expected {
				t.Errorf("RequiresLegalName: expected %v, got %v", tc.expected, got)
			}
		})
	}
}
