package ingest

import (
	"errors"
	"strings"
	"testing"
)

func TestReadMerchants(t *testing.T) {
	input := `website,merchant_type,entity_type,legal_name,contact_email
https://shop.example.com,Goods,Sole Proprietorship,John Doe,owner@example.com
https://studio.example.com,Services,Private Limited,Studio Ltd,hello@studio.example.com
`

	profiles, err := ReadMerchants(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(profiles) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(profiles))
	}

	first := profiles[0]

	if first.WebsiteURL != "https://shop.example.com" {
		t.Errorf("unexpected website: %s", first.WebsiteURL)
	}

	if first.RawMerchantType != "Goods" {
		t.Errorf("unexpected merchant type: %s", first.RawMerchantType)
	}

	if first.RawEntityType != "Sole Proprietorship" {
		t.Errorf("unexpected entity type: %s", first.RawEntityType)
	}

	if first.LegalName != "John Doe" {
		t.Errorf("unexpected legal name: %s", first.LegalName)
	}

	if first.ContactEmail != "owner@example.com" {
		t.Errorf("unexpected contact email: %s", first.ContactEmail)
	}
}

func TestReadMerchants_SkipsRowsWithoutWebsite(t *testing.T) {
	input := `website,merchant_type,entity_type,legal_name,contact_email
,Goods,Sole Proprietorship,John Doe,owner@example.com
https://shop.example.com,Goods,,,
`

	profiles, err := ReadMerchants(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(profiles) != 1 {
		t.Fatalf("expected 1 profile, got %d", len(profiles))
	}

	if profiles[0].WebsiteURL != "https://shop.example.com" {
		t.Errorf("unexpected website: %s", profiles[0].WebsiteURL)
	}
}

func TestReadMerchants_HeaderVariants(t *testing.T) {
	input := ` Website , Merchant Type , Entity Type , Legal Name , Contact Email
example.com,goods,proprietor,Jane Roe,jane@example.com
`

	profiles, err := ReadMerchants(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(profiles) != 1 {
		t.Fatalf("expected 1 profile, got %d", len(profiles))
	}

	if profiles[0].LegalName != "Jane Roe" {
		t.Errorf("unexpected legal name: %s", profiles[0].LegalName)
	}
}

func TestReadMerchants_ShortRows(t *testing.T) {
	input := `website,merchant_type,entity_type,legal_name,contact_email
example.com,goods
`

	profiles, err := ReadMerchants(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(profiles) != 1 {
		t.Fatalf("expected 1 profile, got %d", len(profiles))
	}

	if profiles[0].LegalName != "" {
		t.Errorf("expected empty legal name for short row, got %q", profiles[0].LegalName)
	}
}

func TestReadMerchants_EmptyInput(t *testing.T) {
	if _, err := ReadMerchants(strings.NewReader("")); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}

func TestReadMerchants_MissingWebsiteColumn(t *testing.T) {
	input := `merchant_type,entity_type
goods,proprietor
`

	if _, err := ReadMerchants(strings.NewReader(input)); !errors.Is(err, ErrMissingWebsiteColumn) {
		t.Fatalf("expected ErrMissingWebsiteColumn, got %v", err)
	}
}
