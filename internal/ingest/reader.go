package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/aruushpasupathi/policy-compliance-checker/internal/merchant"
)

// Column headers recognized in the input file. Matching is case-insensitive
// and ignores surrounding whitespace.
const (
	colWebsite      = "website"
	colMerchantType = "merchant_type"
	colEntityType   = "entity_type"
	colLegalName    = "legal_name"
	colContactEmail = "contact_email"
)

// ReadMerchants parses merchant rows from CSV input. The first row must be a
// header naming at least the website column; rows without a website value are
// skipped before any navigation happens.
func ReadMerchants(r io.Reader) ([]merchant.Profile, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmptyInput
	}

	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	cols := indexColumns(header)
	if _, ok := cols[colWebsite]; !ok {
		return nil, ErrMissingWebsiteColumn
	}

	var profiles []merchant.Profile

	line := 1

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}

		line++

		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", line, err)
		}

		website := field(record, cols, colWebsite)
		if website == "" {
			log.Debug().Int("row", line).Msg("skipping merchant row without website")
			continue
		}

		profiles = append(profiles, merchant.Profile{
			WebsiteURL:      website,
			RawMerchantType: field(record, cols, colMerchantType),
			RawEntityType:   field(record, cols, colEntityType),
			LegalName:       field(record, cols, colLegalName),
			ContactEmail:    field(record, cols, colContactEmail),
		})
	}

	return profiles, nil
}

// ReadMerchantsFile opens path and parses merchant rows from it
func ReadMerchantsFile(path string) ([]merchant.Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	defer f.Close()

	return ReadMerchants(f)
}

// indexColumns maps normalized header names to their positions
func indexColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))

	for i, name := range header {
		normalized := strings.ToLower(strings.TrimSpace(name))
		normalized = strings.ReplaceAll(normalized, " ", "_")

		if _, dup := cols[normalized]; !dup {
			cols[normalized] = i
		}
	}

	return cols
}

// field returns the trimmed value of the named column, or empty when the
// column is absent or the row is short
func field(record []string, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(record) {
		return ""
	}

	return strings.TrimSpace(record[idx])
}
