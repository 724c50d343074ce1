package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aruushpasupathi/policy-compliance-checker/internal/audit"
)

// reportHeader is the column layout of the report file
var reportHeader = []string{
	"website",
	"compliance_status",
	"merchant_type",
	"is_proprietorship",
	"missing_policies",
	"legal_name_present",
	"legal_name_url",
	"manual_checking_required",
	"registrar",
	"domain_age_days",
	"contact_deliverable",
	"error",
}

// ReportWriter emits one CSV row per audited merchant
type ReportWriter struct {
	w           *csv.Writer
	headerDone  bool
	closeTarget io.Closer
}

// NewReportWriter wraps w for report emission
func NewReportWriter(w io.Writer) *ReportWriter {
	return &ReportWriter{w: csv.NewWriter(w)}
}

// NewReportFileWriter creates path and returns a writer that owns the file
func NewReportFileWriter(path string) (*ReportWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}

	rw := NewReportWriter(f)
	rw.closeTarget = f

	return rw, nil
}

// Write appends one report row, emitting the header first when needed
func (rw *ReportWriter) Write(report audit.Report) error {
	if !rw.headerDone {
		if err := rw.w.Write(reportHeader); err != nil {
			return fmt.Errorf("writing report header: %w", err)
		}

		rw.headerDone = true
	}

	row := []string{
		report.Website,
		report.ComplianceStatus,
		report.MerchantType,
		fmt.Sprintf("%t", report.IsProprietorship),
		strings.Join(report.MissingPolicies, "; "),
		report.LegalNamePresent,
		report.LegalNameURL,
		report.ManualCheckingRequired,
		report.Registrar,
		domainAge(report),
		report.ContactDeliverable,
		report.Error,
	}

	if err := rw.w.Write(row); err != nil {
		return fmt.Errorf("writing report row for %s: %w", report.Website, err)
	}

	return nil
}

// domainAge renders the domain age column, empty when no lookup ran
func domainAge(report audit.Report) string {
	if report.Registrar == "" && report.DomainAgeDays == 0 {
		return ""
	}

	return fmt.Sprintf("%d", report.DomainAgeDays)
}

// Close flushes buffered rows and closes the underlying file when owned
func (rw *ReportWriter) Close() error {
	rw.w.Flush()

	if err := rw.w.Error(); err != nil {
		return fmt.Errorf("flushing report: %w", err)
	}

	if rw.closeTarget != nil {
		return rw.closeTarget.Close()
	}

	return nil
}
