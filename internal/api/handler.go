// Package api exposes the policy compliance audit over HTTP.
package api

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/aruushpasupathi/policy-compliance-checker/internal/audit"
	"github.com/aruushpasupathi/policy-compliance-checker/internal/domain"
	"github.com/aruushpasupathi/policy-compliance-checker/internal/merchant"
)

// Auditor runs the policy audit for one merchant
type Auditor interface {
	Audit(ctx context.Context, profile *merchant.Profile) *audit.Result
}

// Handler manages the API endpoints. Audits serialize on a mutex because the
// auditor drives a single browsing session that cannot be shared between
// in-flight requests.
type Handler struct {
	auditor      Auditor
	maxBodySize  int64
	auditTimeout time.Duration

	mu sync.Mutex
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
}

// handleHealth returns service health status
func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Service:   "pcc",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// AuditRequest represents one merchant audit request
type AuditRequest struct {
	// Website is the merchant storefront URL, required
	Website string `json:"website"`
	// MerchantType is the free-text merchant category
	MerchantType string `json:"merchant_type,omitempty"`
	// EntityType is the free-text business entity type
	EntityType string `json:"entity_type,omitempty"`
	// LegalName is the registered legal name for proprietorships
	LegalName string `json:"legal_name,omitempty"`
	// ContactEmail is the merchant contact address
	ContactEmail string `json:"contact_email,omitempty"`
}

// AuditResponse is the API response envelope for merchant audits
type AuditResponse struct {
	// Success indicates whether the audit completed
	Success bool `json:"success"`
	// Data holds the audit report when successful
	Data *audit.Report `json:"data,omitempty"`
	// Error is the normalized error payload when the audit fails
	Error *Error `json:"error,omitempty"`
}

// handleAudit processes merchant audit requests
func (h *Handler) handleAudit(w http.ResponseWriter, r *http.Request) {
	if h.auditor == nil {
		respondError(w, http.StatusServiceUnavailable, errCodeUnavailable, ErrAuditorNotConfigured.Error())
		return
	}

	if h.maxBodySize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	}

	var req AuditRequest
	if err := decodeJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, errCodeInvalidRequest, ErrInvalidRequestBody.Error())
		return
	}

	if strings.TrimSpace(req.Website) == "" {
		respondError(w, http.StatusBadRequest, errCodeValidation, ErrWebsiteRequired.Error())
		return
	}

	website, err := domain.HomepageURL(req.Website)
	if err != nil {
		respondError(w, http.StatusBadRequest, errCodeValidation, ErrInvalidWebsite.Error())
		return
	}

	profile := &merchant.Profile{
		WebsiteURL:      website,
		RawMerchantType: req.MerchantType,
		RawEntityType:   req.EntityType,
		LegalName:       req.LegalName,
		ContactEmail:    req.ContactEmail,
	}

	ctx := r.Context()

	if h.auditTimeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, h.auditTimeout)
		defer cancel()
	}

	h.mu.Lock()
	res := h.auditor.Audit(ctx, profile)
	h.mu.Unlock()

	report := audit.BuildReport(res)

	log.Info().Str("website", website).Str("verdict", report.ComplianceStatus).Msg("audit request served")

	writeJSON(w, http.StatusOK, AuditResponse{Success: true, Data: &report})
}

// respondError writes a normalized error envelope
func respondError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, AuditResponse{
		Success: false,
		Error:   &Error{Code: code, Message: message},
	})
}
