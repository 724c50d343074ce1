package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// compressionLevel is the gzip level for response compression
	compressionLevel = 5
	// defaultRequestTimeout bounds a request when no audit timeout is configured
	defaultRequestTimeout = 120 * time.Second
)

// RouterConfig carries the dependencies and limits for the API router
type RouterConfig struct {
	// Auditor runs merchant audits for POST /api/audit
	Auditor Auditor
	// MaxBodySize caps request body bytes, 0 for no limit
	MaxBodySize int64
	// AuditTimeout bounds a single audit request, 0 for the default
	AuditTimeout time.Duration
}

// NewRouter creates a chi router with all endpoints and middleware
func NewRouter(cfg RouterConfig) http.Handler {
	h := &Handler{
		auditor:      cfg.Auditor,
		maxBodySize:  cfg.MaxBodySize,
		auditTimeout: cfg.AuditTimeout,
	}

	requestTimeout := defaultRequestTimeout
	if cfg.AuditTimeout > 0 {
		requestTimeout = cfg.AuditTimeout + time.Second
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(compressionLevel))
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Heartbeat("/ping"))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.handleHealth)
		r.Post("/audit", h.handleAudit)
	})

	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	return r
}
