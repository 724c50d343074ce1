package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the audit pipeline
type Metrics struct {
	AuditsTotal   *prometheus.CounterVec
	PagesVisited  prometheus.Counter
	DraftsWritten prometheus.Counter
	AuditDuration prometheus.Histogram
}

// NewMetrics registers the audit instruments on the given registerer. Pass
// prometheus.DefaultRegisterer for the process-wide registry
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		AuditsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pcc_audits_total",
			Help: "The total number of merchant audits by verdict.",
		}, []string{"verdict"}), // PASS, FAIL, error
		PagesVisited: factory.NewCounter(prometheus.CounterOpts{
			Name: "pcc_pages_visited_total",
			Help: "The total number of pages fetched during audits.",
		}),
		DraftsWritten: factory.NewCounter(prometheus.CounterOpts{
			Name: "pcc_remediation_drafts_total",
			Help: "The total number of remediation drafts written.",
		}),
		AuditDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "pcc_audit_duration_seconds",
			Help:    "Duration of complete merchant audits.",
			Buckets: []float64{1, 5, 10, 15, 30, 60, 120},
		}),
	}
}

// ObserveAudit records one finished audit with its verdict and duration
func (m *Metrics) ObserveAudit(verdict string, elapsed time.Duration) {
	m.AuditsTotal.WithLabelValues(verdict).Inc()
	m.AuditDuration.Observe(elapsed.Seconds())
}

// AddPagesVisited records pages fetched during one audit
func (m *Metrics) AddPagesVisited(n int) {
	if n > 0 {
		m.PagesVisited.Add(float64(n))
	}
}

// IncDraftsWritten records one remediation draft landing on disk
func (m *Metrics) IncDraftsWritten() {
	m.DraftsWritten.Inc()
}
