package runner

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/aruushpasupathi/policy-compliance-checker/internal/audit"
	"github.com/aruushpasupathi/policy-compliance-checker/internal/domain"
	"github.com/aruushpasupathi/policy-compliance-checker/internal/mailcheck"
	"github.com/aruushpasupathi/policy-compliance-checker/internal/merchant"
	"github.com/aruushpasupathi/policy-compliance-checker/internal/monitoring"
	"github.com/aruushpasupathi/policy-compliance-checker/internal/notice"
	"github.com/aruushpasupathi/policy-compliance-checker/internal/preflight"
	"github.com/aruushpasupathi/policy-compliance-checker/internal/rdap"
	"github.com/aruushpasupathi/policy-compliance-checker/internal/slack"
)

// defaultDelay is the fixed pause between merchants. The pause is a courtesy
// throttle toward merchant sites, not a retry or backoff mechanism.
const defaultDelay = 5 * time.Second

// verdictError is the metrics label for audits that failed outright
const verdictError = "error"

// Auditor runs the policy audit for one merchant
type Auditor interface {
	Audit(ctx context.Context, profile *merchant.Profile) *audit.Result
}

// ReportSink receives one report row per audited merchant
type ReportSink interface {
	Write(report audit.Report) error
}

// Notifier posts a notification message for a failing merchant
type Notifier interface {
	Send(ctx context.Context, msg slack.Message) error
}

// Summary aggregates the outcome of one batch run
type Summary struct {
	// Total is the number of merchants processed
	Total int
	// Passed counts fully compliant merchants
	Passed int
	// Failed counts non-compliant merchants
	Failed int
	// Errored counts merchants whose audit could not complete
	Errored int
	// DraftsWritten counts remediation drafts landed on disk
	DraftsWritten int
}

// Options configures the batch runner
type Options struct {
	delay       time.Duration
	draftsDir   string
	prober      *preflight.Prober
	rdapClient  *rdap.Client
	mailChecker *mailcheck.Checker
	notifier    Notifier
	metrics     *monitoring.Metrics
}

// Option is a functional option for configuring the batch runner
type Option func(*Options)

// WithDelay sets the fixed pause between merchants
func WithDelay(d time.Duration) Option {
	return func(o *Options) {
		if d >= 0 {
			o.delay = d
		}
	}
}

// WithDraftsDir enables remediation draft writing into dir
func WithDraftsDir(dir string) Option {
	return func(o *Options) {
		o.draftsDir = dir
	}
}

// WithProber enables the homepage reachability probe before each audit
func WithProber(p *preflight.Prober) Option {
	return func(o *Options) {
		o.prober = p
	}
}

// WithRDAPClient enables domain registration annotation of report rows
func WithRDAPClient(c *rdap.Client) Option {
	return func(o *Options) {
		o.rdapClient = c
	}
}

// WithMailChecker enables the contact-address deliverability gate on drafts
func WithMailChecker(c *mailcheck.Checker) Option {
	return func(o *Options) {
		o.mailChecker = c
	}
}

// WithNotifier enables per-failing-merchant notifications
func WithNotifier(n Notifier) Option {
	return func(o *Options) {
		o.notifier = n
	}
}

// WithMetrics enables Prometheus instrumentation of the run
func WithMetrics(m *monitoring.Metrics) Option {
	return func(o *Options) {
		o.metrics = m
	}
}

// Runner drives the strictly sequential batch loop: one merchant is fully
// audited before the next begins, with a fixed pause in between. A failing
// merchant never stops the batch.
type Runner struct {
	auditor Auditor
	sink    ReportSink
	options *Options
}

// New creates a batch runner over the given auditor and report sink
func New(auditor Auditor, sink ReportSink, opts ...Option) *Runner {
	o := &Options{
		delay: defaultDelay,
	}

	for _, opt := range opts {
		opt(o)
	}

	return &Runner{auditor: auditor, sink: sink, options: o}
}

// Run audits every profile in order and returns the batch summary. Report
// sink failures abort the run; everything else is recorded per merchant and
// the loop continues.
func (r *Runner) Run(ctx context.Context, profiles []merchant.Profile) (*Summary, error) {
	summary := &Summary{}

	for i := range profiles {
		if i > 0 && r.options.delay > 0 {
			select {
			case <-time.After(r.options.delay):
			case <-ctx.Done():
				return summary, ctx.Err()
			}
		}

		profile := &profiles[i]
		summary.Total++

		report := r.auditOne(ctx, profile)

		switch {
		case report.Error != "":
			summary.Errored++
		case report.ComplianceStatus == audit.VerdictPass:
			summary.Passed++
		default:
			summary.Failed++
		}

		if r.writeDraft(ctx, profile, &report) {
			summary.DraftsWritten++
		}

		r.notify(ctx, report)

		if err := r.sink.Write(report); err != nil {
			return summary, err
		}

		log.Info().
			Str("website", profile.WebsiteURL).
			Str("verdict", report.ComplianceStatus).
			Strs("missing", report.MissingPolicies).
			Msg("merchant audited")
	}

	return summary, nil
}

// auditOne runs the probe, the audit, and the registration annotation for a
// single merchant
func (r *Runner) auditOne(ctx context.Context, profile *merchant.Profile) audit.Report {
	start := time.Now()

	if homepage, err := domain.HomepageURL(profile.WebsiteURL); err == nil {
		profile.WebsiteURL = homepage
	}

	report, audited := r.runAudit(ctx, profile)

	if r.options.metrics != nil {
		verdict := report.ComplianceStatus
		if report.Error != "" {
			verdict = verdictError
		}

		r.options.metrics.ObserveAudit(verdict, time.Since(start))
	}

	if audited {
		r.annotate(ctx, profile, &report)
	}

	return report
}

// runAudit performs the preflight probe and the browser audit. The second
// return value is false when the probe ruled the site dead and no audit ran.
func (r *Runner) runAudit(ctx context.Context, profile *merchant.Profile) (audit.Report, bool) {
	if r.options.prober != nil {
		probe, err := r.options.prober.Probe(ctx, profile.WebsiteURL)
		if err == nil && !probe.Reachable {
			log.Warn().Str("website", profile.WebsiteURL).Msg("homepage probe failed, skipping browser audit")

			profile.Resolve()

			return audit.Report{
				Website:                profile.WebsiteURL,
				ComplianceStatus:       audit.VerdictFail,
				MerchantType:           string(profile.Type),
				IsProprietorship:       profile.Proprietorship,
				LegalNamePresent:       "NOT RELEVANT",
				ManualCheckingRequired: "NO",
				Error:                  "homepage unreachable",
			}, false
		}
	}

	res := r.auditor.Audit(ctx, profile)

	if r.options.metrics != nil {
		r.options.metrics.AddPagesVisited(res.PagesVisited)
	}

	return audit.BuildReport(res), true
}

// annotate enriches the report row with the domain registration record
func (r *Runner) annotate(ctx context.Context, profile *merchant.Profile, report *audit.Report) {
	if r.options.rdapClient == nil {
		return
	}

	info, err := domain.Parse(profile.WebsiteURL)
	if err != nil {
		return
	}

	record, err := r.options.rdapClient.Lookup(ctx, info.Domain)
	if err != nil {
		log.Debug().Err(err).Str("domain", info.Domain).Msg("registration lookup failed")
		return
	}

	report.Registrar = record.Registrar
	report.DomainAgeDays = record.DomainAgeDays

	if record.RecentlyRegistered() {
		log.Warn().Str("domain", info.Domain).Int("age_days", record.DomainAgeDays).Msg("merchant domain registered recently")
	}
}

// writeDraft composes and writes the remediation draft when the report calls
// for one and the contact address passes the deliverability gate
func (r *Runner) writeDraft(ctx context.Context, profile *merchant.Profile, report *audit.Report) bool {
	if r.options.draftsDir == "" || !notice.ShouldCompose(*report, profile.ContactEmail) {
		return false
	}

	if r.options.mailChecker != nil {
		check, err := r.options.mailChecker.Check(ctx, profile.ContactEmail)
		if err != nil || !check.Deliverable() {
			report.ContactDeliverable = "false"
			log.Warn().Str("website", profile.WebsiteURL).Str("email", profile.ContactEmail).Msg("contact address undeliverable, draft suppressed")

			return false
		}

		report.ContactDeliverable = "true"
	}

	draft := notice.Compose(profile, *report)

	path, err := notice.WriteDraft(r.options.draftsDir, draft)
	if err != nil {
		log.Error().Err(err).Str("website", profile.WebsiteURL).Msg("draft write failed")
		return false
	}

	if r.options.metrics != nil {
		r.options.metrics.IncDraftsWritten()
	}

	log.Info().Str("website", profile.WebsiteURL).Str("path", path).Msg("remediation draft written")

	return true
}

// notify posts the report to the notifier for failing merchants
func (r *Runner) notify(ctx context.Context, report audit.Report) {
	if r.options.notifier == nil || report.ComplianceStatus != audit.VerdictFail {
		return
	}

	if err := r.options.notifier.Send(ctx, slack.BuildAuditMessage(report)); err != nil {
		log.Warn().Err(err).Str("website", report.Website).Msg("notification failed")
	}
}
