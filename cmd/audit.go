package cmd

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/aruushpasupathi/policy-compliance-checker/config"
	"github.com/aruushpasupathi/policy-compliance-checker/internal/audit"
	"github.com/aruushpasupathi/policy-compliance-checker/internal/ingest"
	"github.com/aruushpasupathi/policy-compliance-checker/internal/mailcheck"
	"github.com/aruushpasupathi/policy-compliance-checker/internal/monitoring"
	"github.com/aruushpasupathi/policy-compliance-checker/internal/preflight"
	"github.com/aruushpasupathi/policy-compliance-checker/internal/rdap"
	"github.com/aruushpasupathi/policy-compliance-checker/internal/runner"
	"github.com/aruushpasupathi/policy-compliance-checker/internal/slack"
)

// auditCmd is the cobra command that runs a batch audit over a merchant CSV
var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "audit a batch of merchants from a csv file",
	Run: func(cmd *cobra.Command, _ []string) {
		err := runBatch(cmd.Context())
		cobra.CheckErr(err)
	},
}

// init registers the audit command and its flags on the root command
func init() {
	rootCmd.AddCommand(auditCmd)
	auditCmd.PersistentFlags().String("config", "./config/.config.yaml", "config file location")
	auditCmd.PersistentFlags().String("input", "merchants.csv", "merchant csv input file")
	auditCmd.PersistentFlags().String("output", "report.csv", "report csv output file")
	auditCmd.PersistentFlags().String("drafts", "", "remediation drafts directory, overrides config")
}

// runBatch audits every merchant row in the input file sequentially
func runBatch(ctx context.Context) error {
	cfgPath := k.String("config")

	cfg, err := config.Load(&cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	profiles, err := ingest.ReadMerchantsFile(k.String("input"))
	if err != nil {
		return fmt.Errorf("reading merchants: %w", err)
	}

	if len(profiles) == 0 {
		log.Warn().Str("input", k.String("input")).Msg("no auditable merchant rows found")
		return nil
	}

	sink, err := ingest.NewReportFileWriter(k.String("output"))
	if err != nil {
		return fmt.Errorf("opening report output: %w", err)
	}

	defer func() { _ = sink.Close() }()

	session, err := newBrowserSession(cfg)
	if err != nil {
		return fmt.Errorf("starting browser session: %w", err)
	}

	defer func() { _ = session.Close() }()

	engine := audit.New(session,
		audit.WithFallbackLinksPerCategory(cfg.Audit.FallbackLinksPerCategory),
	)

	r := runner.New(engine, sink, batchOptions(cfg)...)

	summary, err := r.Run(ctx, profiles)
	if err != nil {
		return fmt.Errorf("batch run: %w", err)
	}

	log.Info().
		Int("total", summary.Total).
		Int("passed", summary.Passed).
		Int("failed", summary.Failed).
		Int("errored", summary.Errored).
		Int("drafts", summary.DraftsWritten).
		Msg("batch audit complete")

	return nil
}

// batchOptions assembles the runner options from config and flags
func batchOptions(cfg *config.Config) []runner.Option {
	opts := []runner.Option{
		runner.WithDelay(cfg.Batch.Delay),
		runner.WithMetrics(monitoring.NewMetrics(prometheus.DefaultRegisterer)),
	}

	draftsDir := cfg.Batch.DraftsDir
	if flagDir := k.String("drafts"); flagDir != "" {
		draftsDir = flagDir
	}

	if draftsDir != "" {
		opts = append(opts, runner.WithDraftsDir(draftsDir))
	}

	if cfg.Batch.Preflight {
		opts = append(opts, runner.WithProber(preflight.NewProber(
			preflight.WithProbeTimeout(cfg.Batch.ProbeTimeout),
		)))
	}

	if cfg.RDAP.Enabled {
		opts = append(opts, runner.WithRDAPClient(rdap.NewClient(
			rdap.WithTimeout(cfg.RDAP.Timeout),
		)))
	}

	if cfg.Mail.Enabled {
		opts = append(opts, runner.WithMailChecker(mailcheck.NewChecker(
			mailcheck.WithDNSServer(cfg.Mail.DNSServer),
			mailcheck.WithDNSTimeout(cfg.Mail.Timeout),
		)))
	}

	if notifier := setupSlack(cfg); notifier != nil {
		opts = append(opts, runner.WithNotifier(notifier))
	}

	return opts
}

// setupSlack initializes the Slack webhook client from config, returning nil when unconfigured
func setupSlack(cfg *config.Config) *slack.Client {
	if cfg.Slack.WebhookURL == "" {
		log.Info().Msg("slack notifications not configured, skipping")
		return nil
	}

	client, err := slack.New(
		cfg.Slack.WebhookURL,
		slack.WithHTTPClient(&http.Client{Timeout: cfg.Slack.RequestTimeout}),
	)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize slack client")
		return nil
	}

	log.Info().Msg("slack notifications configured")

	return client
}
