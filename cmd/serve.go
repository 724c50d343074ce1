package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/aruushpasupathi/policy-compliance-checker/config"
	"github.com/aruushpasupathi/policy-compliance-checker/internal/api"
	"github.com/aruushpasupathi/policy-compliance-checker/internal/audit"
	"github.com/aruushpasupathi/policy-compliance-checker/internal/browser"
)

// serveCmd is the cobra command that starts the audit API server
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "start the audit api server",
	Run: func(cmd *cobra.Command, _ []string) {
		err := serve(cmd.Context())
		cobra.CheckErr(err)
	},
}

// init registers the serve command and its flags on the root command
func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.PersistentFlags().String("config", "./config/.config.yaml", "config file location")
}

// serve initializes dependencies and starts the audit API server
func serve(ctx context.Context) error {
	cfgPath := k.String("config")

	cfg, err := config.Load(&cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	cfg.Server.Debug = k.Bool("debug")
	cfg.Server.Pretty = k.Bool("pretty")

	session, err := newBrowserSession(cfg)
	if err != nil {
		return fmt.Errorf("starting browser session: %w", err)
	}

	defer func() { _ = session.Close() }()

	engine := audit.New(session,
		audit.WithFallbackLinksPerCategory(cfg.Audit.FallbackLinksPerCategory),
	)

	handler := api.NewRouter(api.RouterConfig{
		Auditor:      engine,
		MaxBodySize:  cfg.Server.MaxBodySize,
		AuditTimeout: cfg.Audit.Timeout,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Listen,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownGracePeriod)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown error")
		}
	}()

	log.Info().Str("listen", cfg.Server.Listen).Msg("starting policy compliance service")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}

	return nil
}

// newBrowserSession starts the shared headless browser session from config
func newBrowserSession(cfg *config.Config) (*browser.ChromeSession, error) {
	opts := []browser.Option{
		browser.WithHeadless(cfg.Browser.Headless),
		browser.WithNavTimeout(cfg.Browser.NavTimeout),
	}

	if cfg.Browser.UserAgent != "" {
		opts = append(opts, browser.WithUserAgent(cfg.Browser.UserAgent))
	}

	return browser.NewChromeSession(opts...)
}
