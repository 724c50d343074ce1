// Package config loads service configuration from defaults, an optional YAML
// file, and PCC_-prefixed environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/mcuadros/go-defaults"
)

// envPrefix is the environment variable prefix for configuration overrides
const envPrefix = "PCC_"

// Config holds the complete service configuration
type Config struct {
	// Server holds HTTP server settings
	Server Server `koanf:"server" json:"server"`
	// Browser holds headless browser session settings
	Browser Browser `koanf:"browser" json:"browser"`
	// Audit holds audit engine settings
	Audit Audit `koanf:"audit" json:"audit"`
	// Batch holds batch run settings
	Batch Batch `koanf:"batch" json:"batch"`
	// RDAP holds domain registration lookup settings
	RDAP RDAP `koanf:"rdap" json:"rdap"`
	// Mail holds contact-address deliverability check settings
	Mail Mail `koanf:"mail" json:"mail"`
	// Slack holds notification settings
	Slack Slack `koanf:"slack" json:"slack"`
}

// Server holds HTTP server settings
type Server struct {
	// Listen is the address the API server binds to
	Listen string `koanf:"listen" json:"listen" default:":8080"`
	// Debug enables debug-level logging
	Debug bool `koanf:"debug" json:"debug" default:"false"`
	// Pretty enables human readable console logging
	Pretty bool `koanf:"pretty" json:"pretty" default:"false"`
	// ReadTimeout is the maximum duration for reading a request
	ReadTimeout time.Duration `koanf:"read_timeout" json:"read_timeout" default:"30s"`
	// WriteTimeout is the maximum duration for writing a response
	WriteTimeout time.Duration `koanf:"write_timeout" json:"write_timeout" default:"180s"`
	// ShutdownGracePeriod is how long in-flight requests get on shutdown
	ShutdownGracePeriod time.Duration `koanf:"shutdown_grace_period" json:"shutdown_grace_period" default:"10s"`
	// MaxBodySize caps request body bytes
	MaxBodySize int64 `koanf:"max_body_size" json:"max_body_size" default:"102400"`
}

// Browser holds headless browser session settings
type Browser struct {
	// Headless runs the browser without a display
	Headless bool `koanf:"headless" json:"headless" default:"true"`
	// NavTimeout bounds a single page navigation
	NavTimeout time.Duration `koanf:"nav_timeout" json:"nav_timeout" default:"20s"`
	// UserAgent overrides the browser user agent when non-empty
	UserAgent string `koanf:"user_agent" json:"user_agent" default:""`
}

// Audit holds audit engine settings
type Audit struct {
	// Timeout bounds one complete merchant audit
	Timeout time.Duration `koanf:"timeout" json:"timeout" default:"120s"`
	// FallbackLinksPerCategory caps links visited per fallback page category
	FallbackLinksPerCategory int `koanf:"fallback_links_per_category" json:"fallback_links_per_category" default:"2"`
}

// Batch holds batch run settings
type Batch struct {
	// Delay is the fixed pause between merchants
	Delay time.Duration `koanf:"delay" json:"delay" default:"5s"`
	// DraftsDir is where remediation drafts are written
	DraftsDir string `koanf:"drafts_dir" json:"drafts_dir" default:"./drafts"`
	// Preflight enables the homepage reachability probe before each audit
	Preflight bool `koanf:"preflight" json:"preflight" default:"true"`
	// ProbeTimeout is the per-request timeout for the reachability probe
	ProbeTimeout time.Duration `koanf:"probe_timeout" json:"probe_timeout" default:"5s"`
}

// RDAP holds domain registration lookup settings
type RDAP struct {
	// Enabled turns report annotation with registration data on
	Enabled bool `koanf:"enabled" json:"enabled" default:"false"`
	// Timeout bounds a single RDAP query
	Timeout time.Duration `koanf:"timeout" json:"timeout" default:"30s"`
}

// Mail holds contact-address deliverability check settings
type Mail struct {
	// Enabled turns the deliverability gate on remediation drafts on
	Enabled bool `koanf:"enabled" json:"enabled" default:"false"`
	// DNSServer is the resolver used for MX lookups
	DNSServer string `koanf:"dns_server" json:"dns_server" default:"8.8.8.8:53"`
	// Timeout is the per-query DNS timeout
	Timeout time.Duration `koanf:"timeout" json:"timeout" default:"5s"`
}

// Slack holds notification settings
type Slack struct {
	// WebhookURL is the incoming webhook for failing-merchant notifications
	WebhookURL string `koanf:"webhook_url" json:"webhook_url" sensitive:"true" default:""`
	// RequestTimeout bounds a single webhook request
	RequestTimeout time.Duration `koanf:"request_timeout" json:"request_timeout" default:"10s"`
}

// Load builds the configuration: struct defaults first, then the YAML file
// when it exists, then PCC_-prefixed environment variables on top.
func Load(cfgFile *string) (*Config, error) {
	k := koanf.New(".")

	cfg := &Config{}
	defaults.SetDefaults(cfg)

	if cfgFile != nil && *cfgFile != "" {
		if err := k.Load(file.Provider(*cfgFile), yaml.Parser()); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("loading config file %s: %w", *cfgFile, err)
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(key, value string) (string, any) {
			// PCC_SERVER_READ_TIMEOUT -> server.read_timeout: only the first
			// underscore separates the section from the field
			key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
			key = strings.Replace(key, "_", ".", 1)

			return key, value
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigUnmarshal, err)
	}

	return cfg, nil
}
