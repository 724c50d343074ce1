package preflight

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/projectdiscovery/httpx/common/httpx"
	"github.com/rs/zerolog/log"
)

const (
	// defaultProbeTimeout is the per-request timeout for httpx probing.
	// Merchant homepages usually respond within 2s; 5s allows for slower
	// hosts without stalling the batch on dead targets.
	defaultProbeTimeout = 5 * time.Second
	// defaultMaxRedirects is the maximum redirect hops during probing
	defaultMaxRedirects = 5
	// defaultMaxResponseBodySize is the maximum response body bytes to read (64KB).
	// The probe only needs headers and enough body to confirm HTML came back.
	defaultMaxResponseBodySize = 64 * 1024
)

// Result captures the homepage reachability probe outcome
type Result struct {
	// URL is the probed homepage URL
	URL string `json:"url"`
	// FinalURL is the last hop of the redirect chain when one occurred
	FinalURL string `json:"final_url,omitempty"`
	// StatusCode is the HTTP status of the final response
	StatusCode int `json:"status_code"`
	// Reachable indicates the homepage answered with a non-error status
	Reachable bool `json:"reachable"`
}

// Options configures homepage probing behavior
type Options struct {
	probeTimeout        time.Duration
	maxRedirects        int
	maxResponseBodySize int64
	userAgent           string
}

// Option is a functional option for configuring the prober
type Option func(*Options)

// WithProbeTimeout sets the per-request probe timeout
func WithProbeTimeout(d time.Duration) Option {
	return func(o *Options) {
		if d > 0 {
			o.probeTimeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header sent with probes
func WithUserAgent(ua string) Option {
	return func(o *Options) {
		if ua != "" {
			o.userAgent = ua
		}
	}
}

// Prober checks merchant homepage reachability before a browser session is
// spent on the site
type Prober struct {
	options *Options
}

// NewProber creates a homepage reachability prober
func NewProber(opts ...Option) *Prober {
	o := &Options{
		probeTimeout:        defaultProbeTimeout,
		maxRedirects:        defaultMaxRedirects,
		maxResponseBodySize: defaultMaxResponseBodySize,
		userAgent:           "Mozilla/5.0 (compatible; PolicyComplianceChecker/1.0)",
	}

	for _, opt := range opts {
		opt(o)
	}

	return &Prober{options: o}
}

// Probe sends a GET request to the homepage URL and reports reachability.
// Transport failures are reported through Result.Reachable rather than an
// error so callers can treat dead sites as an audit outcome
func (p *Prober) Probe(ctx context.Context, homepageURL string) (*Result, error) {
	homepageURL = strings.TrimSpace(homepageURL)
	if homepageURL == "" {
		return nil, ErrEmptyURL
	}

	client, err := p.newHTTPXClient()
	if err != nil {
		return nil, fmt.Errorf("initializing httpx client: %w", err)
	}

	result := &Result{URL: homepageURL}

	req, err := client.NewRequestWithContext(ctx, "GET", homepageURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	resp, err := client.Do(req, httpx.UnsafeOptions{})
	if err != nil {
		log.Debug().Err(err).Str("url", homepageURL).Msg("homepage probe failed")
		return result, nil
	}

	result.StatusCode = resp.StatusCode
	result.Reachable = resp.StatusCode > 0 && resp.StatusCode < http.StatusInternalServerError

	if resp.HasChain() {
		if last := resp.GetChainLastURL(); last != "" {
			result.FinalURL = last
		}
	}

	return result, nil
}

// newHTTPXClient creates a configured httpx client
func (p *Prober) newHTTPXClient() (*httpx.HTTPX, error) {
	return httpx.New(&httpx.Options{
		Timeout:                   p.options.probeTimeout,
		FollowRedirects:           true,
		MaxRedirects:              p.options.maxRedirects,
		MaxResponseBodySizeToRead: p.options.maxResponseBodySize,
		DefaultUserAgent:          p.options.userAgent,
	})
}
