package browser

import (
	"context"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"
)

const (
	// defaultNavTimeout bounds a single navigation including DOM readiness.
	// Expiry is treated by callers as a skip, not a retry.
	defaultNavTimeout = 20 * time.Second
	// defaultExtractTimeout bounds reading HTML out of the loaded page
	defaultExtractTimeout = 10 * time.Second
	// defaultUserAgent is presented to merchant sites during audits
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Options configures the Chrome-backed session
type Options struct {
	headless       bool
	navTimeout     time.Duration
	extractTimeout time.Duration
	userAgent      string
}

// Option is a functional option for configuring the Chrome session
type Option func(*Options)

// WithHeadless toggles headless mode; enabled by default
func WithHeadless(headless bool) Option {
	return func(o *Options) {
		o.headless = headless
	}
}

// WithNavTimeout sets the per-navigation timeout
func WithNavTimeout(d time.Duration) Option {
	return func(o *Options) {
		if d > 0 {
			o.navTimeout = d
		}
	}
}

// WithUserAgent overrides the browser user agent
func WithUserAgent(ua string) Option {
	return func(o *Options) {
		if ua != "" {
			o.userAgent = ua
		}
	}
}

// ChromeSession implements Session on a single headless Chrome browsing
// context via chromedp. All navigations share the one context, so calls must
// be sequential; the audit engine guarantees that.
type ChromeSession struct {
	options     *Options
	allocCancel context.CancelFunc
	browserCtx  context.Context
	ctxCancel   context.CancelFunc
	currentURL  string
}

// NewChromeSession starts a headless Chrome browsing context
func NewChromeSession(opts ...Option) (*ChromeSession, error) {
	o := &Options{
		headless:       true,
		navTimeout:     defaultNavTimeout,
		extractTimeout: defaultExtractTimeout,
		userAgent:      defaultUserAgent,
	}

	for _, opt := range opts {
		opt(o)
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", o.headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(o.userAgent),
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	browserCtx, ctxCancel := chromedp.NewContext(allocCtx)

	return &ChromeSession{
		options:     o,
		allocCancel: allocCancel,
		browserCtx:  browserCtx,
		ctxCancel:   ctxCancel,
	}, nil
}

// Navigate loads a URL in the shared browsing context, waiting for the DOM to
// be ready. Failures and timeouts are logged and reported as false so the
// caller can skip the link and move on.
func (s *ChromeSession) Navigate(ctx context.Context, url string) bool {
	if ctx.Err() != nil {
		return false
	}

	navCtx, cancel := context.WithTimeout(s.browserCtx, s.options.navTimeout)
	defer cancel()

	err := chromedp.Run(navCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err != nil {
		log.Warn().Err(err).Str("url", url).Msg("navigation failed")
		return false
	}

	s.currentURL = url

	return true
}

// Links extracts the anchors from the currently loaded page
func (s *ChromeSession) Links(ctx context.Context) ([]Link, error) {
	html, err := s.outerHTML(ctx)
	if err != nil {
		return nil, err
	}

	return ExtractLinks(html, s.currentURL)
}

// BodyText extracts the visible body text from the currently loaded page
func (s *ChromeSession) BodyText(ctx context.Context) (string, error) {
	html, err := s.outerHTML(ctx)
	if err != nil {
		return "", err
	}

	return ExtractBodyText(html)
}

// Close tears down the browsing context and the Chrome process
func (s *ChromeSession) Close() error {
	s.ctxCancel()
	s.allocCancel()

	return nil
}

// outerHTML reads the rendered HTML of the current page
func (s *ChromeSession) outerHTML(ctx context.Context) (string, error) {
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	if s.currentURL == "" {
		return "", ErrNoPageLoaded
	}

	extractCtx, cancel := context.WithTimeout(s.browserCtx, s.options.extractTimeout)
	defer cancel()

	var html string
	if err := chromedp.Run(extractCtx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", err
	}

	return html, nil
}
