package browser

import "context"

// Link is a single anchor extracted from the currently loaded page
type Link struct {
	// Text is the anchor text as rendered
	Text string
	// Href is the link target resolved to an absolute URL
	Href string
}

// Session is the browsing capability the audit engine drives. A session holds
// one mutable browsing context: Navigate replaces the current page, and the
// extraction methods read from whatever page is currently loaded. The engine
// never inspects session internals beyond this interface.
type Session interface {
	// Navigate loads the given URL, waiting only for DOM readiness rather
	// than full page load, and reports success. Timeouts and network errors
	// surface as false, never as a panic or fatal error.
	Navigate(ctx context.Context, url string) bool
	// Links returns the anchors of the currently loaded page in document order
	Links(ctx context.Context) ([]Link, error)
	// BodyText returns the visible body text of the currently loaded page
	BodyText(ctx context.Context) (string, error)
	// Close releases the underlying browser resources
	Close() error
}
