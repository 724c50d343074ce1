package browser

import "errors"

var (
	// ErrNoPageLoaded is returned when extraction is attempted before any successful navigation
	ErrNoPageLoaded = errors.New("no page loaded in browsing session")
)
