package preflight

import "errors"

var (
	// ErrEmptyURL is returned when an empty URL is provided for probing
	ErrEmptyURL = errors.New("url must not be empty")
	// ErrInvalidURL is returned when the URL cannot be turned into a request
	ErrInvalidURL = errors.New("invalid probe url")
)
