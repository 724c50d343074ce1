package audit

import "errors"

var (
	// ErrMissingWebsite is returned when a merchant record has no website URL
	ErrMissingWebsite = errors.New("merchant record has no website URL")
	// ErrHomepageUnreachable is recorded when the merchant homepage cannot be loaded
	ErrHomepageUnreachable = errors.New("merchant homepage unreachable")
)
