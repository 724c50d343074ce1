package api

import "errors"

var (
	// ErrInvalidRequestBody is returned when the request body cannot be decoded
	ErrInvalidRequestBody = errors.New("invalid request body")
	// ErrWebsiteRequired is returned when no website is provided for auditing
	ErrWebsiteRequired = errors.New("website required")
	// ErrInvalidWebsite is returned when the website cannot be turned into a URL
	ErrInvalidWebsite = errors.New("invalid website")
	// ErrAuditorNotConfigured is returned when no auditor is wired into the handler
	ErrAuditorNotConfigured = errors.New("auditor not configured")
	// ErrMultipleJSONObjects is returned when the request body contains more than one JSON object
	ErrMultipleJSONObjects = errors.New("request body must contain a single JSON object")
)
