package rdap

import "errors"

var (
	// ErrEmptyDomain is returned when an empty domain is provided for lookup
	ErrEmptyDomain = errors.New("domain must not be empty")
	// ErrUnexpectedResponse is returned when RDAP responds with something other than a domain object
	ErrUnexpectedResponse = errors.New("unexpected RDAP response object")
)
