package policy

import "errors"

var (
	// ErrUnknownKind is returned when a policy kind has no catalog definition
	ErrUnknownKind = errors.New("unknown policy kind")
)
