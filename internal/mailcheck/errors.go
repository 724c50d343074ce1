package mailcheck

import "errors"

// ErrEmptyEmail is returned when an empty address is provided for checking
var ErrEmptyEmail = errors.New("email must not be empty")
