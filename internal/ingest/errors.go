package ingest

import "errors"

var (
	// ErrEmptyInput is returned when the input contains no rows at all
	ErrEmptyInput = errors.New("input contains no rows")
	// ErrMissingWebsiteColumn is returned when the header lacks a website column
	ErrMissingWebsiteColumn = errors.New("input header has no website column")
)
