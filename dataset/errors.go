package dataset

import "errors"

var (
	// ErrMissingColumn is returned when a CSV header lacks a required column.
	ErrMissingColumn = errors.New("required column missing")

	// ErrMalformedCSV is returned when a file cannot be parsed as CSV.
	ErrMalformedCSV = errors.New("malformed CSV")
)
