package service

import "errors"

var (
	// ErrInvalidPeriod signals a caller-supplied date range that cannot be
	// computed over: unparseable dates or an end before its start. Surfaced
	// as a validation message, never attempted.
	ErrInvalidPeriod = errors.New("invalid period")

	// ErrInvalidMonth signals a calendar request outside 1..12.
	ErrInvalidMonth = errors.New("invalid month")

	// ErrMissingRoom signals a room-scoped request without a room code.
	ErrMissingRoom = errors.New("room code required")
)
