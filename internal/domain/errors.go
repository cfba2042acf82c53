package domain

import "errors"

// Error taxonomy surfaced to API callers. Handlers map each sentinel to an
// HTTP status; components wrap them with context via fmt.Errorf and %w.
var (
	// ErrInvalidInput covers bad positions, bad languages and malformed ids.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidImage marks payloads that cannot be decoded as an image.
	ErrInvalidImage = errors.New("invalid image")

	// ErrCapacityExceeded marks uploads above the configured size ceiling.
	ErrCapacityExceeded = errors.New("file size exceeds limit")

	// ErrMissingImages marks analyze calls before all five positions are filled.
	ErrMissingImages = errors.New("missing images")

	// ErrNotFound marks an absent image slot.
	ErrNotFound = errors.New("not found")

	// ErrUpstream marks network or non-2xx failures from a hosted model.
	ErrUpstream = errors.New("upstream model failure")

	// ErrParse marks model responses that do not match the expected schema.
	ErrParse = errors.New("model response parse failure")

	// ErrStorage marks backend read/write failures.
	ErrStorage = errors.New("storage failure")
)
