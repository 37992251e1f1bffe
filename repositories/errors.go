package repositories

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrHostMismatch is returned by guarded room writes when the row's host
	// no longer matches the caller that fetched it.
	ErrHostMismatch = errors.New("room host mismatch")
)
