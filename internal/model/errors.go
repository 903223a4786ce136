package model

import "errors"

var (
	// ErrNotFound is returned by store lookups that match nothing.
	ErrNotFound = errors.New("not found")

	// ErrValidation covers malformed input, e.g. a phone number outside
	// the 7-15 national digit range.
	ErrValidation = errors.New("validation error")

	// ErrDuplicatePhone is returned when registering a phone number that
	// already has a directory entry.
	ErrDuplicatePhone = errors.New("phone number already registered")

	// ErrPhoneNotFound is returned when logging in with a phone number
	// that has no directory entry.
	ErrPhoneNotFound = errors.New("phone number not found")
)
