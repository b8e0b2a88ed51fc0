package repositories

import "errors"

var (
	// ErrNotFound is returned when a lookup by ID or email matches no record.
	ErrNotFound = errors.New("record not found")

	// ErrSkipWrite lets an Update callback end the cycle without writing.
	ErrSkipWrite = errors.New("skip write")
)

// ErrAlreadyExists is returned when a create would violate a uniqueness rule.
var ErrAlreadyExists = errors.New("record already exists")
