package repository

import "errors"

var (
	// ErrNotFound means no row matched the requested id.
	ErrNotFound = errors.New("resource not found")
	// ErrValidation means the input was rejected before touching storage.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidArgument means a required query argument was empty.
	ErrInvalidArgument = errors.New("invalid argument")
)
