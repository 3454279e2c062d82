package repository

import "errors"

var (
	// ErrNotFound is returned when a row the caller asked for does not exist.
	ErrNotFound = errors.New("record not found")
)
