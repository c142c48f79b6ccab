package domain

import "errors"

var (
	// ErrNotFound is returned by read paths when the row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnknownBank is returned when a review references a bank that is
	// not seeded in the banks table.
	ErrUnknownBank = errors.New("unknown bank")
)
