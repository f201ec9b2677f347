package hal

import "errors"

// Package errors for the hal backend.
var (
	// ErrNoVariant is returned by Init when none of the requested HAL
	// variants is registered.
	ErrNoVariant = errors.New("hal: no HAL backend registered")
)
