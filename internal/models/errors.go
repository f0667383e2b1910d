package models

import "errors"

// Sentinel errors for the data layer. Repos and services wrap these with
// context via fmt.Errorf("%w", ...) so handlers can map them to HTTP codes
// with errors.Is. Store errors that don't fit the taxonomy are propagated
// as-is.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrNotFound        = errors.New("not found")
	ErrAlreadyExists   = errors.New("already exists")
	ErrInvalidInput    = errors.New("invalid input")
)
