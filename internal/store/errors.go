package store

import "errors"

// Sentinel errors. The service layer translates these into user-facing
// domain errors with HTTP status codes.
var (
	// ErrNotFound is returned when an entity does not exist.
	ErrNotFound = errors.New("entity not found")
	// ErrAlreadyExists is returned when creating an entity whose ID or
	// unique index value is already taken.
	ErrAlreadyExists = errors.New("entity already exists")
	// ErrSessionNotFound is returned when a session cannot be found by ID.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExpired is returned when attempting to use an expired session.
	ErrSessionExpired = errors.New("session expired")
)
