package store

import "errors"

// Sentinel errors returned by store operations. Services translate these into
// domain errors with the right codes.
var (
	ErrNotFound       = errors.New("not found")
	ErrAlreadyExists  = errors.New("already exists")
	ErrSessionExpired = errors.New("session expired")
)
