package errs

import "errors"

var (
	// ErrInvalidToken marks a persisted token that is malformed or
	// expired. Restore treats it as "no session", never as a failure.
	ErrInvalidToken = errors.New("invalid token")

	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")
	ErrConflict  = errors.New("already exists")
)
