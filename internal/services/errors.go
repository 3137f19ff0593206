package services

import "errors"

// Error kinds surfaced by the services. Every failure is terminal; nothing
// is retried. The HTTP boundary translates kinds to status codes.
var (
	// ErrNotFound means a referenced id did not resolve.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateIdentity means a uniqueness invariant (email or username)
	// would be violated.
	ErrDuplicateIdentity = errors.New("identity already registered")
	// ErrInvalidCredentials is the single, deliberately indistinct login
	// failure. It never reveals whether the identifier or the secret was
	// wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrForbidden means an ownership check failed.
	ErrForbidden = errors.New("forbidden")
	// ErrValidation means the input was malformed.
	ErrValidation = errors.New("invalid input")
)
