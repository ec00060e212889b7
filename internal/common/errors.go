// Package common defines shared constants and sentinel errors used across
// client and server layers of the Aegis backend. Callers should use errors.Is
// to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors: bad input on a creation path (empty payload,
	// reference to a user that does not exist).
	ErrorValidation = errors.New("validation error")

	// A required collaborator (classifier model, object storage) is not
	// available. Requests depending on it fail explicitly instead of being
	// masked as a low-risk default score.
	ErrorUnavailable = errors.New("service unavailable")
)
