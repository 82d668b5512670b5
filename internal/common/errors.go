// Package common defines shared constants and sentinel errors used across
// the blog backend layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")

	// Optimistic-concurrency error: a status transition or token version
	// advancement lost a race with a concurrent writer.
	ErrorConflict = errors.New("conflict")

	// Validation errors (field constraints, declared/sniffed content-type mismatch).
	ErrorValidation = errors.New("validation error")

	// Blob store errors.
	ErrorStorageUnavailable = errors.New("storage unavailable")
)
