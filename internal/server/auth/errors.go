package auth

import "errors"

// Authentication failures. All of them surface to the boundary as an
// unauthenticated response; none is retried internally.
var (
	// ErrExpired: the token's expiry has passed.
	ErrExpired = errors.New("token expired")
	// ErrStale: the token's version was superseded by a later issue/refresh/revoke.
	ErrStale = errors.New("token stale")
	// ErrRevoked: the subject's sessions were explicitly revoked.
	ErrRevoked = errors.New("token revoked")
	// ErrMalformed: the token or envelope is structurally invalid.
	ErrMalformed = errors.New("token malformed")
	// ErrTamperDetected: authenticated-encryption tag verification failed.
	ErrTamperDetected = errors.New("cookie tamper detected")
	// ErrKeyMismatch: the cookie was sealed under a master key that is no
	// longer accepted.
	ErrKeyMismatch = errors.New("cookie key mismatch")
)
