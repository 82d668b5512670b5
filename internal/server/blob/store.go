// Package blob abstracts opaque byte storage for image payloads.
package blob

import "context"

// Ref is an opaque handle identifying stored bytes.
type Ref string

// Store is the byte-storage contract. Failures that indicate the backend is
// unreachable should wrap common.ErrorStorageUnavailable so the boundary can
// decide whether to retry.
type Store interface {
	Put(ctx context.Context, data []byte, contentType string) (Ref, error)
	Get(ctx context.Context, ref Ref) ([]byte, error)
	Delete(ctx context.Context, ref Ref) error
}
