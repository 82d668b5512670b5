package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophblog/internal/common"
)

// VersionStore is the persistence capability the token service needs:
// a per-subject version counter plus a revoked flag. All advancement is
// serialized by the store (row update / compare-and-swap), so concurrent
// rotations race to exactly one winner.
type VersionStore interface {
	// CurrentTokenVersion returns the subject's current version and whether
	// that version was produced by an explicit revoke.
	CurrentTokenVersion(ctx context.Context, subjectID string) (version int64, revoked bool, err error)

	// AdvanceTokenVersion unconditionally advances the counter and clears
	// the revoked flag, returning the new version.
	AdvanceTokenVersion(ctx context.Context, subjectID string) (int64, error)

	// AdvanceTokenVersionFrom advances the counter only if it still equals
	// expected, returning common.ErrorConflict when the check fails.
	AdvanceTokenVersionFrom(ctx context.Context, subjectID string, expected int64) (int64, error)

	// RevokeTokenVersion advances the counter and sets the revoked flag.
	RevokeTokenVersion(ctx context.Context, subjectID string) error
}

// Service issues and checks session tokens. A token is Active only while it
// is unexpired and carries the subject's current version; issue, refresh and
// revoke all advance that version, so every earlier token becomes stale at
// its next validation.
type Service struct {
	store     VersionStore
	secretKey []byte
	validity  time.Duration
}

func NewService(store VersionStore, secretKey []byte, validity time.Duration) *Service {
	return &Service{store: store, secretKey: secretKey, validity: validity}
}

// Issue mints a fresh token for subjectID at a new rotation version,
// invalidating any prior active token for that subject.
func (s *Service) Issue(ctx context.Context, subjectID string) (string, error) {
	version, err := s.store.AdvanceTokenVersion(ctx, subjectID)
	if err != nil {
		return "", fmt.Errorf("advancing token version: %w", err)
	}
	return signToken(subjectID, version, s.secretKey, s.validity)
}

// Validate checks signature, expiry and rotation version. On success it
// returns the verified claims (subject identity and version).
func (s *Service) Validate(ctx context.Context, tokenString string) (*Claims, error) {
	claims, err := parseToken(tokenString, s.secretKey)
	if err != nil {
		return nil, err
	}

	version, revoked, err := s.store.CurrentTokenVersion(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, ErrStale
		}
		return nil, fmt.Errorf("loading token version: %w", err)
	}
	if claims.Version != version {
		return nil, ErrStale
	}
	if revoked {
		return nil, ErrRevoked
	}
	return claims, nil
}

// Refresh rotates a valid token: the version advances by one atomically,
// retiring the old version. When two refreshes race, the compare-and-swap
// in the store lets exactly one through; the loser observes ErrStale.
func (s *Service) Refresh(ctx context.Context, tokenString string) (string, error) {
	claims, err := s.Validate(ctx, tokenString)
	if err != nil {
		return "", err
	}

	version, err := s.store.AdvanceTokenVersionFrom(ctx, claims.Subject, claims.Version)
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return "", ErrStale
		}
		return "", fmt.Errorf("rotating token version: %w", err)
	}
	return signToken(claims.Subject, version, s.secretKey, s.validity)
}

// Revoke advances the subject's version without issuing a replacement, so
// every outstanding token fails its next validation.
func (s *Service) Revoke(ctx context.Context, subjectID string) error {
	if err := s.store.RevokeTokenVersion(ctx, subjectID); err != nil {
		return fmt.Errorf("revoking token version: %w", err)
	}
	return nil
}
