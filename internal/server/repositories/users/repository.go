// Package users declares the persistence contract for identity records,
// including the per-subject token version counter used by the token service.
package users

import (
	"context"

	"github.com/dmitrijs2005/gophblog/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateName(ctx context.Context, id, name string) error
	Deactivate(ctx context.Context, id string) error

	// Token version operations; see auth.VersionStore.
	CurrentTokenVersion(ctx context.Context, id string) (version int64, revoked bool, err error)
	AdvanceTokenVersion(ctx context.Context, id string) (int64, error)
	AdvanceTokenVersionFrom(ctx context.Context, id string, expected int64) (int64, error)
	RevokeTokenVersion(ctx context.Context, id string) error
}
