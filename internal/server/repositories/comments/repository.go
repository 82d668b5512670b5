// Package comments declares the persistence contract for article comments.
package comments

import (
	"context"

	"github.com/dmitrijs2005/gophblog/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, comment *models.Comment) (*models.Comment, error)
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	ListByArticle(ctx context.Context, articleID string) ([]*models.Comment, error)

	// UpdateBody is guarded by the row version; common.ErrorConflict on a lost race.
	UpdateBody(ctx context.Context, id string, version int64, body string) (*models.Comment, error)

	Delete(ctx context.Context, id string) error
}
