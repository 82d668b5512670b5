// Package tags declares the persistence contract for tags and the
// article-tag association.
package tags

import (
	"context"

	"github.com/dmitrijs2005/gophblog/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, tag *models.Tag) (*models.Tag, error)
	GetByID(ctx context.Context, id string) (*models.Tag, error)
	List(ctx context.Context) ([]*models.Tag, error)
	Rename(ctx context.Context, id, name string) (*models.Tag, error)
	Delete(ctx context.Context, id string) error

	// Association table operations.
	AttachToArticle(ctx context.Context, articleID, tagID string) error
	DetachFromArticle(ctx context.Context, articleID, tagID string) error
	DetachAllFromArticle(ctx context.Context, articleID string) error
}
