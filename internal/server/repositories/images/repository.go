// Package images declares the persistence contract for image metadata.
// The image bytes themselves live in the blob store; only the metadata row
// (including the storage key) is kept here.
package images

import (
	"context"

	"github.com/dmitrijs2005/gophblog/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, image *models.Image) (*models.Image, error)
	GetByID(ctx context.Context, id string) (*models.Image, error)
	ListByArticle(ctx context.Context, articleID string) ([]*models.Image, error)
	Delete(ctx context.Context, id string) error
}
