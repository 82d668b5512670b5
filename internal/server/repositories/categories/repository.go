// Package categories declares the persistence contract for article categories.
package categories

import (
	"context"

	"github.com/dmitrijs2005/gophblog/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, category *models.Category) (*models.Category, error)
	GetByID(ctx context.Context, id string) (*models.Category, error)
	List(ctx context.Context) ([]*models.Category, error)
	Rename(ctx context.Context, id, name string) (*models.Category, error)
	Delete(ctx context.Context, id string) error
}
