// Package articles declares the persistence contract for articles.
package articles

import (
	"context"

	"github.com/dmitrijs2005/gophblog/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, article *models.Article) (*models.Article, error)

	// GetByID returns the article regardless of status; callers decide how
	// deleted rows surface.
	GetByID(ctx context.Context, id string) (*models.Article, error)

	// List returns non-deleted articles, newest first.
	List(ctx context.Context, limit int) ([]*models.Article, error)

	// Update rewrites title/body/category guarded by the row version;
	// a lost race returns common.ErrorConflict.
	Update(ctx context.Context, article *models.Article) (*models.Article, error)

	// UpdateStatus moves the article from exactly the given status to the
	// next one. Zero rows affected means a concurrent transition happened
	// and yields common.ErrorConflict.
	UpdateStatus(ctx context.Context, id string, from, to models.ArticleStatus) error
}
