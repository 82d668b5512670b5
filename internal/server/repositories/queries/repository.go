// Package queries declares read-only join projections across entities.
// They are read projections only; all write invariants live with the owning
// entity repositories.
package queries

import (
	"context"

	"github.com/dmitrijs2005/gophblog/internal/server/models"
)

type Repository interface {
	// ArticlesByTag returns non-deleted articles carrying the tag, newest first.
	ArticlesByTag(ctx context.Context, tagID string) ([]*models.Article, error)

	// ArticlesByCategory returns non-deleted articles in the category, newest first.
	ArticlesByCategory(ctx context.Context, categoryID string) ([]*models.Article, error)

	// TagsForArticle returns the tags attached to an article.
	TagsForArticle(ctx context.Context, articleID string) ([]*models.Tag, error)

	// ArticleImage returns the newest image metadata attached to an article.
	ArticleImage(ctx context.Context, articleID string) (*models.Image, error)
}
