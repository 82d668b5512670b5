package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gophblog/internal/server/models"
	"github.com/dmitrijs2005/gophblog/internal/server/repositories/repomanager"
)

// QueryService exposes the read-only join projections. No invariants beyond
// referential correctness of the underlying joins.
type QueryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewQueryService(db *sql.DB, m repomanager.RepositoryManager) *QueryService {
	return &QueryService{db: db, repomanager: m}
}

func (s *QueryService) ArticlesByTag(ctx context.Context, tagID string) ([]*models.Article, error) {
	return s.repomanager.Queries(s.db).ArticlesByTag(ctx, tagID)
}

func (s *QueryService) ArticlesByCategory(ctx context.Context, categoryID string) ([]*models.Article, error) {
	return s.repomanager.Queries(s.db).ArticlesByCategory(ctx, categoryID)
}

func (s *QueryService) TagsForArticle(ctx context.Context, articleID string) ([]*models.Tag, error) {
	return s.repomanager.Queries(s.db).TagsForArticle(ctx, articleID)
}

func (s *QueryService) ArticleImage(ctx context.Context, articleID string) (*models.Image, error) {
	return s.repomanager.Queries(s.db).ArticleImage(ctx, articleID)
}
