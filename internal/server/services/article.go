package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/dmitrijs2005/gophblog/internal/dbx"
	"github.com/dmitrijs2005/gophblog/internal/server/models"
	"github.com/dmitrijs2005/gophblog/internal/server/repositories/repomanager"
)

// ArticleService implements the article use cases. Status transitions are
// one-directional (draft -> published -> deleted) and protected by optimistic
// row checks; a concurrent conflicting transition yields common.ErrorConflict.
type ArticleService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewArticleService(db *sql.DB, m repomanager.RepositoryManager) *ArticleService {
	return &ArticleService{db: db, repomanager: m}
}

// authorizeOwner passes when the actor owns the entity or holds the admin role.
func authorizeOwner(ctx context.Context, m repomanager.RepositoryManager, db dbx.DBTX, actorID, ownerID string) error {
	if actorID == "" {
		return common.ErrorUnauthorized
	}
	if actorID == ownerID {
		return nil
	}
	actor, err := m.Users(db).GetByID(ctx, actorID)
	if err != nil {
		return common.ErrorForbidden
	}
	if actor.Role == models.RoleAdmin {
		return nil
	}
	return common.ErrorForbidden
}

func validateArticleFields(title, body string) error {
	if l := len(title); l < 1 || l > 85 {
		return fmt.Errorf("%w: title length must be 1 to 85", common.ErrorValidation)
	}
	if len(body) < 1 {
		return fmt.Errorf("%w: body length must be 1 or more", common.ErrorValidation)
	}
	return nil
}

type NewArticle struct {
	Title      string
	Body       string
	Status     models.ArticleStatus
	CategoryID string
}

func (s *ArticleService) Create(ctx context.Context, actorID string, payload NewArticle) (*models.Article, error) {
	if actorID == "" {
		return nil, common.ErrorUnauthorized
	}
	if err := validateArticleFields(payload.Title, payload.Body); err != nil {
		return nil, err
	}
	if payload.Status != models.StatusDraft && payload.Status != models.StatusPublished {
		return nil, fmt.Errorf("%w: new article must be draft or published", common.ErrorValidation)
	}

	article := &models.Article{
		UserID:     actorID,
		Title:      payload.Title,
		Body:       payload.Body,
		Status:     payload.Status,
		CategoryID: payload.CategoryID,
	}
	article, err := s.repomanager.Articles(s.db).Create(ctx, article)
	if err != nil {
		return nil, fmt.Errorf("error creating article: %w", err)
	}
	return article, nil
}

// Get returns the article; deleted articles surface as not found.
func (s *ArticleService) Get(ctx context.Context, id string) (*models.Article, error) {
	article, err := s.repomanager.Articles(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article.Status == models.StatusDeleted {
		return nil, common.ErrorNotFound
	}
	return article, nil
}

func (s *ArticleService) List(ctx context.Context, limit int) ([]*models.Article, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repomanager.Articles(s.db).List(ctx, limit)
}

type UpdateArticle struct {
	Title      string
	Body       string
	CategoryID string
}

// Update rewrites the article fields. Deleted articles reject edits as not
// found; a concurrent edit loses the row-version check and yields Conflict.
func (s *ArticleService) Update(ctx context.Context, actorID, id string, payload UpdateArticle) (*models.Article, error) {
	if err := validateArticleFields(payload.Title, payload.Body); err != nil {
		return nil, err
	}

	repo := s.repomanager.Articles(s.db)
	article, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article.Status == models.StatusDeleted {
		return nil, common.ErrorNotFound
	}
	if err := authorizeOwner(ctx, s.repomanager, s.db, actorID, article.UserID); err != nil {
		return nil, err
	}

	article.Title = payload.Title
	article.Body = payload.Body
	article.CategoryID = payload.CategoryID
	return repo.Update(ctx, article)
}

// Publish moves a draft to published.
func (s *ArticleService) Publish(ctx context.Context, actorID, id string) error {
	return s.transition(ctx, actorID, id, models.StatusPublished)
}

// Delete marks the article deleted and detaches its tags, in one transaction.
// The transition is terminal: nothing can resurrect a deleted article.
func (s *ArticleService) Delete(ctx context.Context, actorID, id string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.transitionOn(ctx, tx, actorID, id, models.StatusDeleted); err != nil {
			return err
		}
		return s.repomanager.Tags(tx).DetachAllFromArticle(ctx, id)
	})
}

func (s *ArticleService) transition(ctx context.Context, actorID, id string, next models.ArticleStatus) error {
	return s.transitionOn(ctx, s.db, actorID, id, next)
}

func (s *ArticleService) transitionOn(ctx context.Context, db dbx.DBTX, actorID, id string, next models.ArticleStatus) error {
	repo := s.repomanager.Articles(db)
	article, err := repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authorizeOwner(ctx, s.repomanager, db, actorID, article.UserID); err != nil {
		return err
	}
	if !article.Status.ValidTransition(next) {
		return fmt.Errorf("%w: %s -> %s", common.ErrorConflict, article.Status, next)
	}
	if err := repo.UpdateStatus(ctx, id, article.Status, next); err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return err
		}
		return fmt.Errorf("error updating article status: %w", err)
	}
	return nil
}
