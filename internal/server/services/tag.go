package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/dmitrijs2005/gophblog/internal/server/models"
	"github.com/dmitrijs2005/gophblog/internal/server/repositories/repomanager"
)

// TagService implements tag use cases, including attaching tags to articles.
// Tag creation and renaming are admin operations; attaching a tag to an
// article belongs to the article's owner.
type TagService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewTagService(db *sql.DB, m repomanager.RepositoryManager) *TagService {
	return &TagService{db: db, repomanager: m}
}

func validateTagName(name string) error {
	if l := len(name); l < 1 || l > 15 {
		return fmt.Errorf("%w: tag name length must be 1 to 15", common.ErrorValidation)
	}
	return nil
}

func (s *TagService) Create(ctx context.Context, actorID, name string) (*models.Tag, error) {
	if err := requireAdmin(ctx, s.repomanager, s.db, actorID); err != nil {
		return nil, err
	}
	if err := validateTagName(name); err != nil {
		return nil, err
	}
	return s.repomanager.Tags(s.db).Create(ctx, &models.Tag{Name: name})
}

func (s *TagService) Get(ctx context.Context, id string) (*models.Tag, error) {
	return s.repomanager.Tags(s.db).GetByID(ctx, id)
}

func (s *TagService) List(ctx context.Context) ([]*models.Tag, error) {
	return s.repomanager.Tags(s.db).List(ctx)
}

func (s *TagService) Rename(ctx context.Context, actorID, id, name string) (*models.Tag, error) {
	if err := requireAdmin(ctx, s.repomanager, s.db, actorID); err != nil {
		return nil, err
	}
	if err := validateTagName(name); err != nil {
		return nil, err
	}
	return s.repomanager.Tags(s.db).Rename(ctx, id, name)
}

func (s *TagService) Delete(ctx context.Context, actorID, id string) error {
	if err := requireAdmin(ctx, s.repomanager, s.db, actorID); err != nil {
		return err
	}
	return s.repomanager.Tags(s.db).Delete(ctx, id)
}

// Attach links a tag to an article owned by the actor.
func (s *TagService) Attach(ctx context.Context, actorID, articleID, tagID string) error {
	article, err := s.repomanager.Articles(s.db).GetByID(ctx, articleID)
	if err != nil {
		return err
	}
	if article.Status == models.StatusDeleted {
		return common.ErrorNotFound
	}
	if err := authorizeOwner(ctx, s.repomanager, s.db, actorID, article.UserID); err != nil {
		return err
	}
	if _, err := s.repomanager.Tags(s.db).GetByID(ctx, tagID); err != nil {
		return err
	}
	return s.repomanager.Tags(s.db).AttachToArticle(ctx, articleID, tagID)
}

// Detach removes a tag from an article owned by the actor.
func (s *TagService) Detach(ctx context.Context, actorID, articleID, tagID string) error {
	article, err := s.repomanager.Articles(s.db).GetByID(ctx, articleID)
	if err != nil {
		return err
	}
	if err := authorizeOwner(ctx, s.repomanager, s.db, actorID, article.UserID); err != nil {
		return err
	}
	return s.repomanager.Tags(s.db).DetachFromArticle(ctx, articleID, tagID)
}
