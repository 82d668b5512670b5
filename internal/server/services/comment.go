package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/dmitrijs2005/gophblog/internal/server/models"
	"github.com/dmitrijs2005/gophblog/internal/server/repositories/repomanager"
)

// CommentService implements comment use cases. Guests may comment under a
// display name; authenticated users are linked by id. Guest comments have no
// owner, so only admins can modify them afterwards.
type CommentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewCommentService(db *sql.DB, m repomanager.RepositoryManager) *CommentService {
	return &CommentService{db: db, repomanager: m}
}

type NewComment struct {
	ArticleID string
	Body      string
	// GuestName is used only when the request carries no authenticated subject.
	GuestName string
}

func (s *CommentService) Create(ctx context.Context, actorID string, payload NewComment) (*models.Comment, error) {
	if len(payload.Body) < 1 {
		return nil, fmt.Errorf("%w: body length must be 1 or more", common.ErrorValidation)
	}
	if actorID == "" && payload.GuestName == "" {
		return nil, fmt.Errorf("%w: guest comments need a name", common.ErrorValidation)
	}

	article, err := s.repomanager.Articles(s.db).GetByID(ctx, payload.ArticleID)
	if err != nil {
		return nil, err
	}
	if article.Status != models.StatusPublished {
		return nil, common.ErrorNotFound
	}

	comment := &models.Comment{
		ArticleID: payload.ArticleID,
		UserID:    actorID,
		Body:      payload.Body,
	}
	if actorID == "" {
		comment.GuestName = payload.GuestName
	}
	comment, err = s.repomanager.Comments(s.db).Create(ctx, comment)
	if err != nil {
		return nil, fmt.Errorf("error creating comment: %w", err)
	}
	return comment, nil
}

func (s *CommentService) Get(ctx context.Context, id string) (*models.Comment, error) {
	return s.repomanager.Comments(s.db).GetByID(ctx, id)
}

func (s *CommentService) ListByArticle(ctx context.Context, articleID string) ([]*models.Comment, error) {
	return s.repomanager.Comments(s.db).ListByArticle(ctx, articleID)
}

func (s *CommentService) Update(ctx context.Context, actorID, id, body string) (*models.Comment, error) {
	if len(body) < 1 {
		return nil, fmt.Errorf("%w: body length must be 1 or more", common.ErrorValidation)
	}

	repo := s.repomanager.Comments(s.db)
	comment, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(ctx, s.repomanager, s.db, actorID, comment.UserID); err != nil {
		return nil, err
	}
	return repo.UpdateBody(ctx, id, comment.Version, body)
}

func (s *CommentService) Delete(ctx context.Context, actorID, id string) error {
	repo := s.repomanager.Comments(s.db)
	comment, err := repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authorizeOwner(ctx, s.repomanager, s.db, actorID, comment.UserID); err != nil {
		return err
	}
	return repo.Delete(ctx, id)
}
