package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/dmitrijs2005/gophblog/internal/server/models"
	"github.com/dmitrijs2005/gophblog/internal/server/repositories/repomanager"
)

// CategoryService implements category use cases. Categories are blog-wide,
// so mutations require the admin role.
type CategoryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewCategoryService(db *sql.DB, m repomanager.RepositoryManager) *CategoryService {
	return &CategoryService{db: db, repomanager: m}
}

// requireAdmin passes only for actors holding the admin role.
func requireAdmin(ctx context.Context, m repomanager.RepositoryManager, db *sql.DB, actorID string) error {
	if actorID == "" {
		return common.ErrorUnauthorized
	}
	actor, err := m.Users(db).GetByID(ctx, actorID)
	if err != nil {
		return common.ErrorForbidden
	}
	if actor.Role != models.RoleAdmin {
		return common.ErrorForbidden
	}
	return nil
}

func validateCategoryName(name string) error {
	if l := len(name); l < 1 || l > 20 {
		return fmt.Errorf("%w: category name length must be 1 to 20", common.ErrorValidation)
	}
	return nil
}

func (s *CategoryService) Create(ctx context.Context, actorID, name string) (*models.Category, error) {
	if err := requireAdmin(ctx, s.repomanager, s.db, actorID); err != nil {
		return nil, err
	}
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}
	return s.repomanager.Categories(s.db).Create(ctx, &models.Category{Name: name})
}

func (s *CategoryService) Get(ctx context.Context, id string) (*models.Category, error) {
	return s.repomanager.Categories(s.db).GetByID(ctx, id)
}

func (s *CategoryService) List(ctx context.Context) ([]*models.Category, error) {
	return s.repomanager.Categories(s.db).List(ctx)
}

func (s *CategoryService) Rename(ctx context.Context, actorID, id, name string) (*models.Category, error) {
	if err := requireAdmin(ctx, s.repomanager, s.db, actorID); err != nil {
		return nil, err
	}
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}
	return s.repomanager.Categories(s.db).Rename(ctx, id, name)
}

func (s *CategoryService) Delete(ctx context.Context, actorID, id string) error {
	if err := requireAdmin(ctx, s.repomanager, s.db, actorID); err != nil {
		return err
	}
	return s.repomanager.Categories(s.db).Delete(ctx, id)
}
