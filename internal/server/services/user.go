package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/dmitrijs2005/gophblog/internal/dbx"
	"github.com/dmitrijs2005/gophblog/internal/server/models"
	"github.com/dmitrijs2005/gophblog/internal/server/repositories/repomanager"
)

// UserService implements the profile use cases: read, rename, deactivate.
// Deactivated accounts read as missing everywhere.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager) *UserService {
	return &UserService{db: db, repomanager: m}
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, common.ErrorNotFound
	}
	return user, nil
}

// UpdateName changes the display name. Only the owner or an admin may rename.
func (s *UserService) UpdateName(ctx context.Context, actorID, id, name string) (*models.User, error) {
	if l := len(name); l < 1 || l > 15 {
		return nil, fmt.Errorf("%w: name length must be 1 to 15", common.ErrorValidation)
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, common.ErrorNotFound
	}
	if err := authorizeOwner(ctx, s.repomanager, s.db, actorID, user.ID); err != nil {
		return nil, err
	}
	if err := repo.UpdateName(ctx, id, name); err != nil {
		return nil, fmt.Errorf("error updating user name: %w", err)
	}
	return repo.GetByID(ctx, id)
}

// Deactivate retires the account and revokes its outstanding sessions in one
// transaction, so no token issued before deactivation validates afterwards.
func (s *UserService) Deactivate(ctx context.Context, actorID, id string) error {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !user.IsActive {
		return common.ErrorNotFound
	}
	if err := authorizeOwner(ctx, s.repomanager, s.db, actorID, user.ID); err != nil {
		return err
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		txRepo := s.repomanager.Users(tx)
		if err := txRepo.Deactivate(ctx, id); err != nil {
			return err
		}
		return txRepo.RevokeTokenVersion(ctx, id)
	})
}
