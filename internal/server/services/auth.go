// Package services contains server-side business logic. Each service
// orchestrates repository calls for one entity, plus the token service for
// identity-gated operations.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"

	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/dmitrijs2005/gophblog/internal/server/auth"
	"github.com/dmitrijs2005/gophblog/internal/server/cookie"
	"github.com/dmitrijs2005/gophblog/internal/server/models"
	"github.com/dmitrijs2005/gophblog/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// dummyHash is compared against when the user does not exist, so signin
// costs the same whether or not the email is registered.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// AuthService handles signup, signin/signout and session refresh. Session
// state lives entirely in the sealed cookie plus the per-subject version
// counter; there is no session table.
type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	tokens      *auth.Service
	codec       *cookie.Codec
}

func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, tokens *auth.Service, codec *cookie.Codec) *AuthService {
	return &AuthService{db: db, repomanager: m, tokens: tokens, codec: codec}
}

// Signup creates a new user with a bcrypt-hashed password.
func (s *AuthService) Signup(ctx context.Context, email, name, password string) (*models.User, error) {
	if !emailRe.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email", common.ErrorValidation)
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("%w: password length must be 6 or more", common.ErrorValidation)
	}
	if l := len(name); l < 1 || l > 15 {
		return nil, fmt.Errorf("%w: name length must be 1 to 15", common.ErrorValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
	}
	repo := s.repomanager.Users(s.db)
	user, err = repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return user, nil
}

// Signin verifies credentials and returns a sealed session cookie value for
// the new session. A prior session for the same user becomes stale because
// issuing advances the version counter.
func (s *AuthService) Signin(ctx context.Context, email, password string) (string, *models.User, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// compare anyway so missing and present users cost the same
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return "", nil, common.ErrorUnauthorized
		}
		return "", nil, common.ErrorInternal
	}
	if !user.IsActive {
		return "", nil, common.ErrorUnauthorized
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, common.ErrorUnauthorized
	}

	token, err := s.tokens.Issue(ctx, user.ID)
	if err != nil {
		return "", nil, common.ErrorInternal
	}
	sealed, err := s.codec.Seal(token)
	if err != nil {
		return "", nil, common.ErrorInternal
	}
	return sealed, user, nil
}

// Signout revokes the subject's current session version. Every outstanding
// token fails its next validation as revoked.
func (s *AuthService) Signout(ctx context.Context, subjectID string) error {
	return s.tokens.Revoke(ctx, subjectID)
}

// Refresh opens the sealed cookie, rotates the token and reseals it. The
// presented cookie is stale from this point on.
func (s *AuthService) Refresh(ctx context.Context, sealed string) (string, error) {
	token, err := s.codec.Open(sealed)
	if err != nil {
		return "", err
	}
	rotated, err := s.tokens.Refresh(ctx, token)
	if err != nil {
		return "", err
	}
	return s.codec.Seal(rotated)
}

// Authenticate opens and validates a sealed cookie, returning the verified
// claims. Used by the HTTP layer on every identity-gated request.
func (s *AuthService) Authenticate(ctx context.Context, sealed string) (*auth.Claims, error) {
	token, err := s.codec.Open(sealed)
	if err != nil {
		return nil, err
	}
	return s.tokens.Validate(ctx, token)
}
