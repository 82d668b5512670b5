package queries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/dmitrijs2005/gophblog/internal/dbx"
	"github.com/dmitrijs2005/gophblog/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const articleColumns = `a.id, a.user_id, a.title, a.body, a.status, COALESCE(a.category_id::text, ''), a.version, a.created_at, a.updated_at`

func (r *PostgresRepository) queryArticles(ctx context.Context, query string, args ...any) ([]*models.Article, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Article
	for rows.Next() {
		a := &models.Article{}
		err := rows.Scan(&a.ID, &a.UserID, &a.Title, &a.Body, &a.Status, &a.CategoryID,
			&a.Version, &a.CreatedAt, &a.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) ArticlesByTag(ctx context.Context, tagID string) ([]*models.Article, error) {
	query := `
		SELECT ` + articleColumns + `
		FROM articles a
		JOIN article_tags at ON at.article_id = a.id
		WHERE at.tag_id = $1 AND a.status <> 'deleted'
		ORDER BY a.created_at DESC
	`
	return r.queryArticles(ctx, query, tagID)
}

func (r *PostgresRepository) ArticlesByCategory(ctx context.Context, categoryID string) ([]*models.Article, error) {
	query := `
		SELECT ` + articleColumns + `
		FROM articles a
		WHERE a.category_id = $1 AND a.status <> 'deleted'
		ORDER BY a.created_at DESC
	`
	return r.queryArticles(ctx, query, categoryID)
}

func (r *PostgresRepository) TagsForArticle(ctx context.Context, articleID string) ([]*models.Tag, error) {
	query := `
		SELECT t.id, t.name, t.created_at, t.updated_at
		FROM tags t
		JOIN article_tags at ON at.tag_id = t.id
		WHERE at.article_id = $1
		ORDER BY t.name
	`
	rows, err := r.db.QueryContext(ctx, query, articleID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Tag
	for rows.Next() {
		t := &models.Tag{}
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) ArticleImage(ctx context.Context, articleID string) (*models.Image, error) {
	query := `
		SELECT id, article_id, user_id, name, content_type, size, storage_key, encrypted, COALESCE(nonce, ''::bytea), created_at, updated_at
		FROM images
		WHERE article_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	img := &models.Image{}
	err := r.db.QueryRowContext(ctx, query, articleID).
		Scan(&img.ID, &img.ArticleID, &img.UserID, &img.Name, &img.ContentType,
			&img.Size, &img.StorageKey, &img.Encrypted, &img.Nonce, &img.CreatedAt, &img.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return img, nil
}
