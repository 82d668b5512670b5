package services

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/dmitrijs2005/gophblog/internal/cryptox"
	"github.com/dmitrijs2005/gophblog/internal/server/blob"
	"github.com/dmitrijs2005/gophblog/internal/server/models"
	"github.com/dmitrijs2005/gophblog/internal/server/repositories/repomanager"
)

const maxImageSize = 5 * 1024 * 1024

// allowedImageTypes maps accepted declared content types to their canonical
// form as produced by content sniffing.
var allowedImageTypes = map[string]string{
	"image/jpg":  "image/jpeg",
	"image/jpeg": "image/jpeg",
	"image/png":  "image/png",
	"image/gif":  "image/gif",
	"image/webp": "image/webp",
}

// ImageService handles image ingestion and retrieval. Bytes go to the blob
// store first and the metadata row is written only afterwards: a failed
// metadata write leaves an orphan blob (acceptable garbage), never a metadata
// row pointing at missing bytes.
type ImageService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	store       blob.Store
	masterKey   []byte
	encrypt     bool
}

func NewImageService(db *sql.DB, m repomanager.RepositoryManager, store blob.Store, masterKey []byte, encrypt bool) *ImageService {
	return &ImageService{db: db, repomanager: m, store: store, masterKey: masterKey, encrypt: encrypt}
}

type NewImage struct {
	ArticleID   string
	Name        string
	ContentType string
	Data        []byte
}

// Ingest validates the payload, uploads the bytes and records the metadata.
// The declared content type must match the type sniffed from the bytes.
func (s *ImageService) Ingest(ctx context.Context, actorID string, payload NewImage) (*models.Image, error) {
	if l := len(payload.Name); l < 1 || l > 255 {
		return nil, fmt.Errorf("%w: name length must be 1 to 255", common.ErrorValidation)
	}
	if len(payload.Data) == 0 || len(payload.Data) > maxImageSize {
		return nil, fmt.Errorf("%w: data length must be 1 byte to 5MB", common.ErrorValidation)
	}

	canonical, ok := allowedImageTypes[payload.ContentType]
	if !ok {
		return nil, fmt.Errorf("%w: content type %s not allowed", common.ErrorValidation, payload.ContentType)
	}
	sniffed := http.DetectContentType(payload.Data)
	if sniffed != canonical {
		return nil, fmt.Errorf("%w: declared %s but content is %s", common.ErrorValidation, payload.ContentType, sniffed)
	}

	article, err := s.repomanager.Articles(s.db).GetByID(ctx, payload.ArticleID)
	if err != nil {
		return nil, err
	}
	if article.Status == models.StatusDeleted {
		return nil, common.ErrorNotFound
	}
	if err := authorizeOwner(ctx, s.repomanager, s.db, actorID, article.UserID); err != nil {
		return nil, err
	}

	data := payload.Data
	var nonce []byte
	if s.encrypt {
		data, nonce, err = cryptox.EncryptBytes(payload.Data, s.masterKey)
		if err != nil {
			return nil, common.ErrorInternal
		}
	}

	// Blob first. If the metadata insert below fails, the blob is orphaned
	// garbage; the reverse ordering would leave metadata pointing nowhere.
	ref, err := s.store.Put(ctx, data, canonical)
	if err != nil {
		return nil, err
	}

	image := &models.Image{
		ArticleID:   payload.ArticleID,
		UserID:      actorID,
		Name:        payload.Name,
		ContentType: canonical,
		Size:        int64(len(payload.Data)),
		StorageKey:  string(ref),
		Encrypted:   s.encrypt,
		Nonce:       nonce,
	}
	image, err = s.repomanager.Images(s.db).Create(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("error creating image metadata: %w", err)
	}
	return image, nil
}

// Get returns the image metadata together with the decrypted bytes.
func (s *ImageService) Get(ctx context.Context, id string) (*models.Image, []byte, error) {
	image, err := s.repomanager.Images(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	data, err := s.store.Get(ctx, blob.Ref(image.StorageKey))
	if err != nil {
		return nil, nil, err
	}
	if image.Encrypted {
		data, err = cryptox.DecryptBytes(data, image.Nonce, s.masterKey)
		if err != nil {
			return nil, nil, common.ErrorInternal
		}
	}
	return image, data, nil
}

func (s *ImageService) ListByArticle(ctx context.Context, articleID string) ([]*models.Image, error) {
	return s.repomanager.Images(s.db).ListByArticle(ctx, articleID)
}

// Delete removes the metadata row, then the blob. Blob removal is
// best-effort: an orphan blob is acceptable, dangling metadata is not.
func (s *ImageService) Delete(ctx context.Context, actorID, id string) error {
	image, err := s.repomanager.Images(s.db).GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authorizeOwner(ctx, s.repomanager, s.db, actorID, image.UserID); err != nil {
		return err
	}
	if err := s.repomanager.Images(s.db).Delete(ctx, id); err != nil {
		return err
	}
	_ = s.store.Delete(ctx, blob.Ref(image.StorageKey))
	return nil
}
