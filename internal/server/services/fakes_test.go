package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/dmitrijs2005/gophblog/internal/dbx"
	"github.com/dmitrijs2005/gophblog/internal/server/blob"
	"github.com/dmitrijs2005/gophblog/internal/server/models"
	"github.com/dmitrijs2005/gophblog/internal/server/repositories/articles"
	"github.com/dmitrijs2005/gophblog/internal/server/repositories/categories"
	"github.com/dmitrijs2005/gophblog/internal/server/repositories/comments"
	"github.com/dmitrijs2005/gophblog/internal/server/repositories/images"
	"github.com/dmitrijs2005/gophblog/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophblog/internal/server/repositories/tags"
	"github.com/dmitrijs2005/gophblog/internal/server/repositories/users"
)

// In-memory repository fakes for service tests. They mirror the conflict
// semantics of the SQL implementations (row-version checks, duplicate keys)
// without a database. Methods a test never reaches come from the embedded
// nil interface and would panic, which is the desired failure mode.

type fakeRepoMgr struct {
	repomanager.RepositoryManager
	users      *fakeUsersRepo
	articles   *fakeArticlesRepo
	comments   *fakeCommentsRepo
	images     *fakeImagesRepo
	categories *fakeCategoriesRepo
	tags       *fakeTagsRepo
}

func newFakeRepoMgr() *fakeRepoMgr {
	return &fakeRepoMgr{
		users:      &fakeUsersRepo{byID: map[string]*models.User{}},
		articles:   &fakeArticlesRepo{byID: map[string]*models.Article{}},
		comments:   &fakeCommentsRepo{byID: map[string]*models.Comment{}},
		images:     &fakeImagesRepo{byID: map[string]*models.Image{}},
		categories: &fakeCategoriesRepo{byID: map[string]*models.Category{}},
		tags:       &fakeTagsRepo{byID: map[string]*models.Tag{}, attached: map[string]map[string]bool{}},
	}
}

func (m *fakeRepoMgr) Users(dbx.DBTX) users.Repository           { return m.users }
func (m *fakeRepoMgr) Articles(dbx.DBTX) articles.Repository     { return m.articles }
func (m *fakeRepoMgr) Comments(dbx.DBTX) comments.Repository     { return m.comments }
func (m *fakeRepoMgr) Images(dbx.DBTX) images.Repository         { return m.images }
func (m *fakeRepoMgr) Categories(dbx.DBTX) categories.Repository { return m.categories }
func (m *fakeRepoMgr) Tags(dbx.DBTX) tags.Repository             { return m.tags }

type fakeUsersRepo struct {
	mu   sync.Mutex
	byID map[string]*models.User
	seq  int
}

func (f *fakeUsersRepo) Create(_ context.Context, user *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Email == user.Email {
			return nil, common.ErrorAlreadyExists
		}
	}
	f.seq++
	u := *user
	u.ID = fmt.Sprintf("u-%d", f.seq)
	u.IsActive = true
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	f.byID[u.ID] = &u
	out := u
	return &out, nil
}

func (f *fakeUsersRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *u
	return &out, nil
}

func (f *fakeUsersRepo) UpdateName(_ context.Context, id, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.Name = name
	return nil
}

func (f *fakeUsersRepo) Deactivate(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok || !u.IsActive {
		return common.ErrorNotFound
	}
	u.IsActive = false
	return nil
}

func (f *fakeUsersRepo) CurrentTokenVersion(_ context.Context, id string) (int64, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return 0, false, common.ErrorNotFound
	}
	return u.TokenVersion, u.TokenRevoked, nil
}

func (f *fakeUsersRepo) AdvanceTokenVersion(_ context.Context, id string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return 0, common.ErrorNotFound
	}
	u.TokenVersion++
	u.TokenRevoked = false
	return u.TokenVersion, nil
}

func (f *fakeUsersRepo) AdvanceTokenVersionFrom(_ context.Context, id string, expected int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok || u.TokenVersion != expected {
		return 0, common.ErrorConflict
	}
	u.TokenVersion++
	u.TokenRevoked = false
	return u.TokenVersion, nil
}

func (f *fakeUsersRepo) RevokeTokenVersion(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.TokenVersion++
	u.TokenRevoked = true
	return nil
}

type fakeArticlesRepo struct {
	mu   sync.Mutex
	byID map[string]*models.Article
	seq  int
}

func (f *fakeArticlesRepo) Create(_ context.Context, article *models.Article) (*models.Article, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	a := *article
	a.ID = fmt.Sprintf("a-%d", f.seq)
	a.Version = 1
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	f.byID[a.ID] = &a
	out := a
	return &out, nil
}

func (f *fakeArticlesRepo) GetByID(_ context.Context, id string) (*models.Article, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *a
	return &out, nil
}

func (f *fakeArticlesRepo) List(_ context.Context, limit int) ([]*models.Article, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*models.Article
	for _, a := range f.byID {
		if a.Status == models.StatusDeleted || len(result) >= limit {
			continue
		}
		out := *a
		result = append(result, &out)
	}
	return result, nil
}

func (f *fakeArticlesRepo) Update(_ context.Context, article *models.Article) (*models.Article, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.byID[article.ID]
	if !ok || a.Version != article.Version {
		return nil, common.ErrorConflict
	}
	a.Title = article.Title
	a.Body = article.Body
	a.CategoryID = article.CategoryID
	a.Version++
	a.UpdatedAt = time.Now()
	out := *a
	return &out, nil
}

func (f *fakeArticlesRepo) UpdateStatus(_ context.Context, id string, from, to models.ArticleStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.byID[id]
	if !ok || a.Status != from {
		return common.ErrorConflict
	}
	a.Status = to
	a.Version++
	a.UpdatedAt = time.Now()
	return nil
}

type fakeCommentsRepo struct {
	mu   sync.Mutex
	byID map[string]*models.Comment
	seq  int
}

func (f *fakeCommentsRepo) Create(_ context.Context, comment *models.Comment) (*models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	c := *comment
	c.ID = fmt.Sprintf("c-%d", f.seq)
	c.Version = 1
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	f.byID[c.ID] = &c
	out := c
	return &out, nil
}

func (f *fakeCommentsRepo) GetByID(_ context.Context, id string) (*models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *c
	return &out, nil
}

func (f *fakeCommentsRepo) ListByArticle(_ context.Context, articleID string) ([]*models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*models.Comment
	for _, c := range f.byID {
		if c.ArticleID == articleID {
			out := *c
			result = append(result, &out)
		}
	}
	return result, nil
}

func (f *fakeCommentsRepo) UpdateBody(_ context.Context, id string, version int64, body string) (*models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.byID[id]
	if !ok || c.Version != version {
		return nil, common.ErrorConflict
	}
	c.Body = body
	c.Version++
	c.UpdatedAt = time.Now()
	out := *c
	return &out, nil
}

func (f *fakeCommentsRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeImagesRepo struct {
	mu       sync.Mutex
	byID     map[string]*models.Image
	seq      int
	failNext error
}

func (f *fakeImagesRepo) Create(_ context.Context, image *models.Image) (*models.Image, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil
		return nil, err
	}
	f.seq++
	i := *image
	i.ID = fmt.Sprintf("i-%d", f.seq)
	i.CreatedAt = time.Now()
	i.UpdatedAt = i.CreatedAt
	f.byID[i.ID] = &i
	out := i
	return &out, nil
}

func (f *fakeImagesRepo) GetByID(_ context.Context, id string) (*models.Image, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *i
	return &out, nil
}

func (f *fakeImagesRepo) ListByArticle(_ context.Context, articleID string) ([]*models.Image, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*models.Image
	for _, i := range f.byID {
		if i.ArticleID == articleID {
			out := *i
			result = append(result, &out)
		}
	}
	return result, nil
}

func (f *fakeImagesRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeCategoriesRepo struct {
	mu   sync.Mutex
	byID map[string]*models.Category
	seq  int
}

func (f *fakeCategoriesRepo) Create(_ context.Context, category *models.Category) (*models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.byID {
		if c.Name == category.Name {
			return nil, common.ErrorAlreadyExists
		}
	}
	f.seq++
	c := *category
	c.ID = fmt.Sprintf("cat-%d", f.seq)
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	f.byID[c.ID] = &c
	out := c
	return &out, nil
}

func (f *fakeCategoriesRepo) GetByID(_ context.Context, id string) (*models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *c
	return &out, nil
}

func (f *fakeCategoriesRepo) List(_ context.Context) ([]*models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*models.Category
	for _, c := range f.byID {
		out := *c
		result = append(result, &out)
	}
	return result, nil
}

func (f *fakeCategoriesRepo) Rename(_ context.Context, id, name string) (*models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c.Name = name
	c.UpdatedAt = time.Now()
	out := *c
	return &out, nil
}

func (f *fakeCategoriesRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeTagsRepo struct {
	mu       sync.Mutex
	byID     map[string]*models.Tag
	attached map[string]map[string]bool // articleID -> tagID set
	seq      int
}

func (f *fakeTagsRepo) Create(_ context.Context, tag *models.Tag) (*models.Tag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.byID {
		if existing.Name == tag.Name {
			return nil, common.ErrorAlreadyExists
		}
	}
	f.seq++
	tg := *tag
	tg.ID = fmt.Sprintf("t-%d", f.seq)
	tg.CreatedAt = time.Now()
	tg.UpdatedAt = tg.CreatedAt
	f.byID[tg.ID] = &tg
	out := tg
	return &out, nil
}

func (f *fakeTagsRepo) GetByID(_ context.Context, id string) (*models.Tag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	tg, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *tg
	return &out, nil
}

func (f *fakeTagsRepo) List(_ context.Context) ([]*models.Tag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*models.Tag
	for _, tg := range f.byID {
		out := *tg
		result = append(result, &out)
	}
	return result, nil
}

func (f *fakeTagsRepo) Rename(_ context.Context, id, name string) (*models.Tag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	tg, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	tg.Name = name
	tg.UpdatedAt = time.Now()
	out := *tg
	return &out, nil
}

func (f *fakeTagsRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeTagsRepo) AttachToArticle(_ context.Context, articleID, tagID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.attached[articleID] == nil {
		f.attached[articleID] = map[string]bool{}
	}
	f.attached[articleID][tagID] = true
	return nil
}

func (f *fakeTagsRepo) DetachFromArticle(_ context.Context, articleID, tagID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.attached[articleID], tagID)
	return nil
}

func (f *fakeTagsRepo) DetachAllFromArticle(_ context.Context, articleID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.attached, articleID)
	return nil
}

// fakeBlobStore keeps blobs in a map and counts writes so tests can assert
// on the blob-first ordering of image ingestion.
type fakeBlobStore struct {
	mu    sync.Mutex
	blobs map[blob.Ref][]byte
	seq   int
	puts  int
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{blobs: map[blob.Ref][]byte{}}
}

func (f *fakeBlobStore) Put(_ context.Context, data []byte, _ string) (blob.Ref, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	f.puts++
	ref := blob.Ref(fmt.Sprintf("blob-%d", f.seq))
	f.blobs[ref] = append([]byte(nil), data...)
	return ref, nil
}

func (f *fakeBlobStore) Get(_ context.Context, ref blob.Ref) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.blobs[ref]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return append([]byte(nil), data...), nil
}

func (f *fakeBlobStore) Delete(_ context.Context, ref blob.Ref) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.blobs, ref)
	return nil
}
