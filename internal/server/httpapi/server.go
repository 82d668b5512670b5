// Package httpapi is the HTTP boundary of the blog backend. It wires the
// application services to routes, opens the sealed session cookie on
// identity-gated requests, and maps the error taxonomy to status codes.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophblog/internal/logging"
	"github.com/dmitrijs2005/gophblog/internal/server/config"
	"github.com/dmitrijs2005/gophblog/internal/server/services"
)

const sessionCookieName = "session"

type Server struct {
	cfg    *config.Config
	logger logging.Logger

	auth       *services.AuthService
	users      *services.UserService
	articles   *services.ArticleService
	comments   *services.CommentService
	categories *services.CategoryService
	tags       *services.TagService
	images     *services.ImageService
	queries    *services.QueryService

	httpServer *http.Server
}

func NewServer(cfg *config.Config, logger logging.Logger,
	auth *services.AuthService,
	users *services.UserService,
	articles *services.ArticleService,
	comments *services.CommentService,
	categories *services.CategoryService,
	tags *services.TagService,
	images *services.ImageService,
	queries *services.QueryService,
) *Server {
	s := &Server{
		cfg:        cfg,
		logger:     logger,
		auth:       auth,
		users:      users,
		articles:   articles,
		comments:   comments,
		categories: categories,
		tags:       tags,
		images:     images,
		queries:    queries,
	}
	s.httpServer = &http.Server{
		Addr:              cfg.EndpointAddr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/signup", s.handleSignup)
	mux.HandleFunc("POST /auth/signin", s.handleSignin)
	mux.HandleFunc("POST /auth/signout", s.requireAuth(s.handleSignout))
	mux.HandleFunc("POST /auth/refresh", s.handleRefresh)

	mux.HandleFunc("GET /users/{id}", s.handleGetUser)
	mux.HandleFunc("PUT /users/{id}", s.requireAuth(s.handleUpdateUser))
	mux.HandleFunc("DELETE /users/{id}", s.requireAuth(s.handleDeactivateUser))

	mux.HandleFunc("GET /articles", s.handleListArticles)
	mux.HandleFunc("POST /articles", s.requireAuth(s.handleCreateArticle))
	mux.HandleFunc("GET /articles/{id}", s.handleGetArticle)
	mux.HandleFunc("PUT /articles/{id}", s.requireAuth(s.handleUpdateArticle))
	mux.HandleFunc("DELETE /articles/{id}", s.requireAuth(s.handleDeleteArticle))
	mux.HandleFunc("POST /articles/{id}/publish", s.requireAuth(s.handlePublishArticle))

	mux.HandleFunc("GET /articles/{id}/comments", s.handleListComments)
	mux.HandleFunc("POST /comments", s.maybeAuth(s.handleCreateComment))
	mux.HandleFunc("PUT /comments/{id}", s.requireAuth(s.handleUpdateComment))
	mux.HandleFunc("DELETE /comments/{id}", s.requireAuth(s.handleDeleteComment))

	mux.HandleFunc("GET /categories", s.handleListCategories)
	mux.HandleFunc("POST /categories", s.requireAuth(s.handleCreateCategory))
	mux.HandleFunc("PUT /categories/{id}", s.requireAuth(s.handleRenameCategory))
	mux.HandleFunc("DELETE /categories/{id}", s.requireAuth(s.handleDeleteCategory))
	mux.HandleFunc("GET /categories/{id}/articles", s.handleArticlesByCategory)

	mux.HandleFunc("GET /tags", s.handleListTags)
	mux.HandleFunc("POST /tags", s.requireAuth(s.handleCreateTag))
	mux.HandleFunc("PUT /tags/{id}", s.requireAuth(s.handleRenameTag))
	mux.HandleFunc("DELETE /tags/{id}", s.requireAuth(s.handleDeleteTag))
	mux.HandleFunc("GET /tags/{id}/articles", s.handleArticlesByTag)
	mux.HandleFunc("PUT /articles/{id}/tags/{tagID}", s.requireAuth(s.handleAttachTag))
	mux.HandleFunc("DELETE /articles/{id}/tags/{tagID}", s.requireAuth(s.handleDetachTag))
	mux.HandleFunc("GET /articles/{id}/tags", s.handleTagsForArticle)

	mux.HandleFunc("POST /images", s.requireAuth(s.handleIngestImage))
	mux.HandleFunc("GET /images/{id}", s.handleGetImage)
	mux.HandleFunc("DELETE /images/{id}", s.requireAuth(s.handleDeleteImage))
	mux.HandleFunc("GET /articles/{id}/image", s.handleArticleImage)

	return s.withCORS(s.withRequestLog(mux))
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}
