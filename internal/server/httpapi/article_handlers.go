package httpapi

import (
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/gophblog/internal/server/models"
	"github.com/dmitrijs2005/gophblog/internal/server/services"
)

func (s *Server) handleListArticles(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = n
	}
	items, err := s.articles.List(r.Context(), limit)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toArticleViews(items))
}

type createArticleRequest struct {
	Title      string `json:"title"`
	Body       string `json:"body"`
	Status     string `json:"status"`
	CategoryID string `json:"categoryId"`
}

func (s *Server) handleCreateArticle(w http.ResponseWriter, r *http.Request) {
	var req createArticleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	article, err := s.articles.Create(r.Context(), subjectID(r.Context()), services.NewArticle{
		Title:      req.Title,
		Body:       req.Body,
		Status:     models.ArticleStatus(req.Status),
		CategoryID: req.CategoryID,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toArticleView(article))
}

func (s *Server) handleGetArticle(w http.ResponseWriter, r *http.Request) {
	article, err := s.articles.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toArticleView(article))
}

type updateArticleRequest struct {
	Title      string `json:"title"`
	Body       string `json:"body"`
	CategoryID string `json:"categoryId"`
}

func (s *Server) handleUpdateArticle(w http.ResponseWriter, r *http.Request) {
	var req updateArticleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	article, err := s.articles.Update(r.Context(), subjectID(r.Context()), r.PathValue("id"), services.UpdateArticle{
		Title:      req.Title,
		Body:       req.Body,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toArticleView(article))
}

func (s *Server) handlePublishArticle(w http.ResponseWriter, r *http.Request) {
	if err := s.articles.Publish(r.Context(), subjectID(r.Context()), r.PathValue("id")); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteArticle(w http.ResponseWriter, r *http.Request) {
	if err := s.articles.Delete(r.Context(), subjectID(r.Context()), r.PathValue("id")); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
