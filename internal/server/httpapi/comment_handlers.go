package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/gophblog/internal/server/services"
)

func (s *Server) handleListComments(w http.ResponseWriter, r *http.Request) {
	items, err := s.comments.ListByArticle(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	views := make([]commentView, 0, len(items))
	for _, c := range items {
		views = append(views, toCommentView(c))
	}
	writeJSON(w, http.StatusOK, views)
}

type createCommentRequest struct {
	ArticleID string `json:"articleId"`
	Body      string `json:"body"`
	GuestName string `json:"guestName"`
}

func (s *Server) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	var req createCommentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	comment, err := s.comments.Create(r.Context(), subjectID(r.Context()), services.NewComment{
		ArticleID: req.ArticleID,
		Body:      req.Body,
		GuestName: req.GuestName,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCommentView(comment))
}

type updateCommentRequest struct {
	Body string `json:"body"`
}

func (s *Server) handleUpdateComment(w http.ResponseWriter, r *http.Request) {
	var req updateCommentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	comment, err := s.comments.Update(r.Context(), subjectID(r.Context()), r.PathValue("id"), req.Body)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCommentView(comment))
}

func (s *Server) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	if err := s.comments.Delete(r.Context(), subjectID(r.Context()), r.PathValue("id")); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
