package httpapi

import "net/http"

func (s *Server) handleListTags(w http.ResponseWriter, r *http.Request) {
	items, err := s.tags.List(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTagViews(items))
}

func (s *Server) handleCreateTag(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	tag, err := s.tags.Create(r.Context(), subjectID(r.Context()), req.Name)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTagView(tag))
}

func (s *Server) handleRenameTag(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	tag, err := s.tags.Rename(r.Context(), subjectID(r.Context()), r.PathValue("id"), req.Name)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTagView(tag))
}

func (s *Server) handleDeleteTag(w http.ResponseWriter, r *http.Request) {
	if err := s.tags.Delete(r.Context(), subjectID(r.Context()), r.PathValue("id")); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleArticlesByTag(w http.ResponseWriter, r *http.Request) {
	items, err := s.queries.ArticlesByTag(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toArticleViews(items))
}

func (s *Server) handleAttachTag(w http.ResponseWriter, r *http.Request) {
	err := s.tags.Attach(r.Context(), subjectID(r.Context()), r.PathValue("id"), r.PathValue("tagID"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDetachTag(w http.ResponseWriter, r *http.Request) {
	err := s.tags.Detach(r.Context(), subjectID(r.Context()), r.PathValue("id"), r.PathValue("tagID"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTagsForArticle(w http.ResponseWriter, r *http.Request) {
	items, err := s.queries.TagsForArticle(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTagViews(items))
}
