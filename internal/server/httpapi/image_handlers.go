package httpapi

import (
	"io"
	"net/http"

	"github.com/dmitrijs2005/gophblog/internal/server/services"
)

// Multipart uploads are read fully into memory; the service bounds the size
// anyway, so the reader is capped a little above that bound.
const maxUploadBytes = 6 * 1024 * 1024

func (s *Server) handleIngestImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read file")
		return
	}

	image, err := s.images.Ingest(r.Context(), subjectID(r.Context()), services.NewImage{
		ArticleID:   r.FormValue("articleId"),
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toImageView(image))
}

func (s *Server) handleGetImage(w http.ResponseWriter, r *http.Request) {
	image, data, err := s.images.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", image.ContentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleDeleteImage(w http.ResponseWriter, r *http.Request) {
	if err := s.images.Delete(r.Context(), subjectID(r.Context()), r.PathValue("id")); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleArticleImage(w http.ResponseWriter, r *http.Request) {
	image, err := s.queries.ArticleImage(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toImageView(image))
}
