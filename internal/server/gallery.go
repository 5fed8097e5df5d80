package server

import (
	"errors"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"ranch-booking/internal/gallery"

	"github.com/go-chi/chi/v5"
)

// maxUploadBytes caps gallery uploads at 5 MiB.
const maxUploadBytes = 5 << 20

// ListImagesHandler returns the gallery contents as web paths.
func (s *Server) ListImagesHandler(w http.ResponseWriter, r *http.Request) {
	names, err := s.gallery.List()
	if err != nil {
		log.Printf("Error listing gallery: %v", err)
		writeError(w, http.StatusInternalServerError, "Folder read error")
		return
	}

	images := make([]string, 0, len(names))
	for _, name := range names {
		images = append(images, "/uploads/"+name)
	}
	writeJSON(w, http.StatusOK, map[string]any{"images": images})
}

// UploadImageHandler stores a multipart image upload. The body is capped
// before the multipart parse so an oversized upload is rejected without
// being written to disk.
func (s *Server) UploadImageHandler(w http.ResponseWriter, r *http.Request) {
	// Slack on top of the cap covers multipart framing overhead.
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes+4096)

	file, header, err := r.FormFile("image")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusBadRequest, "Image too large")
			return
		}
		writeError(w, http.StatusBadRequest, "No file")
		return
	}
	defer file.Close()

	if header.Size > maxUploadBytes {
		writeError(w, http.StatusBadRequest, "Image too large")
		return
	}
	if !strings.HasPrefix(header.Header.Get("Content-Type"), "image/") {
		writeError(w, http.StatusBadRequest, "Only images allowed")
		return
	}

	name, err := s.gallery.Save(filepath.Ext(header.Filename), file)
	if err != nil {
		log.Printf("Error storing upload: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"path": "/uploads/" + name})
}

// DeleteImageHandler removes a gallery image by filename.
func (s *Server) DeleteImageHandler(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	if err := s.gallery.Delete(filename); err != nil {
		if errors.Is(err, gallery.ErrNotFound) {
			writeError(w, http.StatusNotFound, "File not found")
			return
		}
		log.Printf("Error deleting image %s: %v", filename, err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "File deleted"})
}
