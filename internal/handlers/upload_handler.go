package handlers

import (
	"io"
	"net/http"

	"homeworkhub/internal/ai"
	"homeworkhub/internal/service"
)

// UploadHandler accepts homework scans and runs them through the
// grading pipeline
type UploadHandler struct {
	gradingService *service.GradingService
	maxSize        int64
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(gradingService *service.GradingService, maxSize int64) *UploadHandler {
	return &UploadHandler{
		gradingService: gradingService,
		maxSize:        maxSize,
	}
}

// Upload handles a multipart homework submission. Form fields: child_id,
// subject, optional title, plus one or more "files" parts.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxSize)
	if err := r.ParseMultipartForm(h.maxSize); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid upload", "", err)
		return
	}

	req := service.UploadRequest{
		ChildID: r.FormValue("child_id"),
		Subject: r.FormValue("subject"),
		Title:   r.FormValue("title"),
	}

	for _, header := range r.MultipartForm.File[uploadFieldName] {
		file, err := header.Open()
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Could not read uploaded file", "", err)
			return
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Could not read uploaded file", "", err)
			return
		}
		req.Files = append(req.Files, ai.File{Name: header.Filename, Data: data})
	}

	assignment, err := h.gradingService.ProcessUpload(r.Context(), req)
	if err != nil {
		respondWithStoreError(w, err, "Upload processing failed")
		return
	}
	writeJSON(w, http.StatusCreated, assignment)
}
