package handlers

import (
	"net/http"

	"homeworkhub/internal/models"
	"homeworkhub/internal/repository"
)

// TutorHandler serves the tutor directory
type TutorHandler struct {
	tutors *repository.TutorRepository
}

// NewTutorHandler creates a new tutor handler
func NewTutorHandler(tutors *repository.TutorRepository) *TutorHandler {
	return &TutorHandler{tutors: tutors}
}

// List returns tutors sorted by rating, optionally filtered by subject
// and verification
func (h *TutorHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	subject := query.Get("subject")
	if subject == "all" {
		subject = ""
	}

	tutors, err := h.tutors.Browse(subject, query.Get("verified") == "true")
	if err != nil {
		respondWithStoreError(w, err, "Failed to list tutors")
		return
	}
	if tutors == nil {
		tutors = []models.Tutor{}
	}
	writeJSON(w, http.StatusOK, tutors)
}
