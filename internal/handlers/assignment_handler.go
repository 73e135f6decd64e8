package handlers

import (
	"net/http"
	"strconv"

	"homeworkhub/internal/entity"
	"homeworkhub/internal/models"
	"homeworkhub/internal/repository"
	"homeworkhub/internal/service"
)

// AssignmentHandler handles assignment HTTP requests
type AssignmentHandler struct {
	assignments *repository.AssignmentRepository
}

// NewAssignmentHandler creates a new assignment handler
func NewAssignmentHandler(assignments *repository.AssignmentRepository) *AssignmentHandler {
	return &AssignmentHandler{assignments: assignments}
}

// List returns assignments, optionally filtered by child and time window.
// sort defaults to newest first, limit of 0 means everything.
func (h *AssignmentHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit := 0
	if raw := query.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			respondWithError(w, http.StatusBadRequest, "Invalid limit", "", err)
			return
		}
		limit = parsed
	}

	sortBy := query.Get("sort")
	if sortBy == "" {
		sortBy = entity.DefaultSort
	}

	assignments, err := h.assignments.List(sortBy, 0)
	if err != nil {
		respondWithStoreError(w, err, "Failed to list assignments")
		return
	}

	if childID := query.Get("child_id"); childID != "" && childID != "all" {
		filtered := assignments[:0]
		for _, a := range assignments {
			if a.ChildID == childID {
				filtered = append(filtered, a)
			}
		}
		assignments = filtered
	}

	if raw := query.Get("window"); raw != "" {
		window := service.TimeWindow(raw)
		if !window.Valid() {
			respondWithError(w, http.StatusBadRequest, "Invalid time window", "", nil)
			return
		}
		assignments = service.FilterByWindow(assignments, window, timeNow())
	}

	if limit > 0 && len(assignments) > limit {
		assignments = assignments[:limit]
	}
	if assignments == nil {
		assignments = []models.Assignment{}
	}
	writeJSON(w, http.StatusOK, assignments)
}

// Get returns one assignment by id
func (h *AssignmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	assignment, err := h.assignments.Get(r.PathValue("id"))
	if err != nil {
		respondWithStoreError(w, err, "Failed to get assignment")
		return
	}
	writeJSON(w, http.StatusOK, assignment)
}

// Delete removes one assignment
func (h *AssignmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.assignments.Delete(r.PathValue("id")); err != nil {
		respondWithStoreError(w, err, "Failed to delete assignment")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
