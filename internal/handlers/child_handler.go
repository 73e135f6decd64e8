package handlers

import (
	"net/http"

	"homeworkhub/internal/models"
	"homeworkhub/internal/service"
)

// ChildHandler handles child profile HTTP requests
type ChildHandler struct {
	childService *service.ChildService
}

// NewChildHandler creates a new child handler
func NewChildHandler(childService *service.ChildService) *ChildHandler {
	return &ChildHandler{childService: childService}
}

// List returns all children, newest first
func (h *ChildHandler) List(w http.ResponseWriter, r *http.Request) {
	children, err := h.childService.List()
	if err != nil {
		respondWithStoreError(w, err, "Failed to list children")
		return
	}
	writeJSON(w, http.StatusOK, children)
}

// Get returns one child by id
func (h *ChildHandler) Get(w http.ResponseWriter, r *http.Request) {
	child, err := h.childService.Get(r.PathValue("id"))
	if err != nil {
		respondWithStoreError(w, err, "Failed to get child")
		return
	}
	writeJSON(w, http.StatusOK, child)
}

// Create stores a new child profile
func (h *ChildHandler) Create(w http.ResponseWriter, r *http.Request) {
	var child models.Child
	if err := decodeJSON(r, &child); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	created, err := h.childService.Create(child)
	if err != nil {
		respondWithStoreError(w, err, "Failed to create child")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update merges fields into an existing child profile
func (h *ChildHandler) Update(w http.ResponseWriter, r *http.Request) {
	var fields map[string]any
	if err := decodeJSON(r, &fields); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	updated, err := h.childService.Update(r.PathValue("id"), fields)
	if err != nil {
		respondWithStoreError(w, err, "Failed to update child")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete removes a child and everything that belongs to them
func (h *ChildHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.childService.Delete(r.PathValue("id")); err != nil {
		respondWithStoreError(w, err, "Failed to delete child")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
