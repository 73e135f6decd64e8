package handlers

import (
	"net/http"

	"homeworkhub/internal/service"
)

// ProgressHandler serves the dashboard and per-child progress views
type ProgressHandler struct {
	progressService *service.ProgressService
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(progressService *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

// Dashboard returns the weekly stats. child_id of "all" or absent covers
// every child.
func (h *ProgressHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.progressService.Dashboard(r.URL.Query().Get("child_id"))
	if err != nil {
		respondWithStoreError(w, err, "Failed to compute dashboard stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// Progress returns the full progress view for one child
func (h *ProgressHandler) Progress(w http.ResponseWriter, r *http.Request) {
	window := service.TimeWindow(r.URL.Query().Get("window"))
	if window == "" {
		window = service.WindowAll
	}

	progress, err := h.progressService.Progress(r.PathValue("childId"), window)
	if err != nil {
		respondWithStoreError(w, err, "Failed to compute progress")
		return
	}
	writeJSON(w, http.StatusOK, progress)
}
