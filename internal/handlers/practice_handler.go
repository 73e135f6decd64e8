package handlers

import (
	"errors"
	"net/http"
	"sync"

	"homeworkhub/internal/models"
	"homeworkhub/internal/repository"
	"homeworkhub/internal/service"
)

// PracticeHandler exposes practice questions and the single live
// practice session. One session is active at a time, mirroring one
// parent device working through questions with a child.
type PracticeHandler struct {
	practiceService *service.PracticeService
	practice        *repository.PracticeQuestionRepository

	mu      sync.Mutex
	session *service.PracticeSession
}

// NewPracticeHandler creates a new practice handler
func NewPracticeHandler(practiceService *service.PracticeService, practice *repository.PracticeQuestionRepository) *PracticeHandler {
	return &PracticeHandler{
		practiceService: practiceService,
		practice:        practice,
	}
}

// sessionView is the JSON shape of the live session
type sessionView struct {
	State    service.SessionState     `json:"state"`
	ChildID  string                   `json:"child_id,omitempty"`
	Subject  string                   `json:"subject,omitempty"`
	Position int                      `json:"position,omitempty"`
	Total    int                      `json:"total,omitempty"`
	Question *models.PracticeQuestion `json:"question,omitempty"`
	Answered bool                     `json:"answered"`
	Score    int                      `json:"score"`
	Answers  []service.AnswerRecord   `json:"answers,omitempty"`
}

// ListQuestions returns practice questions filtered by child and
// completion state
func (h *PracticeHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	criteria := map[string]any{}
	if childID := query.Get("child_id"); childID != "" && childID != "all" {
		criteria["child_id"] = childID
	}
	if completed := query.Get("completed"); completed != "" {
		criteria["completed"] = completed == "true"
	}

	questions, err := h.practice.Filter(criteria)
	if err != nil {
		respondWithStoreError(w, err, "Failed to list practice questions")
		return
	}
	if questions == nil {
		questions = []models.PracticeQuestion{}
	}
	writeJSON(w, http.StatusOK, questions)
}

// StartSession begins a practice session for a child and subject
func (h *PracticeHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ChildID string `json:"child_id"`
		Subject string `json:"subject"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	session, err := h.practiceService.StartSession(req.ChildID, req.Subject)
	if err != nil {
		respondWithStoreError(w, err, "Failed to start practice session")
		return
	}

	h.mu.Lock()
	h.session = session
	view := h.viewLocked()
	h.mu.Unlock()
	writeJSON(w, http.StatusCreated, view)
}

// GetSession returns the live session
func (h *PracticeHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.session == nil {
		respondWithError(w, http.StatusNotFound, "No active practice session", "", nil)
		return
	}
	writeJSON(w, http.StatusOK, h.viewLocked())
}

// Answer submits an answer for the current question
func (h *PracticeHandler) Answer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Answer string `json:"answer"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.session == nil {
		respondWithError(w, http.StatusNotFound, "No active practice session", "", nil)
		return
	}

	correct, err := h.practiceService.SubmitAnswer(h.session, req.Answer)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotActive):
			respondWithError(w, http.StatusConflict, "Session is not active", "", nil)
		case errors.Is(err, service.ErrNoQuestions):
			respondWithError(w, http.StatusConflict, "No question to answer", "", nil)
		case errors.Is(err, service.ErrAlreadyAnswered):
			respondWithError(w, http.StatusConflict, "Question already answered", "", nil)
		default:
			respondWithStoreError(w, err, "Failed to submit answer")
		}
		return
	}

	view := h.viewLocked()
	writeJSON(w, http.StatusOK, struct {
		Correct bool        `json:"correct"`
		Session sessionView `json:"session"`
	}{Correct: correct, Session: view})
}

// Next advances to the following question or finishes the session
func (h *PracticeHandler) Next(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.session == nil {
		respondWithError(w, http.StatusNotFound, "No active practice session", "", nil)
		return
	}

	if err := h.practiceService.Advance(h.session); err != nil {
		respondWithError(w, http.StatusConflict, "Session is not active", "", err)
		return
	}
	writeJSON(w, http.StatusOK, h.viewLocked())
}

// Restart discards the session log and starts over with a fresh
// working set
func (h *PracticeHandler) Restart(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.session == nil {
		respondWithError(w, http.StatusNotFound, "No active practice session", "", nil)
		return
	}

	session, err := h.practiceService.Restart(h.session)
	if err != nil {
		respondWithStoreError(w, err, "Failed to restart practice session")
		return
	}
	h.session = session
	writeJSON(w, http.StatusCreated, h.viewLocked())
}

func (h *PracticeHandler) viewLocked() sessionView {
	sess := h.session
	position, total := sess.Position()
	view := sessionView{
		State:    sess.State(),
		ChildID:  sess.ChildID(),
		Subject:  sess.Subject(),
		Position: position,
		Total:    total,
		Answered: sess.Answered(),
		Score:    sess.Score(),
	}
	if question, ok := sess.Current(); ok {
		view.Question = &question
	}
	if sess.State() == service.SessionFinished {
		view.Answers = sess.Answers()
	}
	return view
}
