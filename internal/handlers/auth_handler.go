package handlers

import (
	"errors"
	"net/http"
	"time"

	"homeworkhub/internal/models"
	"homeworkhub/internal/security"
	"homeworkhub/internal/service"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login checks credentials and sets the session cookie
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	token, user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) || errors.Is(err, service.ErrNoUser) {
			respondWithError(w, http.StatusUnauthorized, "Invalid email or password", "", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Internal server error", "Login failed", err)
		return
	}

	expires := time.Now().Add(h.authService.SessionDuration())
	http.SetCookie(w, security.CreateSessionCookie(r, token, expires))
	writeJSON(w, http.StatusOK, sanitizeUser(user))
}

// Logout clears the session cookie. Nothing is stored server side, so
// clearing the cookie is the whole operation.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, security.CreateDeleteCookie(r))
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// Me returns the authenticated account
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sanitizeUser(GetUserFromContext(r.Context())))
}

// UpdateMe merges profile fields into the account
func (h *AuthHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var fields map[string]any
	if err := decodeJSON(r, &fields); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	user, err := h.authService.UpdateProfile(fields)
	if err != nil {
		respondWithStoreError(w, err, "Failed to update profile")
		return
	}
	writeJSON(w, http.StatusOK, sanitizeUser(user))
}

// sanitizeUser strips the password hash before a user record goes over
// the wire
func sanitizeUser(user *models.User) *models.User {
	if user == nil {
		return nil
	}
	clean := *user
	clean.PasswordHash = ""
	return &clean
}
