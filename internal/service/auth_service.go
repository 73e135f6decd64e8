package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"homeworkhub/internal/entity"
	"homeworkhub/internal/models"
	"homeworkhub/internal/repository"
	"homeworkhub/internal/security"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNoUser             = errors.New("no user account exists")
)

// AuthService handles the singleton parent account: login against the
// seeded credentials, session token validation, and profile updates.
type AuthService struct {
	users           *repository.UserRepository
	secret          []byte
	sessionDuration time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(users *repository.UserRepository, sessionSecret string, sessionDuration time.Duration) *AuthService {
	return &AuthService{
		users:           users,
		secret:          []byte(sessionSecret),
		sessionDuration: sessionDuration,
	}
}

// SessionDuration returns how long issued sessions stay valid
func (s *AuthService) SessionDuration() time.Duration {
	return s.sessionDuration
}

// Login checks the credentials against the stored account and issues a
// session token
func (s *AuthService) Login(email, password string) (string, *models.User, error) {
	user, err := s.users.Me()
	if err != nil {
		return "", nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return "", nil, ErrNoUser
	}

	if !strings.EqualFold(email, user.Email) || !security.CheckPassword(password, user.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := security.NewSessionToken(s.secret, user.Email, s.sessionDuration)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue session token: %w", err)
	}
	return token, user, nil
}

// ValidateSession checks a session token and returns the account it names
func (s *AuthService) ValidateSession(token string) (*models.User, error) {
	claims, err := security.ParseSessionToken(s.secret, token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Me()
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil || !strings.EqualFold(claims.Email, user.Email) {
		return nil, security.ErrInvalidToken
	}
	return user, nil
}

// Me returns the current user, or nil when none exists
func (s *AuthService) Me() (*models.User, error) {
	return s.users.Me()
}

// UpdateProfile merges the named fields into the user record. The password
// hash cannot be changed through a profile update.
func (s *AuthService) UpdateProfile(fields map[string]any) (*models.User, error) {
	delete(fields, "password_hash")
	if raw, ok := fields["subscription_plan"]; ok {
		plan, _ := raw.(string)
		if !models.SubscriptionPlan(plan).Valid() {
			return nil, &entity.ValidationError{Field: "subscription_plan", Reason: "unknown subscription plan"}
		}
	}
	return s.users.UpdateMyUserData(fields)
}
