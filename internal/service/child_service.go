package service

import (
	"fmt"
	"strings"

	"homeworkhub/internal/entity"
	"homeworkhub/internal/models"
	"homeworkhub/internal/repository"
)

// ChildService manages child profiles and owns the cascade that keeps
// assignments and practice questions consistent when a child is removed.
type ChildService struct {
	children    *repository.ChildRepository
	assignments *repository.AssignmentRepository
	practice    *repository.PracticeQuestionRepository
}

// NewChildService creates a new child service
func NewChildService(children *repository.ChildRepository, assignments *repository.AssignmentRepository, practice *repository.PracticeQuestionRepository) *ChildService {
	return &ChildService{
		children:    children,
		assignments: assignments,
		practice:    practice,
	}
}

// List returns all children, newest first
func (s *ChildService) List() ([]models.Child, error) {
	return s.children.List(entity.DefaultSort, 0)
}

// Get returns a single child by id
func (s *ChildService) Get(id string) (models.Child, error) {
	return s.children.Get(id)
}

// Create validates and stores a new child profile
func (s *ChildService) Create(child models.Child) (models.Child, error) {
	if err := validateChild(&child); err != nil {
		return models.Child{}, err
	}
	return s.children.Create(child)
}

// Update merges the named fields into an existing child profile
func (s *ChildService) Update(id string, fields map[string]any) (models.Child, error) {
	if name, ok := fields["name"].(string); ok && strings.TrimSpace(name) == "" {
		return models.Child{}, &entity.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	return s.children.Update(id, fields)
}

// Delete removes a child along with their assignments and practice questions
func (s *ChildService) Delete(id string) error {
	if err := s.children.Delete(id); err != nil {
		return err
	}

	assignments, err := s.assignments.ListForChild(id)
	if err != nil {
		return fmt.Errorf("failed to list assignments for cascade: %w", err)
	}
	for _, a := range assignments {
		if err := s.assignments.Delete(a.ID); err != nil {
			return fmt.Errorf("failed to delete assignment %s: %w", a.ID, err)
		}
	}

	if _, err := s.practice.DeleteForChild(id); err != nil {
		return fmt.Errorf("failed to delete practice questions: %w", err)
	}
	return nil
}

func validateChild(child *models.Child) error {
	child.Name = strings.TrimSpace(child.Name)
	if child.Name == "" {
		return &entity.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if child.Age < 0 {
		return &entity.ValidationError{Field: "age", Reason: "must not be negative"}
	}
	return nil
}
