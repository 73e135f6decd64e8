package repository

import (
	"sort"

	"homeworkhub/internal/entity"
	"homeworkhub/internal/models"
	"homeworkhub/internal/storage"
)

// AssignmentRepository handles assignment storage operations
type AssignmentRepository struct {
	*entity.Collection[models.Assignment]
}

// NewAssignmentRepository creates a new assignment repository
func NewAssignmentRepository(store storage.Store) *AssignmentRepository {
	return &AssignmentRepository{entity.NewCollection[models.Assignment](store, "assignments")}
}

// ListForChild returns every assignment belonging to the child, newest first
func (r *AssignmentRepository) ListForChild(childID string) ([]models.Assignment, error) {
	assignments, err := r.Filter(map[string]any{"child_id": childID})
	if err != nil {
		return nil, err
	}
	sortByCreatedDesc(assignments)
	return assignments, nil
}

// sortByCreatedDesc orders assignments newest first without re-reading the store
func sortByCreatedDesc(assignments []models.Assignment) {
	sort.SliceStable(assignments, func(i, j int) bool {
		return assignments[i].CreatedDate.After(assignments[j].CreatedDate)
	})
}
