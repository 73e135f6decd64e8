package repository

import (
	"homeworkhub/internal/entity"
	"homeworkhub/internal/models"
	"homeworkhub/internal/storage"
)

// PracticeQuestionRepository handles practice question storage operations
type PracticeQuestionRepository struct {
	*entity.Collection[models.PracticeQuestion]
}

// NewPracticeQuestionRepository creates a new practice question repository
func NewPracticeQuestionRepository(store storage.Store) *PracticeQuestionRepository {
	return &PracticeQuestionRepository{entity.NewCollection[models.PracticeQuestion](store, "practice_questions")}
}

// Incomplete returns unanswered questions, narrowed by child and subject.
// An empty childID matches all children; an empty subject or "all" matches
// all subjects.
func (r *PracticeQuestionRepository) Incomplete(childID, subject string) ([]models.PracticeQuestion, error) {
	criteria := map[string]any{"completed": false}
	if childID != "" {
		criteria["child_id"] = childID
	}
	if subject != "" && subject != "all" {
		criteria["subject"] = subject
	}
	return r.Filter(criteria)
}

// CountIncomplete returns how many unanswered questions a child has. An
// empty childID counts across all children.
func (r *PracticeQuestionRepository) CountIncomplete(childID string) (int, error) {
	questions, err := r.Incomplete(childID, "")
	if err != nil {
		return 0, err
	}
	return len(questions), nil
}

// DeleteForChild removes every practice question belonging to the child and
// returns how many were removed
func (r *PracticeQuestionRepository) DeleteForChild(childID string) (int, error) {
	questions, err := r.Filter(map[string]any{"child_id": childID})
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, q := range questions {
		if err := r.Delete(q.ID); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}
