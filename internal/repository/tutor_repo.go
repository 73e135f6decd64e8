package repository

import (
	"homeworkhub/internal/entity"
	"homeworkhub/internal/models"
	"homeworkhub/internal/storage"
)

// TutorRepository handles tutor directory storage operations. The directory
// is read-only from the application's perspective once seeded.
type TutorRepository struct {
	*entity.Collection[models.Tutor]
}

// NewTutorRepository creates a new tutor repository
func NewTutorRepository(store storage.Store) *TutorRepository {
	return &TutorRepository{entity.NewCollection[models.Tutor](store, "tutors")}
}

// Browse returns tutors sorted by rating, optionally narrowed to a subject
// or to verified tutors only. Subject matching checks the tutor's subject
// list, which the generic equality filter cannot express.
func (r *TutorRepository) Browse(subject string, verifiedOnly bool) ([]models.Tutor, error) {
	tutors, err := r.List("-rating", 0)
	if err != nil {
		return nil, err
	}

	matched := make([]models.Tutor, 0, len(tutors))
	for _, t := range tutors {
		if verifiedOnly && !t.IsVerified {
			continue
		}
		if subject != "" && subject != "all" && !t.Teaches(subject) {
			continue
		}
		matched = append(matched, t)
	}
	return matched, nil
}
