package repository

import (
	"homeworkhub/internal/entity"
	"homeworkhub/internal/models"
	"homeworkhub/internal/storage"
)

// ChildRepository handles child profile storage operations
type ChildRepository struct {
	*entity.Collection[models.Child]
}

// NewChildRepository creates a new child repository
func NewChildRepository(store storage.Store) *ChildRepository {
	return &ChildRepository{entity.NewCollection[models.Child](store, "children")}
}
