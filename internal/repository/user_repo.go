package repository

import (
	"homeworkhub/internal/entity"
	"homeworkhub/internal/storage"
)

// UserRepository exposes the singleton user record
type UserRepository struct {
	*entity.UserStore
}

// NewUserRepository creates a new user repository
func NewUserRepository(store storage.Store) *UserRepository {
	return &UserRepository{entity.NewUserStore(store)}
}
