package entity

import (
	"encoding/json"
	"sync"

	"homeworkhub/internal/models"
	"homeworkhub/internal/storage"
)

// UserStore holds the zero-or-one current user record. Unlike collections,
// the user is not addressed by id; logout is a session concern and never
// deletes the persisted record.
type UserStore struct {
	store storage.Store
	name  string
	mu    sync.Mutex
}

// NewUserStore creates the singleton user store
func NewUserStore(store storage.Store) *UserStore {
	return &UserStore{store: store, name: "user"}
}

// Me returns the current user, or nil when no user has been saved. A missing
// user is not an error.
func (s *UserStore) Me() (*models.User, error) {
	data, err := s.store.Read(s.name)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}

	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, &storage.PersistenceError{Op: "decode", Name: s.name, Err: err}
	}
	return &user, nil
}

// Save replaces the current user record
func (s *UserStore) Save(user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(user)
}

// UpdateMyUserData merges the named fields into the current user record and
// persists it. Merging into an empty store creates the record from the
// supplied fields.
func (s *UserStore) UpdateMyUserData(fields map[string]any) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.Me()
	if err != nil {
		return nil, err
	}

	base := models.User{}
	if current != nil {
		base = *current
	}

	merged, err := mergeRecord(base, fields, s.name)
	if err != nil {
		return nil, err
	}

	if err := s.write(merged); err != nil {
		return nil, err
	}
	return &merged, nil
}

func (s *UserStore) write(user models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return &storage.PersistenceError{Op: "encode", Name: s.name, Err: err}
	}
	return s.store.Write(s.name, data)
}
