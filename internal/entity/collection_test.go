package entity

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"homeworkhub/internal/models"
	"homeworkhub/internal/storage"
)

func newTestCollection(t *testing.T) *Collection[models.Child] {
	t.Helper()
	return NewCollection[models.Child](storage.NewMemoryStore(), "children")
}

func TestCreateStampsIdentity(t *testing.T) {
	c := newTestCollection(t)

	created, err := c.Create(models.Child{
		Meta: models.Meta{ID: "caller-supplied", CreatedDate: time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)},
		Name: "Emma",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == "" || created.ID == "caller-supplied" {
		t.Errorf("expected a fresh id, got %q", created.ID)
	}
	if created.CreatedDate.Year() == 1999 {
		t.Error("caller-supplied created_date should have been overwritten")
	}

	got, err := c.Get(created.ID)
	if err != nil {
		t.Fatalf("Get after Create failed: %v", err)
	}
	if got.Name != "Emma" {
		t.Errorf("round trip lost data: got name %q", got.Name)
	}
}

func TestListSortAndLimit(t *testing.T) {
	c := newTestCollection(t)
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return base }

	names := []string{"Alice", "Bob", "Carol"}
	for i, name := range names {
		created := base.Add(time.Duration(i) * time.Hour)
		c.now = func() time.Time { return created }
		if _, err := c.Create(models.Child{Name: name, Age: 10 - i}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	tests := []struct {
		name      string
		sortBy    string
		limit     int
		wantNames []string
	}{
		{"default newest first", "", 0, []string{"Carol", "Bob", "Alice"}},
		{"created ascending", "created_date", 0, []string{"Alice", "Bob", "Carol"}},
		{"name ascending", "name", 0, []string{"Alice", "Bob", "Carol"}},
		{"name descending", "-name", 0, []string{"Carol", "Bob", "Alice"}},
		{"age ascending", "age", 0, []string{"Carol", "Bob", "Alice"}},
		{"limit truncates", "name", 2, []string{"Alice", "Bob"}},
		{"limit past end", "name", 99, []string{"Alice", "Bob", "Carol"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.List(tt.sortBy, tt.limit)
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}
			if len(got) != len(tt.wantNames) {
				t.Fatalf("got %d records, want %d", len(got), len(tt.wantNames))
			}
			for i, want := range tt.wantNames {
				if got[i].Name != want {
					t.Errorf("position %d: got %q, want %q", i, got[i].Name, want)
				}
			}
		})
	}
}

func TestListEmptyCollection(t *testing.T) {
	c := newTestCollection(t)

	got, err := c.List("", 0)
	if err != nil {
		t.Fatalf("List on empty collection failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no records, got %d", len(got))
	}
}

func TestFilter(t *testing.T) {
	store := storage.NewMemoryStore()
	c := NewCollection[models.PracticeQuestion](store, "practice_questions")

	seed := []models.PracticeQuestion{
		{ChildID: "c1", Subject: "math", Completed: false},
		{ChildID: "c1", Subject: "english", Completed: true},
		{ChildID: "c2", Subject: "math", Completed: false},
	}
	for _, q := range seed {
		if _, err := c.Create(q); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	tests := []struct {
		name     string
		criteria map[string]any
		want     int
	}{
		{"empty criteria returns all", map[string]any{}, 3},
		{"single field", map[string]any{"child_id": "c1"}, 2},
		{"conjunction", map[string]any{"child_id": "c1", "completed": false}, 1},
		{"nil criteria value ignored", map[string]any{"child_id": "c2", "subject": nil}, 1},
		{"shared value across children", map[string]any{"subject": "math"}, 2},
		{"no match", map[string]any{"child_id": "missing"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Filter(tt.criteria)
			if err != nil {
				t.Fatalf("Filter failed: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("got %d records, want %d", len(got), tt.want)
			}
		})
	}
}

func TestUpdateMergesFields(t *testing.T) {
	c := newTestCollection(t)

	created, err := c.Create(models.Child{Name: "Emma", Age: 8, GradeLevel: "3"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := c.Update(created.ID, map[string]any{"age": 9})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if updated.Age != 9 {
		t.Errorf("age not merged: got %d", updated.Age)
	}
	if updated.Name != "Emma" || updated.GradeLevel != "3" {
		t.Error("unnamed fields should be untouched")
	}
	if updated.ID != created.ID || !updated.CreatedDate.Equal(created.CreatedDate) {
		t.Error("identity fields must be immutable")
	}

	// id and created_date in the field map are ignored, not an error
	kept, err := c.Update(created.ID, map[string]any{"id": "hijack", "created_date": "2001-01-01T00:00:00Z"})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if kept.ID != created.ID || !kept.CreatedDate.Equal(created.CreatedDate) {
		t.Error("identity fields must survive a merge that names them")
	}
}

func TestUpdateMissingRecord(t *testing.T) {
	c := newTestCollection(t)

	_, err := c.Update("nope", map[string]any{"name": "x"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteIsTerminal(t *testing.T) {
	c := newTestCollection(t)

	created, err := c.Create(models.Child{Name: "Emma"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := c.Delete(created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := c.Get(created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Delete: expected ErrNotFound, got %v", err)
	}
	if _, err := c.Update(created.ID, map[string]any{"name": "x"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update after Delete: expected ErrNotFound, got %v", err)
	}
	if err := c.Delete(created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete: expected ErrNotFound, got %v", err)
	}
}

func TestCreateWithoutOptionalFields(t *testing.T) {
	c := NewCollection[models.Assignment](storage.NewMemoryStore(), "assignments")

	created, err := c.Create(models.Assignment{ChildID: "c1", Subject: "math"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.Title != "" {
		t.Errorf("expected empty title, got %q", created.Title)
	}

	got, err := c.Get(created.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Title != "" {
		t.Error("missing optional fields must stay zero valued")
	}
}

// failingStore rejects writes after a configurable number of successes
type failingStore struct {
	inner      *storage.MemoryStore
	writesLeft int
}

func (s *failingStore) Read(name string) ([]byte, error) {
	return s.inner.Read(name)
}

func (s *failingStore) Write(name string, data []byte) error {
	if s.writesLeft <= 0 {
		return &storage.PersistenceError{Op: "write", Name: name, Err: fmt.Errorf("disk full")}
	}
	s.writesLeft--
	return s.inner.Write(name, data)
}

func TestFailedWriteLeavesStateUntouched(t *testing.T) {
	store := &failingStore{inner: storage.NewMemoryStore(), writesLeft: 1}
	c := NewCollection[models.Child](store, "children")

	created, err := c.Create(models.Child{Name: "Emma"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	var persistErr *storage.PersistenceError

	if _, err := c.Create(models.Child{Name: "Liam"}); !errors.As(err, &persistErr) {
		t.Fatalf("expected PersistenceError, got %v", err)
	}
	if _, err := c.Update(created.ID, map[string]any{"age": 9}); !errors.As(err, &persistErr) {
		t.Fatalf("expected PersistenceError, got %v", err)
	}
	if err := c.Delete(created.ID); !errors.As(err, &persistErr) {
		t.Fatalf("expected PersistenceError, got %v", err)
	}

	// The persisted collection still holds exactly the first record
	records, err := c.List("", 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 1 || records[0].Name != "Emma" || records[0].Age != 0 {
		t.Errorf("failed mutations must not change stored state: %+v", records)
	}
}
