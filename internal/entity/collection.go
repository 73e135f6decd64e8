package entity

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"homeworkhub/internal/storage"

	"github.com/google/uuid"
)

// DefaultSort orders newest records first
const DefaultSort = "-created_date"

// Record is implemented by every stored entity type (via models.Meta)
type Record interface {
	EntityID() string
}

// identitySetter is satisfied by *R when R embeds models.Meta
type identitySetter interface {
	SetIdentity(id string, created time.Time)
}

// Collection provides uniform create/read/update/delete and query semantics
// over one persisted collection of records. Each mutation reads the full
// collection, computes the new value, and writes it back as one step; a
// mutex serializes that cycle so concurrent handlers cannot lose updates.
// A failed write surfaces the storage error and leaves the persisted
// collection untouched.
type Collection[R Record] struct {
	store storage.Store
	name  string

	mu    sync.Mutex
	newID func() string
	now   func() time.Time
}

// NewCollection creates a collection handle over the named blob
func NewCollection[R Record](store storage.Store, name string) *Collection[R] {
	return &Collection[R]{
		store: store,
		name:  name,
		newID: func() string { return uuid.New().String() },
		now:   time.Now,
	}
}

// Name returns the collection's storage key
func (c *Collection[R]) Name() string {
	return c.name
}

// List returns the collection sorted by sortBy, which names a record field
// by its json name; a leading "-" sorts descending. An empty sortBy applies
// the default newest-first order. Fields whose name contains "date" compare
// as timestamps. A positive limit truncates the sorted result; a limit past
// the end returns everything.
func (c *Collection[R]) List(sortBy string, limit int) ([]R, error) {
	records, err := c.load()
	if err != nil {
		return nil, err
	}

	if sortBy == "" {
		sortBy = DefaultSort
	}
	descending := strings.HasPrefix(sortBy, "-")
	field := strings.TrimPrefix(sortBy, "-")
	isDate := strings.Contains(field, "date")

	sortRecords(records, field, descending, isDate)

	if limit > 0 && limit < len(records) {
		records = records[:limit]
	}
	return records, nil
}

// Filter returns every record whose fields equal all non-nil criteria
// values. Criteria keys use json field names; a nil value means "no
// constraint"; empty criteria return the whole collection.
func (c *Collection[R]) Filter(criteria map[string]any) ([]R, error) {
	records, err := c.load()
	if err != nil {
		return nil, err
	}

	matched := make([]R, 0, len(records))
	for _, rec := range records {
		if matchesCriteria(rec, criteria) {
			matched = append(matched, rec)
		}
	}
	return matched, nil
}

// Get returns the record with the given id
func (c *Collection[R]) Get(id string) (R, error) {
	var zero R

	records, err := c.load()
	if err != nil {
		return zero, err
	}
	for _, rec := range records {
		if rec.EntityID() == id {
			return rec, nil
		}
	}
	return zero, fmt.Errorf("%s %q: %w", c.name, id, ErrNotFound)
}

// Create stamps the record with a fresh id and creation time, appends it to
// the collection, and persists. Caller-supplied identity fields are
// overwritten.
func (c *Collection[R]) Create(rec R) (R, error) {
	var zero R

	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.load()
	if err != nil {
		return zero, err
	}

	if s, ok := any(&rec).(identitySetter); ok {
		s.SetIdentity(c.newID(), c.now().UTC())
	}

	records = append(records, rec)
	if err := c.save(records); err != nil {
		return zero, err
	}
	return rec, nil
}

// Update merges the named fields into the existing record and persists the
// collection. Fields not named are untouched; id and created_date are
// immutable. Returns the fully merged record.
func (c *Collection[R]) Update(id string, fields map[string]any) (R, error) {
	var zero R

	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.load()
	if err != nil {
		return zero, err
	}

	idx := -1
	for i, rec := range records {
		if rec.EntityID() == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return zero, fmt.Errorf("%s %q: %w", c.name, id, ErrNotFound)
	}

	merged, err := mergeRecord(records[idx], fields, c.name)
	if err != nil {
		return zero, err
	}

	records[idx] = merged
	if err := c.save(records); err != nil {
		return zero, err
	}
	return merged, nil
}

// Delete removes the record with the given id. The delete is hard: no
// tombstone remains and dependent records in other collections are not
// touched here.
func (c *Collection[R]) Delete(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.load()
	if err != nil {
		return err
	}

	remaining := make([]R, 0, len(records))
	for _, rec := range records {
		if rec.EntityID() != id {
			remaining = append(remaining, rec)
		}
	}
	if len(remaining) == len(records) {
		return fmt.Errorf("%s %q: %w", c.name, id, ErrNotFound)
	}

	return c.save(remaining)
}

func (c *Collection[R]) load() ([]R, error) {
	data, err := c.store.Read(c.name)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}

	var records []R
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &storage.PersistenceError{Op: "decode", Name: c.name, Err: err}
	}
	return records, nil
}

func (c *Collection[R]) save(records []R) error {
	data, err := json.Marshal(records)
	if err != nil {
		return &storage.PersistenceError{Op: "encode", Name: c.name, Err: err}
	}
	return c.store.Write(c.name, data)
}

func matchesCriteria[R Record](rec R, criteria map[string]any) bool {
	for key, want := range criteria {
		if want == nil {
			continue
		}
		got, ok := fieldValue(rec, key)
		if !ok {
			return false
		}
		if !looseEqual(got, want) {
			return false
		}
	}
	return true
}
