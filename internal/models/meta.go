package models

import "time"

// Meta carries the identity fields shared by every stored record. The entity
// store assigns both values at creation time; neither changes afterwards.
type Meta struct {
	ID          string    `json:"id"`
	CreatedDate time.Time `json:"created_date"`
}

// EntityID returns the record's unique identifier.
func (m Meta) EntityID() string { return m.ID }

// SetIdentity stamps the record with its store-assigned identity.
func (m *Meta) SetIdentity(id string, created time.Time) {
	m.ID = id
	m.CreatedDate = created
}
