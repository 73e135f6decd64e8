package models

// Tutor is a directory listing. Tutors are seeded read-only data: the
// application never creates, updates, or deletes them.
type Tutor struct {
	Meta
	Name         string   `json:"name"`
	Bio          string   `json:"bio,omitempty"`
	Subjects     []string `json:"subjects,omitempty"`
	HourlyRate   float64  `json:"hourly_rate"`
	Rating       float64  `json:"rating"`
	IsVerified   bool     `json:"is_verified"`
	ContactEmail string   `json:"contact_email,omitempty"`
	AvatarURL    string   `json:"avatar_url,omitempty"`
}

// Teaches reports whether the tutor lists the subject
func (t *Tutor) Teaches(subject string) bool {
	for _, s := range t.Subjects {
		if s == subject {
			return true
		}
	}
	return false
}
