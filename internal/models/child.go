package models

// Child represents a child profile owned by the parent account
type Child struct {
	Meta
	Name       string   `json:"name"`
	Age        int      `json:"age"`
	GradeLevel string   `json:"grade_level"`
	Language   string   `json:"language"`
	Subjects   []string `json:"subjects,omitempty"`
}

// StudiesSubject reports whether the child has the subject on their list
func (c *Child) StudiesSubject(subject string) bool {
	for _, s := range c.Subjects {
		if s == subject {
			return true
		}
	}
	return false
}
