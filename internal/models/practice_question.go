package models

// DifficultyLevel grades how hard a practice question is
type DifficultyLevel string

const (
	DifficultyEasy   DifficultyLevel = "easy"
	DifficultyMedium DifficultyLevel = "medium"
	DifficultyHard   DifficultyLevel = "hard"
)

// Valid reports whether the difficulty is one of the known levels
func (d DifficultyLevel) Valid() bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}

// PracticeQuestion is a generated follow-up question for a child.
// Completed flips to true exactly once, when the question is answered in a
// practice session; ChildAnswer and AnswerCorrect are set at the same moment.
type PracticeQuestion struct {
	Meta
	ChildID         string          `json:"child_id"`
	AssignmentID    string          `json:"assignment_id,omitempty"`
	Subject         string          `json:"subject"`
	SkillArea       string          `json:"skill_area,omitempty"`
	QuestionType    QuestionType    `json:"question_type"`
	Question        string          `json:"question"`
	Options         []string        `json:"options,omitempty"`
	CorrectAnswer   string          `json:"correct_answer"`
	Explanation     string          `json:"explanation,omitempty"`
	DifficultyLevel DifficultyLevel `json:"difficulty_level,omitempty"`
	Completed       bool            `json:"completed"`
	ChildAnswer     string          `json:"child_answer,omitempty"`
	AnswerCorrect   *bool           `json:"answer_correct,omitempty"`
}
