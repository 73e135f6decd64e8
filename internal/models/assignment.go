package models

import "math"

// Status is the grading lifecycle state of an assignment
type Status string

const (
	StatusProcessing Status = "processing"
	StatusGraded     Status = "graded"
)

// Valid reports whether the status is one of the known states
func (s Status) Valid() bool {
	return s == StatusProcessing || s == StatusGraded
}

// QuestionType classifies how a question is answered
type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionFillBlank      QuestionType = "fill_blank"
	QuestionShortAnswer    QuestionType = "short_answer"
	QuestionMathProblem    QuestionType = "math_problem"
	QuestionTrueFalse      QuestionType = "true_false"
)

// Valid reports whether the question type is one of the known types
func (q QuestionType) Valid() bool {
	switch q {
	case QuestionMultipleChoice, QuestionFillBlank, QuestionShortAnswer,
		QuestionMathProblem, QuestionTrueFalse:
		return true
	}
	return false
}

// IsChoice reports whether answers are picked from fixed options, which
// makes correctness checking case-sensitive
func (q QuestionType) IsChoice() bool {
	return q == QuestionMultipleChoice || q == QuestionTrueFalse
}

// QuestionAnalysis is the per-question breakdown produced by grading
type QuestionAnalysis struct {
	QuestionNumber     int          `json:"question_number"`
	QuestionText       string       `json:"question_text"`
	Options            []string     `json:"options,omitempty"`
	StudentAnswer      string       `json:"student_answer"`
	CorrectAnswer      string       `json:"correct_answer"`
	IsCorrect          bool         `json:"is_correct"`
	SkillArea          string       `json:"skill_area,omitempty"`
	QuestionType       QuestionType `json:"question_type,omitempty"`
	StepByStepSolution string       `json:"step_by_step_solution,omitempty"`
}

// Assignment represents one uploaded and (eventually) graded piece of homework
type Assignment struct {
	Meta
	ChildID              string             `json:"child_id"`
	Title                string             `json:"title,omitempty"`
	Subject              string             `json:"subject,omitempty"`
	GradeLevel           string             `json:"grade_level,omitempty"`
	TotalQuestions       int                `json:"total_questions"`
	CorrectAnswers       int                `json:"correct_answers"`
	ScorePercentage      int                `json:"score_percentage"`
	Strengths            []string           `json:"strengths,omitempty"`
	Weaknesses           []string           `json:"weaknesses,omitempty"`
	SkillAreasToPractice []string           `json:"skill_areas_to_practice,omitempty"`
	DetailedFeedback     string             `json:"detailed_feedback,omitempty"`
	Status               Status             `json:"status"`
	QuestionAnalysis     []QuestionAnalysis `json:"question_analysis,omitempty"`
	ProcessedText        string             `json:"processed_text,omitempty"`
	OriginalFileURL      string             `json:"original_file_url,omitempty"`
	AdditionalFileURLs   []string           `json:"additional_file_urls,omitempty"`
}

// Score converts a correct/total pair into a rounded percentage.
// A total of zero scores zero rather than dividing by it.
func Score(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(correct) / float64(total)))
}
