// Package ai defines the asynchronous collaborator interfaces the grading
// pipeline depends on: file upload, content extraction, grading, and
// practice question generation. The shipped implementations are mocks with
// canned responses; a real backend can be substituted without touching the
// pipeline.
package ai

import (
	"context"

	"homeworkhub/internal/models"
)

// File is an uploaded homework scan
type File struct {
	Name string
	Data []byte
}

// UploadResult identifies where an uploaded file ended up
type UploadResult struct {
	FileURL string `json:"file_url"`
}

// Uploader stores homework scans and returns their URLs
type Uploader interface {
	Upload(ctx context.Context, file File) (UploadResult, error)
}

// ExtractedQuestion is one question recognized on a scanned page
type ExtractedQuestion struct {
	QuestionNumber int      `json:"question_number"`
	QuestionText   string   `json:"question_text"`
	Options        []string `json:"options,omitempty"`
	StudentAnswer  string   `json:"student_answer"`
	CorrectAnswer  string   `json:"correct_answer"`
}

// Extraction is the structured content pulled from one uploaded file
type Extraction struct {
	ExtractedText string              `json:"extracted_text"`
	Questions     []ExtractedQuestion `json:"questions,omitempty"`
}

// Extractor reads homework content out of an uploaded file
type Extractor interface {
	Extract(ctx context.Context, fileURL string) (Extraction, error)
}

// GradingResult is the full assessment of one assignment
type GradingResult struct {
	TotalQuestions       int                       `json:"total_questions"`
	CorrectAnswers       int                       `json:"correct_answers"`
	ScorePercentage      int                       `json:"score_percentage"`
	DetailedFeedback     string                    `json:"detailed_feedback"`
	Strengths            []string                  `json:"strengths"`
	Weaknesses           []string                  `json:"weaknesses"`
	SkillAreasToPractice []string                  `json:"skill_areas_to_practice"`
	QuestionAnalysis     []models.QuestionAnalysis `json:"question_analysis"`
}

// Grader assesses extracted homework content
type Grader interface {
	Grade(ctx context.Context, text, subject, gradeLevel string) (GradingResult, error)
}

// GeneratedQuestion is a practice question produced for a weak skill area
type GeneratedQuestion struct {
	Question        string                 `json:"question"`
	QuestionType    models.QuestionType    `json:"question_type"`
	Options         []string               `json:"options,omitempty"`
	CorrectAnswer   string                 `json:"correct_answer"`
	Explanation     string                 `json:"explanation"`
	DifficultyLevel models.DifficultyLevel `json:"difficulty_level"`
}

// QuestionGenerator produces practice questions targeting a skill area
type QuestionGenerator interface {
	Generate(ctx context.Context, subject, skillArea, gradeLevel string) (GeneratedQuestion, error)
}
