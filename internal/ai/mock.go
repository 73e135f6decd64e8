package ai

import (
	"context"
	"fmt"
	"time"

	"homeworkhub/internal/models"

	"github.com/google/uuid"
)

// wait simulates processing latency while honoring cancellation
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// MockUploader fabricates upload URLs without storing anything
type MockUploader struct {
	Delay time.Duration
}

func (m *MockUploader) Upload(ctx context.Context, file File) (UploadResult, error) {
	if err := wait(ctx, m.Delay); err != nil {
		return UploadResult{}, err
	}
	url := fmt.Sprintf("https://example.com/uploads/%s_%s", uuid.New().String(), file.Name)
	return UploadResult{FileURL: url}, nil
}

// MockExtractor returns canned homework content for any file
type MockExtractor struct {
	Delay time.Duration
}

func (m *MockExtractor) Extract(ctx context.Context, fileURL string) (Extraction, error) {
	if err := wait(ctx, m.Delay); err != nil {
		return Extraction{}, err
	}

	return Extraction{
		ExtractedText: fmt.Sprintf("Sample homework content extracted from %s. This includes various math problems and questions that need to be graded.", fileURL),
		Questions: []ExtractedQuestion{
			{
				QuestionNumber: 1,
				QuestionText:   "What is 5 + 3?",
				StudentAnswer:  "8",
				CorrectAnswer:  "8",
			},
			{
				QuestionNumber: 2,
				QuestionText:   "What is 12 - 7?",
				StudentAnswer:  "6",
				CorrectAnswer:  "5",
			},
		},
	}, nil
}

// MockGrader returns a canned assessment regardless of the submitted text
type MockGrader struct {
	Delay time.Duration
}

func (m *MockGrader) Grade(ctx context.Context, text, subject, gradeLevel string) (GradingResult, error) {
	if err := wait(ctx, m.Delay); err != nil {
		return GradingResult{}, err
	}

	return GradingResult{
		TotalQuestions:       10,
		CorrectAnswers:       8,
		ScorePercentage:      models.Score(8, 10),
		DetailedFeedback:     "Great work on most problems! Focus on subtraction with borrowing for improvement.",
		Strengths:            []string{"Addition", "Number recognition", "Following instructions"},
		Weaknesses:           []string{"Subtraction with borrowing", "Word problems"},
		SkillAreasToPractice: []string{"Subtraction", "Reading comprehension"},
		QuestionAnalysis: []models.QuestionAnalysis{
			{
				QuestionNumber:     1,
				QuestionText:       "5 + 3 = ?",
				StudentAnswer:      "8",
				CorrectAnswer:      "8",
				IsCorrect:          true,
				SkillArea:          "Addition",
				QuestionType:       models.QuestionFillBlank,
				StepByStepSolution: "Count 5, then add 3 more: 5 + 3 = 8",
			},
			{
				QuestionNumber:     2,
				QuestionText:       "12 - 7 = ?",
				StudentAnswer:      "6",
				CorrectAnswer:      "5",
				IsCorrect:          false,
				SkillArea:          "Subtraction",
				QuestionType:       models.QuestionFillBlank,
				StepByStepSolution: "Start with 12, subtract 7: 12 - 7 = 5",
			},
		},
	}, nil
}

// MockQuestionGenerator returns a canned practice question stamped with the
// requested subject and skill area
type MockQuestionGenerator struct {
	Delay time.Duration
}

func (m *MockQuestionGenerator) Generate(ctx context.Context, subject, skillArea, gradeLevel string) (GeneratedQuestion, error) {
	if err := wait(ctx, m.Delay); err != nil {
		return GeneratedQuestion{}, err
	}

	return GeneratedQuestion{
		Question:        "What is 15 - 8?",
		QuestionType:    models.QuestionMultipleChoice,
		Options:         []string{"6", "7", "8", "9"},
		CorrectAnswer:   "7",
		Explanation:     "Count backwards from 15: 15 - 8 = 7",
		DifficultyLevel: models.DifficultyMedium,
	}, nil
}
