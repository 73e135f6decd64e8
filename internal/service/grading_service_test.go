package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"homeworkhub/internal/ai"
	"homeworkhub/internal/entity"
	"homeworkhub/internal/models"
	"homeworkhub/internal/repository"
	"homeworkhub/internal/storage"
)

type gradingFixture struct {
	service     *GradingService
	children    *repository.ChildRepository
	assignments *repository.AssignmentRepository
	practice    *repository.PracticeQuestionRepository
	child       models.Child
}

func newGradingFixture(t *testing.T, extractor ai.Extractor, generator ai.QuestionGenerator) *gradingFixture {
	t.Helper()
	store := storage.NewMemoryStore()
	children := repository.NewChildRepository(store)
	assignments := repository.NewAssignmentRepository(store)
	practice := repository.NewPracticeQuestionRepository(store)

	if extractor == nil {
		extractor = &ai.MockExtractor{}
	}
	if generator == nil {
		generator = &ai.MockQuestionGenerator{}
	}

	child, err := children.Create(models.Child{Name: "Emma Johnson", GradeLevel: "3"})
	if err != nil {
		t.Fatalf("failed to seed child: %v", err)
	}

	return &gradingFixture{
		service: NewGradingService(
			children, assignments, practice,
			&ai.MockUploader{}, extractor, &ai.MockGrader{}, generator,
		),
		children:    children,
		assignments: assignments,
		practice:    practice,
		child:       child,
	}
}

func TestProcessUpload(t *testing.T) {
	f := newGradingFixture(t, nil, nil)

	assignment, err := f.service.ProcessUpload(context.Background(), UploadRequest{
		ChildID: f.child.ID,
		Subject: "math",
		Files:   []ai.File{{Name: "homework.jpg", Data: []byte("scan")}},
	})
	if err != nil {
		t.Fatalf("ProcessUpload failed: %v", err)
	}

	if assignment.Status != models.StatusGraded {
		t.Errorf("status = %s, want graded", assignment.Status)
	}
	if assignment.ScorePercentage != models.Score(assignment.CorrectAnswers, assignment.TotalQuestions) {
		t.Errorf("score %d inconsistent with %d/%d", assignment.ScorePercentage, assignment.CorrectAnswers, assignment.TotalQuestions)
	}
	if assignment.OriginalFileURL == "" {
		t.Error("original file url not recorded")
	}
	if assignment.GradeLevel != "3" {
		t.Errorf("grade level = %q, want the child's", assignment.GradeLevel)
	}
	if !strings.Contains(assignment.Title, "Emma") || !strings.Contains(assignment.Title, "Math") {
		t.Errorf("default title = %q", assignment.Title)
	}

	// One practice question per identified skill area
	questions, err := f.practice.Incomplete(f.child.ID, "")
	if err != nil {
		t.Fatalf("failed to list practice questions: %v", err)
	}
	if len(questions) != len(assignment.SkillAreasToPractice) {
		t.Errorf("got %d practice questions, want %d", len(questions), len(assignment.SkillAreasToPractice))
	}
	for _, q := range questions {
		if q.AssignmentID != assignment.ID {
			t.Errorf("practice question not linked to assignment: %+v", q)
		}
	}
}

func TestProcessUploadKeepsExplicitTitle(t *testing.T) {
	f := newGradingFixture(t, nil, nil)

	assignment, err := f.service.ProcessUpload(context.Background(), UploadRequest{
		ChildID: f.child.ID,
		Subject: "math",
		Title:   "Chapter 4 review",
		Files:   []ai.File{{Name: "homework.jpg"}},
	})
	if err != nil {
		t.Fatalf("ProcessUpload failed: %v", err)
	}
	if assignment.Title != "Chapter 4 review" {
		t.Errorf("title = %q", assignment.Title)
	}
}

func TestProcessUploadValidation(t *testing.T) {
	f := newGradingFixture(t, nil, nil)

	tests := []struct {
		name string
		req  UploadRequest
	}{
		{"no files", UploadRequest{ChildID: f.child.ID, Subject: "math"}},
		{"no subject", UploadRequest{ChildID: f.child.ID, Files: []ai.File{{Name: "a"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var validationErr *entity.ValidationError
			_, err := f.service.ProcessUpload(context.Background(), tt.req)
			if !errors.As(err, &validationErr) {
				t.Errorf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestProcessUploadUnknownChild(t *testing.T) {
	f := newGradingFixture(t, nil, nil)

	_, err := f.service.ProcessUpload(context.Background(), UploadRequest{
		ChildID: "missing",
		Subject: "math",
		Files:   []ai.File{{Name: "homework.jpg"}},
	})
	if !errors.Is(err, entity.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

// flakyExtractor fails for every file after the first
type flakyExtractor struct {
	calls int
}

func (e *flakyExtractor) Extract(ctx context.Context, fileURL string) (ai.Extraction, error) {
	e.calls++
	if e.calls > 1 {
		return ai.Extraction{}, fmt.Errorf("unreadable scan")
	}
	return ai.Extraction{ExtractedText: "5 + 3 = 8"}, nil
}

func TestProcessUploadToleratesPartialExtraction(t *testing.T) {
	f := newGradingFixture(t, &flakyExtractor{}, nil)

	assignment, err := f.service.ProcessUpload(context.Background(), UploadRequest{
		ChildID: f.child.ID,
		Subject: "math",
		Files: []ai.File{
			{Name: "page1.jpg"},
			{Name: "page2.jpg"},
		},
	})
	if err != nil {
		t.Fatalf("ProcessUpload failed: %v", err)
	}

	if assignment.Status != models.StatusGraded {
		t.Errorf("status = %s, want graded", assignment.Status)
	}
	if !strings.Contains(assignment.ProcessedText, "FAILED TO EXTRACT PAGE") {
		t.Error("failed page marker missing from processed text")
	}
	if !strings.Contains(assignment.ProcessedText, "5 + 3 = 8") {
		t.Error("successful page text missing")
	}
}

// brokenExtractor fails for every file
type brokenExtractor struct{}

func (brokenExtractor) Extract(ctx context.Context, fileURL string) (ai.Extraction, error) {
	return ai.Extraction{}, fmt.Errorf("unreadable scan")
}

func TestProcessUploadAllExtractionsFail(t *testing.T) {
	f := newGradingFixture(t, brokenExtractor{}, nil)

	_, err := f.service.ProcessUpload(context.Background(), UploadRequest{
		ChildID: f.child.ID,
		Subject: "math",
		Files:   []ai.File{{Name: "page1.jpg"}},
	})
	if err == nil {
		t.Fatal("expected an error when nothing could be extracted")
	}

	// The provisional assignment is discarded
	assignments, listErr := f.assignments.ListForChild(f.child.ID)
	if listErr != nil {
		t.Fatalf("ListForChild failed: %v", listErr)
	}
	if len(assignments) != 0 {
		t.Errorf("expected no assignments left behind, got %d", len(assignments))
	}
}

// brokenGenerator never produces a question
type brokenGenerator struct{}

func (brokenGenerator) Generate(ctx context.Context, subject, skillArea, gradeLevel string) (ai.GeneratedQuestion, error) {
	return ai.GeneratedQuestion{}, fmt.Errorf("generator offline")
}

func TestProcessUploadToleratesGeneratorFailure(t *testing.T) {
	f := newGradingFixture(t, nil, brokenGenerator{})

	assignment, err := f.service.ProcessUpload(context.Background(), UploadRequest{
		ChildID: f.child.ID,
		Subject: "math",
		Files:   []ai.File{{Name: "homework.jpg"}},
	})
	if err != nil {
		t.Fatalf("a broken question generator must not fail the upload: %v", err)
	}
	if assignment.Status != models.StatusGraded {
		t.Errorf("status = %s, want graded", assignment.Status)
	}

	questions, err := f.practice.Incomplete(f.child.ID, "")
	if err != nil {
		t.Fatalf("failed to list practice questions: %v", err)
	}
	if len(questions) != 0 {
		t.Errorf("expected no practice questions, got %d", len(questions))
	}
}

// sloppyGenerator answers with an out-of-enum question type
type sloppyGenerator struct{}

func (sloppyGenerator) Generate(ctx context.Context, subject, skillArea, gradeLevel string) (ai.GeneratedQuestion, error) {
	return ai.GeneratedQuestion{
		QuestionType:    models.QuestionType("essay"),
		Question:        "Discuss.",
		CorrectAnswer:   "n/a",
		DifficultyLevel: models.DifficultyMedium,
	}, nil
}

func TestProcessUploadDropsInvalidGeneratedQuestions(t *testing.T) {
	f := newGradingFixture(t, nil, sloppyGenerator{})

	assignment, err := f.service.ProcessUpload(context.Background(), UploadRequest{
		ChildID: f.child.ID,
		Subject: "math",
		Files:   []ai.File{{Name: "homework.jpg"}},
	})
	if err != nil {
		t.Fatalf("ProcessUpload failed: %v", err)
	}
	if assignment.Status != models.StatusGraded {
		t.Errorf("status = %s, want graded", assignment.Status)
	}

	questions, err := f.practice.Incomplete(f.child.ID, "")
	if err != nil {
		t.Fatalf("failed to list practice questions: %v", err)
	}
	if len(questions) != 0 {
		t.Errorf("questions with an unknown type must not be stored, got %d", len(questions))
	}
}
