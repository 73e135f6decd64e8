package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"homeworkhub/internal/ai"
	"homeworkhub/internal/entity"
	"homeworkhub/internal/models"
	"homeworkhub/internal/repository"
)

const (
	extractionFailedMarker = "\n\n--- FAILED TO EXTRACT PAGE ---\n\n"
	maxPracticeQuestions   = 3
)

// UploadRequest carries a homework upload into the grading pipeline
type UploadRequest struct {
	ChildID string
	Subject string
	Title   string
	Files   []ai.File
}

// GradingService runs uploaded homework through the AI collaborators:
// upload files, extract text, grade, then generate practice questions
// for the weak skill areas.
type GradingService struct {
	children    *repository.ChildRepository
	assignments *repository.AssignmentRepository
	practice    *repository.PracticeQuestionRepository
	uploader    ai.Uploader
	extractor   ai.Extractor
	grader      ai.Grader
	generator   ai.QuestionGenerator
}

// NewGradingService creates a new grading service
func NewGradingService(
	children *repository.ChildRepository,
	assignments *repository.AssignmentRepository,
	practice *repository.PracticeQuestionRepository,
	uploader ai.Uploader,
	extractor ai.Extractor,
	grader ai.Grader,
	generator ai.QuestionGenerator,
) *GradingService {
	return &GradingService{
		children:    children,
		assignments: assignments,
		practice:    practice,
		uploader:    uploader,
		extractor:   extractor,
		grader:      grader,
		generator:   generator,
	}
}

// ProcessUpload runs the full pipeline and returns the graded assignment.
// A failed extraction of one file does not abort the run; a run where no
// file yields text does.
func (s *GradingService) ProcessUpload(ctx context.Context, req UploadRequest) (models.Assignment, error) {
	if len(req.Files) == 0 {
		return models.Assignment{}, &entity.ValidationError{Field: "files", Reason: "at least one file is required"}
	}
	if req.Subject == "" {
		return models.Assignment{}, &entity.ValidationError{Field: "subject", Reason: "must not be empty"}
	}

	child, err := s.children.Get(req.ChildID)
	if err != nil {
		return models.Assignment{}, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = defaultTitle(child, req.Subject)
	}

	var fileURLs []string
	for _, f := range req.Files {
		result, err := s.uploader.Upload(ctx, f)
		if err != nil {
			return models.Assignment{}, fmt.Errorf("failed to upload %s: %w", f.Name, err)
		}
		fileURLs = append(fileURLs, result.FileURL)
	}

	assignment, err := s.assignments.Create(models.Assignment{
		ChildID:            req.ChildID,
		Title:              title,
		Subject:            req.Subject,
		GradeLevel:         child.GradeLevel,
		Status:             models.StatusProcessing,
		OriginalFileURL:    fileURLs[0],
		AdditionalFileURLs: fileURLs[1:],
	})
	if err != nil {
		return models.Assignment{}, fmt.Errorf("failed to save assignment: %w", err)
	}

	var text strings.Builder
	extractedAny := false
	for i, url := range fileURLs {
		extraction, err := s.extractor.Extract(ctx, url)
		if err != nil {
			log.Printf("Extraction failed for file %d of assignment %s: %v", i+1, assignment.ID, err)
			text.WriteString(extractionFailedMarker)
			continue
		}
		text.WriteString(extraction.ExtractedText)
		text.WriteString("\n\n")
		extractedAny = true
	}
	if !extractedAny {
		s.discard(assignment.ID)
		return models.Assignment{}, fmt.Errorf("no text could be extracted from the uploaded files")
	}

	grading, err := s.grader.Grade(ctx, text.String(), req.Subject, child.GradeLevel)
	if err != nil {
		s.discard(assignment.ID)
		return models.Assignment{}, fmt.Errorf("grading failed: %w", err)
	}

	graded, err := s.assignments.Update(assignment.ID, map[string]any{
		"status":                  models.StatusGraded,
		"processed_text":          text.String(),
		"total_questions":         grading.TotalQuestions,
		"correct_answers":         grading.CorrectAnswers,
		"score_percentage":        models.Score(grading.CorrectAnswers, grading.TotalQuestions),
		"strengths":               grading.Strengths,
		"weaknesses":              grading.Weaknesses,
		"skill_areas_to_practice": grading.SkillAreasToPractice,
		"detailed_feedback":       grading.DetailedFeedback,
		"question_analysis":       grading.QuestionAnalysis,
	})
	if err != nil {
		return models.Assignment{}, fmt.Errorf("failed to record grading result: %w", err)
	}

	s.generateQuestions(ctx, graded, child)
	return graded, nil
}

// generateQuestions creates up to three practice questions from the weak
// skill areas. Individual failures are logged and skipped so a flaky
// generator never loses the graded assignment.
func (s *GradingService) generateQuestions(ctx context.Context, assignment models.Assignment, child models.Child) {
	skillAreas := assignment.SkillAreasToPractice
	if len(skillAreas) > maxPracticeQuestions {
		skillAreas = skillAreas[:maxPracticeQuestions]
	}

	for _, skillArea := range skillAreas {
		generated, err := s.generator.Generate(ctx, assignment.Subject, skillArea, child.GradeLevel)
		if err != nil {
			log.Printf("Failed to generate practice question for %q: %v", skillArea, err)
			continue
		}
		if !generated.QuestionType.Valid() || !generated.DifficultyLevel.Valid() {
			log.Printf("Skipping practice question for %q: unknown type %q or difficulty %q",
				skillArea, generated.QuestionType, generated.DifficultyLevel)
			continue
		}
		_, err = s.practice.Create(models.PracticeQuestion{
			ChildID:         assignment.ChildID,
			AssignmentID:    assignment.ID,
			Subject:         assignment.Subject,
			SkillArea:       skillArea,
			QuestionType:    generated.QuestionType,
			Question:        generated.Question,
			Options:         generated.Options,
			CorrectAnswer:   generated.CorrectAnswer,
			Explanation:     generated.Explanation,
			DifficultyLevel: generated.DifficultyLevel,
		})
		if err != nil {
			log.Printf("Failed to save practice question for %q: %v", skillArea, err)
		}
	}
}

func (s *GradingService) discard(id string) {
	if err := s.assignments.Delete(id); err != nil {
		log.Printf("Failed to discard assignment %s: %v", id, err)
	}
}

func defaultTitle(child models.Child, subject string) string {
	firstName, _, _ := strings.Cut(child.Name, " ")
	return fmt.Sprintf("%s - %s - %s", firstName, titleCase(subject), time.Now().Format("Jan 2"))
}
