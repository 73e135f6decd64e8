package service

import (
	"fmt"
	"log"

	"homeworkhub/internal/models"
	"homeworkhub/internal/repository"
	"homeworkhub/internal/security"
)

// SeedService populates an empty store with demo data so the app is
// usable on first run
type SeedService struct {
	users       *repository.UserRepository
	children    *repository.ChildRepository
	assignments *repository.AssignmentRepository
	practice    *repository.PracticeQuestionRepository
	tutors      *repository.TutorRepository
}

// NewSeedService creates a new seed service
func NewSeedService(
	users *repository.UserRepository,
	children *repository.ChildRepository,
	assignments *repository.AssignmentRepository,
	practice *repository.PracticeQuestionRepository,
	tutors *repository.TutorRepository,
) *SeedService {
	return &SeedService{
		users:       users,
		children:    children,
		assignments: assignments,
		practice:    practice,
		tutors:      tutors,
	}
}

// SeedIfEmpty loads the demo account and sample data when the store has
// no children yet. Existing data is never touched.
func (s *SeedService) SeedIfEmpty(demoEmail, demoPassword string) error {
	if err := s.seedUser(demoEmail, demoPassword); err != nil {
		return err
	}

	existing, err := s.children.List("", 0)
	if err != nil {
		return fmt.Errorf("failed to check for existing children: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	log.Println("Seeding demo data")

	emma, err := s.children.Create(models.Child{
		Name:       "Emma Johnson",
		Age:        8,
		GradeLevel: "3",
		Language:   "english",
		Subjects:   []string{"math", "reading", "science"},
	})
	if err != nil {
		return fmt.Errorf("failed to seed children: %w", err)
	}
	liam, err := s.children.Create(models.Child{
		Name:       "Liam Smith",
		Age:        10,
		GradeLevel: "5",
		Language:   "english",
		Subjects:   []string{"math", "english", "history"},
	})
	if err != nil {
		return fmt.Errorf("failed to seed children: %w", err)
	}

	emmaMath, err := s.assignments.Create(models.Assignment{
		ChildID:              emma.ID,
		Title:                "Emma - Math - Dec 15",
		Subject:              "math",
		GradeLevel:           "3",
		TotalQuestions:       10,
		CorrectAnswers:       8,
		ScorePercentage:      80,
		Strengths:            []string{"Addition", "Number recognition", "Problem solving"},
		Weaknesses:           []string{"Subtraction with borrowing", "Word problems"},
		SkillAreasToPractice: []string{"Subtraction", "Reading comprehension"},
		DetailedFeedback:     "Great work on addition problems! Focus on subtraction with borrowing for improvement.",
		Status:               models.StatusGraded,
		OriginalFileURL:      "https://example.com/homework1.jpg",
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
	})
	if err != nil {
		return fmt.Errorf("failed to seed assignments: %w", err)
	}

	liamEnglish, err := s.assignments.Create(models.Assignment{
		ChildID:              liam.ID,
		Title:                "Liam - English - Dec 14",
		Subject:              "english",
		GradeLevel:           "5",
		TotalQuestions:       8,
		CorrectAnswers:       7,
		ScorePercentage:      88,
		Strengths:            []string{"Grammar", "Vocabulary", "Reading comprehension"},
		Weaknesses:           []string{"Spelling"},
		SkillAreasToPractice: []string{"Spelling rules"},
		DetailedFeedback:     "Excellent grammar and vocabulary skills! Work on spelling patterns.",
		Status:               models.StatusGraded,
		OriginalFileURL:      "https://example.com/homework2.jpg",
	})
	if err != nil {
		return fmt.Errorf("failed to seed assignments: %w", err)
	}

	practiceQuestions := []models.PracticeQuestion{
		{
			ChildID:         emma.ID,
			AssignmentID:    emmaMath.ID,
			Subject:         "math",
			SkillArea:       "Subtraction",
			QuestionType:    models.QuestionMultipleChoice,
			Question:        "What is 15 - 8?",
			Options:         []string{"6", "7", "8", "9"},
			CorrectAnswer:   "7",
			Explanation:     "Count backwards from 15: 15 - 8 = 7",
			DifficultyLevel: models.DifficultyMedium,
		},
		{
			ChildID:         liam.ID,
			AssignmentID:    liamEnglish.ID,
			Subject:         "english",
			SkillArea:       "Spelling rules",
			QuestionType:    models.QuestionFillBlank,
			Question:        "Complete the word: beau____ul",
			CorrectAnswer:   "tif",
			Explanation:     `The word is "beautiful" - remember the "ti" makes the "ti" sound.`,
			DifficultyLevel: models.DifficultyMedium,
		},
	}
	for _, q := range practiceQuestions {
		if _, err := s.practice.Create(q); err != nil {
			return fmt.Errorf("failed to seed practice questions: %w", err)
		}
	}

	tutors := []models.Tutor{
		{
			Name:         "Sarah Johnson",
			Bio:          "Experienced elementary math tutor with 8 years of teaching experience. Specializes in making math fun and accessible for young learners.",
			Subjects:     []string{"math", "science"},
			HourlyRate:   35,
			Rating:       4.9,
			IsVerified:   true,
			ContactEmail: "sarah.johnson@email.com",
			AvatarURL:    "https://images.pexels.com/photos/3769021/pexels-photo-3769021.jpeg?auto=compress&cs=tinysrgb&w=150&h=150&fit=crop",
		},
		{
			Name:         "Michael Chen",
			Bio:          "Certified teacher with expertise in English and reading comprehension. Passionate about helping students develop strong literacy skills.",
			Subjects:     []string{"english", "reading", "writing"},
			HourlyRate:   40,
			Rating:       4.8,
			IsVerified:   true,
			ContactEmail: "michael.chen@email.com",
			AvatarURL:    "https://images.pexels.com/photos/2182970/pexels-photo-2182970.jpeg?auto=compress&cs=tinysrgb&w=150&h=150&fit=crop",
		},
		{
			Name:         "Emily Rodriguez",
			Bio:          "Science educator with a focus on hands-on learning. Makes complex concepts simple and engaging for elementary students.",
			Subjects:     []string{"science", "math"},
			HourlyRate:   38,
			Rating:       4.7,
			IsVerified:   true,
			ContactEmail: "emily.rodriguez@email.com",
			AvatarURL:    "https://images.pexels.com/photos/3184291/pexels-photo-3184291.jpeg?auto=compress&cs=tinysrgb&w=150&h=150&fit=crop",
		},
	}
	for _, t := range tutors {
		if _, err := s.tutors.Create(t); err != nil {
			return fmt.Errorf("failed to seed tutors: %w", err)
		}
	}

	return nil
}

func (s *SeedService) seedUser(demoEmail, demoPassword string) error {
	user, err := s.users.Me()
	if err != nil {
		return fmt.Errorf("failed to check for existing user: %w", err)
	}
	if user != nil {
		return nil
	}

	hash, err := security.HashPassword(demoPassword)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}

	log.Printf("Seeding demo account %s", demoEmail)
	return s.users.Save(models.User{
		Email:              demoEmail,
		FullName:           "John Parent",
		Username:           "johnparent",
		PasswordHash:       hash,
		SubscriptionPlan:   models.PlanFree,
		EmailNotifications: true,
		PushNotifications:  true,
		WeeklyReports:      true,
		AutoSaveHomework:   true,
	})
}
