package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"homeworkhub/internal/entity"
	"homeworkhub/internal/models"
	"homeworkhub/internal/repository"
)

// TimeWindow restricts progress views to a recent period
type TimeWindow string

const (
	WindowAll     TimeWindow = "all"
	WindowWeek    TimeWindow = "week"
	WindowMonth   TimeWindow = "month"
	WindowQuarter TimeWindow = "quarter"
)

// Valid reports whether w is a known time window
func (w TimeWindow) Valid() bool {
	switch w {
	case WindowAll, WindowWeek, WindowMonth, WindowQuarter:
		return true
	}
	return false
}

// Cutoff returns the start of the window relative to now. The zero time
// means no cutoff.
func (w TimeWindow) Cutoff(now time.Time) time.Time {
	switch w {
	case WindowWeek:
		return now.AddDate(0, 0, -7)
	case WindowMonth:
		return now.AddDate(0, -1, 0)
	case WindowQuarter:
		return now.AddDate(0, -3, 0)
	}
	return time.Time{}
}

// Achievement is a badge earned from a child's graded assignments
type Achievement struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
}

// DashboardStats summarizes the last seven days plus the practice backlog
type DashboardStats struct {
	WeeklyAssignments int `json:"weekly_assignments"`
	AverageScore      int `json:"average_score"`
	PracticeQuestions int `json:"practice_questions"`
}

// SubjectAverage is one bar of the per-subject performance breakdown
type SubjectAverage struct {
	Subject      string `json:"subject"`
	AverageScore int    `json:"average_score"`
	Assignments  int    `json:"assignments"`
}

// ChildProgress is the full progress view for one child over a window
type ChildProgress struct {
	ChildID          string           `json:"child_id"`
	Window           TimeWindow       `json:"window"`
	AverageScore     int              `json:"average_score"`
	TotalAssignments int              `json:"total_assignments"`
	Subjects         []SubjectAverage `json:"subjects"`
	Strengths        []string         `json:"strengths"`
	Weaknesses       []string         `json:"weaknesses"`
	Achievements     []Achievement    `json:"achievements"`
}

// ProgressService derives statistics from stored assignments. All the
// computations are pure scans; the service only adds repository access
// and a clock.
type ProgressService struct {
	children    *repository.ChildRepository
	assignments *repository.AssignmentRepository
	practice    *repository.PracticeQuestionRepository
	now         func() time.Time
}

// NewProgressService creates a new progress service
func NewProgressService(children *repository.ChildRepository, assignments *repository.AssignmentRepository, practice *repository.PracticeQuestionRepository) *ProgressService {
	return &ProgressService{
		children:    children,
		assignments: assignments,
		practice:    practice,
		now:         time.Now,
	}
}

// Dashboard computes the landing-page stats. childID "all" or "" covers
// every child.
func (s *ProgressService) Dashboard(childID string) (DashboardStats, error) {
	assignments, err := s.listAssignments(childID)
	if err != nil {
		return DashboardStats{}, err
	}

	weekAgo := s.now().AddDate(0, 0, -7)
	var recent []models.Assignment
	for _, a := range assignments {
		if a.CreatedDate.After(weekAgo) {
			recent = append(recent, a)
		}
	}

	filterChild := childID
	if filterChild == "all" {
		filterChild = ""
	}
	pending, err := s.practice.CountIncomplete(filterChild)
	if err != nil {
		return DashboardStats{}, err
	}

	return DashboardStats{
		WeeklyAssignments: len(recent),
		AverageScore:      averageScore(recent),
		PracticeQuestions: pending,
	}, nil
}

// Progress computes the full progress view for one child
func (s *ProgressService) Progress(childID string, window TimeWindow) (ChildProgress, error) {
	if !window.Valid() {
		return ChildProgress{}, &entity.ValidationError{Field: "window", Reason: fmt.Sprintf("unknown time window %q", window)}
	}
	if _, err := s.children.Get(childID); err != nil {
		return ChildProgress{}, err
	}

	all, err := s.assignments.ListForChild(childID)
	if err != nil {
		return ChildProgress{}, err
	}
	windowed := FilterByWindow(all, window, s.now())

	return ChildProgress{
		ChildID:          childID,
		Window:           window,
		AverageScore:     averageScore(windowed),
		TotalAssignments: len(windowed),
		Subjects:         subjectAverages(windowed),
		Strengths:        collectTags(windowed, func(a models.Assignment) []string { return a.Strengths }),
		Weaknesses:       collectTags(windowed, func(a models.Assignment) []string { return a.Weaknesses }),
		Achievements:     DetectAchievements(windowed, len(all)),
	}, nil
}

func (s *ProgressService) listAssignments(childID string) ([]models.Assignment, error) {
	if childID == "" || childID == "all" {
		return s.assignments.List(entity.DefaultSort, 0)
	}
	return s.assignments.ListForChild(childID)
}

// FilterByWindow keeps the assignments created at or after the window's
// cutoff. WindowAll is the identity filter.
func FilterByWindow(assignments []models.Assignment, window TimeWindow, now time.Time) []models.Assignment {
	cutoff := window.Cutoff(now)
	if cutoff.IsZero() {
		return assignments
	}
	var out []models.Assignment
	for _, a := range assignments {
		if !a.CreatedDate.Before(cutoff) {
			out = append(out, a)
		}
	}
	return out
}

// DetectAchievements scans a child's assignments, newest first, and
// returns at most four badges sorted by date descending. lifetimeCount
// is the child's total assignment count regardless of window.
func DetectAchievements(assignments []models.Assignment, lifetimeCount int) []Achievement {
	var achievements []Achievement

	for _, a := range assignments {
		if a.ScorePercentage == 100 {
			achievements = append(achievements, Achievement{
				ID:          "perfect-score",
				Title:       "Perfect Score!",
				Description: fmt.Sprintf("Scored 100%% on %s", a.Title),
				Date:        a.CreatedDate,
			})
			break
		}
	}

	chrono := make([]models.Assignment, len(assignments))
	copy(chrono, assignments)
	sort.SliceStable(chrono, func(i, j int) bool {
		return chrono[i].CreatedDate.Before(chrono[j].CreatedDate)
	})
	streak := 0
	for i := 1; i < len(chrono); i++ {
		if chrono[i].ScorePercentage >= chrono[i-1].ScorePercentage {
			streak++
		} else {
			break
		}
	}
	if streak >= 2 {
		achievements = append(achievements, Achievement{
			ID:          "improvement-streak",
			Title:       fmt.Sprintf("%d-Assignment Streak!", streak+1),
			Description: "Consistent improvement across assignments",
			Date:        chrono[len(chrono)-1].CreatedDate,
		})
	}

	subjectOrder := []string{}
	subjectScores := map[string][]int{}
	subjectLatest := map[string]time.Time{}
	for _, a := range assignments {
		if _, seen := subjectScores[a.Subject]; !seen {
			subjectOrder = append(subjectOrder, a.Subject)
			subjectLatest[a.Subject] = a.CreatedDate
		}
		subjectScores[a.Subject] = append(subjectScores[a.Subject], a.ScorePercentage)
	}
	for _, subject := range subjectOrder {
		scores := subjectScores[subject]
		if len(scores) < 2 {
			continue
		}
		sum := 0
		for _, score := range scores {
			sum += score
		}
		avg := float64(sum) / float64(len(scores))
		if avg >= 90 {
			achievements = append(achievements, Achievement{
				ID:          subject + "-mastery",
				Title:       titleCase(subject) + " Master!",
				Description: fmt.Sprintf("Maintaining %d%% average in %s", int(avg+0.5), subject),
				Date:        subjectLatest[subject],
			})
		}
	}

	if len(assignments) >= 3 {
		improvement := assignments[0].ScorePercentage - assignments[2].ScorePercentage
		if improvement >= 15 {
			achievements = append(achievements, Achievement{
				ID:          "quick-learner",
				Title:       "Quick Learner!",
				Description: fmt.Sprintf("Improved score by %d%% in recent assignments", improvement),
				Date:        assignments[0].CreatedDate,
			})
		}
	}

	if len(assignments) >= 3 {
		recent := assignments
		if len(recent) > 5 {
			recent = recent[:5]
		}
		consistent := true
		for _, a := range recent {
			if a.ScorePercentage < 80 {
				consistent = false
				break
			}
		}
		if consistent {
			achievements = append(achievements, Achievement{
				ID:          "consistent-performer",
				Title:       "Consistent Star!",
				Description: "Scoring 80%+ on all recent assignments",
				Date:        assignments[0].CreatedDate,
			})
		}
	}

	if lifetimeCount >= 10 && len(assignments) > 0 {
		achievements = append(achievements, Achievement{
			ID:          "study-champion",
			Title:       "Study Champion!",
			Description: fmt.Sprintf("Completed %d assignments total", lifetimeCount),
			Date:        assignments[0].CreatedDate,
		})
	}

	sort.SliceStable(achievements, func(i, j int) bool {
		return achievements[i].Date.After(achievements[j].Date)
	})
	if len(achievements) > 4 {
		achievements = achievements[:4]
	}
	return achievements
}

func averageScore(assignments []models.Assignment) int {
	if len(assignments) == 0 {
		return 0
	}
	correct := 0
	for _, a := range assignments {
		correct += a.ScorePercentage
	}
	return int(float64(correct)/float64(len(assignments)) + 0.5)
}

func subjectAverages(assignments []models.Assignment) []SubjectAverage {
	order := []string{}
	grouped := map[string][]models.Assignment{}
	for _, a := range assignments {
		if _, seen := grouped[a.Subject]; !seen {
			order = append(order, a.Subject)
		}
		grouped[a.Subject] = append(grouped[a.Subject], a)
	}

	out := make([]SubjectAverage, 0, len(order))
	for _, subject := range order {
		out = append(out, SubjectAverage{
			Subject:      subject,
			AverageScore: averageScore(grouped[subject]),
			Assignments:  len(grouped[subject]),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Subject < out[j].Subject })
	return out
}

func collectTags(assignments []models.Assignment, pick func(models.Assignment) []string) []string {
	var out []string
	for _, a := range assignments {
		out = append(out, pick(a)...)
	}
	return out
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
