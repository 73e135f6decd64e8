package service

import (
	"context"
	"fmt"
	"log"

	"homeworkhub/internal/repository"
)

// ReportService assembles and sends the weekly progress email
type ReportService struct {
	users    *repository.UserRepository
	children *repository.ChildRepository
	progress *ProgressService
	email    *EmailService
}

// NewReportService creates a new report service
func NewReportService(users *repository.UserRepository, children *repository.ChildRepository, progress *ProgressService, email *EmailService) *ReportService {
	return &ReportService{
		users:    users,
		children: children,
		progress: progress,
		email:    email,
	}
}

// SendWeeklyReport emails the parent a per-child summary of the past
// week. Nothing is sent when no account exists or the account has opted
// out of email notifications or weekly reports.
func (s *ReportService) SendWeeklyReport(ctx context.Context) error {
	user, err := s.users.Me()
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil
	}
	if !user.EmailNotifications || !user.WeeklyReports {
		log.Printf("Skipping weekly report: notifications disabled for %s", user.Email)
		return nil
	}

	children, err := s.children.List("name", 0)
	if err != nil {
		return fmt.Errorf("failed to list children: %w", err)
	}
	if len(children) == 0 {
		return nil
	}

	rows := make([]ChildWeeklyRow, 0, len(children))
	for _, child := range children {
		stats, err := s.progress.Dashboard(child.ID)
		if err != nil {
			return fmt.Errorf("failed to compute stats for %s: %w", child.Name, err)
		}
		rows = append(rows, ChildWeeklyRow{
			ChildName:       child.Name,
			Assignments:     stats.WeeklyAssignments,
			AverageScore:    stats.AverageScore,
			PendingPractice: stats.PracticeQuestions,
		})
	}

	return s.email.SendWeeklyReport(ctx, user, rows)
}
