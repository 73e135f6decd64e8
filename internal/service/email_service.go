package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"homeworkhub/internal/models"
)

// ChildWeeklyRow is one child's line in the weekly report email
type ChildWeeklyRow struct {
	ChildName       string
	Assignments     int
	AverageScore    int
	PendingPractice int
}

// EmailService sends notification emails via Amazon SES
type EmailService struct {
	client     *sesv2.Client
	fromEmail  string
	fromName   string
	appBaseURL string
	enabled    bool
}

// NewEmailService creates a new email service. An empty fromEmail yields
// a disabled service that logs instead of sending.
func NewEmailService(awsRegion, fromEmail, fromName, appBaseURL string) (*EmailService, error) {
	if fromEmail == "" {
		log.Println("Email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{enabled: false}, nil
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Printf("Email service enabled: from=%s, region=%s", fromEmail, awsRegion)
	return &EmailService{
		client:     sesv2.NewFromConfig(cfg),
		fromEmail:  fromEmail,
		fromName:   fromName,
		appBaseURL: appBaseURL,
		enabled:    true,
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendWeeklyReport sends the parent a summary of each child's week
func (s *EmailService) SendWeeklyReport(ctx context.Context, user *models.User, rows []ChildWeeklyRow) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): weekly report to %s", user.Email)
		return nil
	}

	name := user.FullName
	if name == "" {
		name = user.Email
	}

	var htmlRows, textRows strings.Builder
	for _, row := range rows {
		fmt.Fprintf(&htmlRows, `<tr><td>%s</td><td>%d</td><td>%d%%</td><td>%d</td></tr>`,
			row.ChildName, row.Assignments, row.AverageScore, row.PendingPractice)
		fmt.Fprintf(&textRows, "- %s: %d assignments, %d%% average, %d practice questions waiting\n",
			row.ChildName, row.Assignments, row.AverageScore, row.PendingPractice)
	}

	subject := "Your HomeworkHub Weekly Report"
	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<style>
		body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
		.container { max-width: 600px; margin: 0 auto; padding: 20px; }
		.header { background-color: #4a90e2; color: white; padding: 20px; text-align: center; border-radius: 5px 5px 0 0; }
		.content { background-color: #f9f9f9; padding: 30px; border-radius: 0 0 5px 5px; }
		table { width: 100%%; border-collapse: collapse; }
		th, td { text-align: left; padding: 8px; border-bottom: 1px solid #ddd; }
		.footer { text-align: center; margin-top: 20px; font-size: 12px; color: #666; }
	</style>
</head>
<body>
	<div class="container">
		<div class="header">
			<h1>Weekly Progress Report</h1>
		</div>
		<div class="content">
			<p>Hi %s,</p>
			<p>Here's how your children did over the past week:</p>
			<table>
				<tr><th>Child</th><th>Assignments</th><th>Average</th><th>Practice pending</th></tr>
				%s
			</table>
			<p>Visit your dashboard for the full breakdown: %s</p>
		</div>
		<div class="footer">
			<p>This is an automated email from HomeworkHub. Please do not reply.</p>
		</div>
	</div>
</body>
</html>
`, name, htmlRows.String(), s.appBaseURL)

	textBody := fmt.Sprintf(`Hi %s,

Here's how your children did over the past week:

%s
Visit your dashboard for the full breakdown: %s

---
This is an automated email from HomeworkHub. Please do not reply.
`, name, textRows.String(), s.appBaseURL)

	return s.sendEmail(ctx, user.Email, subject, htmlBody, textBody)
}

// sendEmail sends an email using Amazon SES
func (s *EmailService) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	log.Printf("Email sent successfully: to=%s, subject=%s", toEmail, subject)
	return nil
}
