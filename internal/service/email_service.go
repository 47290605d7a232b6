package service

import (
	"context"
	"fmt"
	"log"

	"github.com/resend/resend-go/v2"
)

// EmailService sends transactional emails.
type EmailService interface {
	SendReviewDecision(ctx context.Context, toEmail, challengeTitle, status string, pointValue int) error
}

// NoopEmailService is used when outgoing email is disabled.
type NoopEmailService struct{}

func (s *NoopEmailService) SendReviewDecision(ctx context.Context, toEmail, challengeTitle, status string, pointValue int) error {
	log.Printf("[EmailService] noop send review decision to=%s status=%s", toEmail, status)
	return nil
}

// ResendEmailService sends emails via the Resend REST API.
type ResendEmailService struct {
	from   string
	client *resend.Client
}

func NewResendEmailService(apiKey, from string) (*ResendEmailService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend api key is required")
	}
	if from == "" {
		return nil, fmt.Errorf("email from is required")
	}
	return &ResendEmailService{
		from:   from,
		client: resend.NewClient(apiKey),
	}, nil
}

func (s *ResendEmailService) SendReviewDecision(ctx context.Context, toEmail, challengeTitle, status string, pointValue int) error {
	if toEmail == "" {
		return fmt.Errorf("toEmail is required")
	}

	subject := fmt.Sprintf("Your challenge %q was %s", challengeTitle, status)
	body := fmt.Sprintf("Your eco-challenge %q has been %s.", challengeTitle, status)
	if status == "APPROVED" {
		body = fmt.Sprintf("Your eco-challenge %q has been approved. %d eco-points were added to your account.",
			challengeTitle, pointValue)
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{toEmail},
		Subject: subject,
		Text:    body,
	}
	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("resend send failed: %w", err)
	}
	return nil
}
