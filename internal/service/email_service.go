package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/resend/resend-go/v2"

	"github.com/yourusername/jobboard-api/internal/domain/entity"
)

// EmailService отправляет транзакционные письма соискателям
type EmailService interface {
	SendApplicationOutcome(ctx context.Context, toEmail, jobTitle, status string, correctCount *int) error
}

// NoopEmailService используется при выключенных уведомлениях
type NoopEmailService struct{}

func (s *NoopEmailService) SendApplicationOutcome(ctx context.Context, toEmail, jobTitle, status string, correctCount *int) error {
	log.Printf("[EmailService] noop send application outcome to=%s status=%s", toEmail, status)
	return nil
}

// ResendEmailService отправляет письма через Resend REST API
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

func (s *ResendEmailService) SendApplicationOutcome(ctx context.Context, toEmail, jobTitle, status string, correctCount *int) error {
	if toEmail == "" || jobTitle == "" {
		return fmt.Errorf("toEmail and jobTitle are required")
	}

	subject, text, html := outcomeMessage(jobTitle, status, correctCount)
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{toEmail},
		Subject: subject,
		Text:    text,
		Html:    html,
	}

	options := &resend.SendEmailOptions{
		IdempotencyKey: uuid.NewString(),
	}

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		_, err := s.client.Emails.SendWithOptions(ctx, params, options)
		if err == nil {
			return nil
		}
		lastErr = err

		if wait, ok := resendRetryDelay(err, attempt); ok {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
				continue
			}
		}

		return fmt.Errorf("resend send failed: %w", err)
	}

	return fmt.Errorf("resend send failed after retries: %w", lastErr)
}

func outcomeMessage(jobTitle, status string, correctCount *int) (subject, text, html string) {
	switch status {
	case entity.ApplicationStatusAccepted:
		subject = fmt.Sprintf("Your application for %q was accepted", jobTitle)
		text = fmt.Sprintf("Good news! The recruiter accepted your application for %q.", jobTitle)
	case entity.ApplicationStatusRejected:
		subject = fmt.Sprintf("Your application for %q was not successful", jobTitle)
		if correctCount != nil {
			text = fmt.Sprintf("Unfortunately your application for %q was rejected. Quiz result: %d correct answers.", jobTitle, *correctCount)
		} else {
			text = fmt.Sprintf("Unfortunately your application for %q was rejected.", jobTitle)
		}
	default:
		subject = fmt.Sprintf("Your application for %q was received", jobTitle)
		if correctCount != nil {
			text = fmt.Sprintf("Your application for %q passed the quiz (%d correct answers) and is awaiting recruiter review.", jobTitle, *correctCount)
		} else {
			text = fmt.Sprintf("Your application for %q is awaiting recruiter review.", jobTitle)
		}
	}
	html = fmt.Sprintf("<p>%s</p>", text)
	return subject, text, html
}

func resendRetryDelay(err error, attempt int) (time.Duration, bool) {
	var rateLimitErr *resend.RateLimitError
	if errors.As(err, &rateLimitErr) {
		if seconds, convErr := strconv.Atoi(strings.TrimSpace(rateLimitErr.RetryAfter)); convErr == nil && seconds > 0 {
			if seconds > 30 {
				seconds = 30
			}
			return time.Duration(seconds) * time.Second, true
		}
		return time.Duration(attempt+1) * time.Second, true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return time.Duration(attempt+1) * 500 * time.Millisecond, true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "timeout") || strings.Contains(msg, "temporar") {
		return time.Duration(attempt+1) * 500 * time.Millisecond, true
	}

	return 0, false
}
