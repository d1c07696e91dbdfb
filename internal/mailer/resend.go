package mailer

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// ResendSender delivers email through the Resend API.
type ResendSender struct {
	client *resend.Client
}

// NewResendSender returns a sender authenticated with apiKey.
func NewResendSender(apiKey string) *ResendSender {
	return &ResendSender{client: resend.NewClient(apiKey)}
}

// Client exposes the underlying Resend client, e.g. to point BaseURL elsewhere.
func (s *ResendSender) Client() *resend.Client {
	return s.client
}

// Send hands email to Resend.
func (s *ResendSender) Send(ctx context.Context, email Email) error {
	_, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    email.From,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTML,
	})
	if err != nil {
		return fmt.Errorf("error sending email via resend: %w", err)
	}
	return nil
}
