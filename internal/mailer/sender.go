package mailer

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Email is a rendered message ready for delivery.
type Email struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// Sender delivers an email.
type Sender interface {
	Send(ctx context.Context, email Email) error
}

// LogSender only logs the email. It is used while no delivery provider is configured.
type LogSender struct {
	Logger *logrus.Logger
}

// Send logs the envelope of email.
func (s *LogSender) Send(ctx context.Context, email Email) error {
	s.Logger.WithFields(logrus.Fields{
		"to":         email.To,
		"from":       email.From,
		"subject":    email.Subject,
		"html_bytes": len(email.HTML),
	}).Info("Email would be sent (no delivery provider configured)")
	return nil
}
