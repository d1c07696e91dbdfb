package intake

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/romainfalanga/Romainflg/internal/mailer"
	"github.com/romainfalanga/Romainflg/internal/worker"
	"github.com/romainfalanga/Romainflg/models"
)

// ErrInvalidSubmission wraps every validation failure of a submission.
var ErrInvalidSubmission = errors.New("invalid application")

// Submission is the payload posted by the application form.
type Submission struct {
	ProjectName   string `json:"project_name" validate:"required"`
	Name          string `json:"name" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Position      string `json:"position" validate:"required,oneof=COO CM"`
	Telegram      string `json:"telegram" validate:"required"`
	TikTok        string `json:"tiktok,omitempty"`
	Motivation    string `json:"motivation" validate:"required"`
	Creativity    string `json:"creativity,omitempty"`
	UniverseModel string `json:"universe_model,omitempty"`
}

// ApplicationStore persists applications.
type ApplicationStore interface {
	InsertApplication(app models.Application) (*models.Application, error)
}

// Dispatcher queues background jobs.
type Dispatcher interface {
	Submit(job worker.Job) error
}

// Result describes what happened to a submission beyond storage.
type Result struct {
	Application   *models.Application
	EmailPrepared bool
	EmailQueued   bool
	Note          string
}

// Service stores applications and prepares their notification email.
type Service struct {
	store      ApplicationStore
	dispatcher Dispatcher
	sender     mailer.Sender
	notifyTo   string
	notifyFrom string
	logger     *logrus.Logger
	validate   *validator.Validate
	now        func() time.Time
}

// Options configures the notification side of the Service.
type Options struct {
	NotifyTo   string
	NotifyFrom string
}

// NewService wires the intake pipeline.
func NewService(store ApplicationStore, dispatcher Dispatcher, sender mailer.Sender, opts Options, logger *logrus.Logger) *Service {
	return &Service{
		store:      store,
		dispatcher: dispatcher,
		sender:     sender,
		notifyTo:   opts.NotifyTo,
		notifyFrom: opts.NotifyFrom,
		logger:     logger,
		validate:   validator.New(),
		now:        time.Now,
	}
}

// Submit validates sub, stores it and queues the notification email.
// Only validation and storage failures are returned; once the row is stored,
// email problems are logged and reported through Result.
func (s *Service) Submit(ctx context.Context, sub Submission) (*Result, error) {
	sub = normalize(sub)
	if err := s.validate.Struct(sub); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSubmission, err)
	}
	// Nothing is stored for a request that was already abandoned.
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("submission cancelled before storage: %w", err)
	}

	stored, err := s.store.InsertApplication(models.Application{
		ProjectName:   sub.ProjectName,
		Name:          sub.Name,
		Email:         sub.Email,
		Position:      models.Position(sub.Position),
		Telegram:      sub.Telegram,
		TikTok:        optional(sub.TikTok),
		Motivation:    sub.Motivation,
		Creativity:    optional(sub.Creativity),
		UniverseModel: optional(sub.UniverseModel),
	})
	if err != nil {
		return nil, err
	}

	entry := s.logger.WithContext(ctx).WithFields(logrus.Fields{
		"application_id": stored.ID,
		"project":        stored.ProjectName,
		"position":       stored.Position,
	})
	entry.Info("Application stored")

	result := &Result{Application: stored}

	html, err := RenderNotification(*stored, s.now())
	if err != nil {
		entry.WithError(err).Error("Could not prepare notification email")
		result.Note = "Notification email could not be prepared"
		return result, nil
	}
	result.EmailPrepared = true

	job := &mailer.DeliveryJob{
		JobID: "notify-" + stored.ID,
		Email: mailer.Email{
			From:    s.notifyFrom,
			To:      []string{s.notifyTo},
			Subject: Subject(*stored),
			HTML:    html,
		},
		Sender: s.sender,
	}
	if err := s.dispatcher.Submit(job); err != nil {
		entry.WithError(err).Warn("Could not queue notification email")
		result.Note = "Notification email could not be queued"
		return result, nil
	}
	result.EmailQueued = true
	result.Note = "Notification email queued for delivery"
	if _, logOnly := s.sender.(*mailer.LogSender); logOnly {
		result.Note = "Email service needs to be configured with Resend or similar"
	}

	return result, nil
}

func normalize(sub Submission) Submission {
	sub.ProjectName = strings.TrimSpace(sub.ProjectName)
	sub.Name = strings.TrimSpace(sub.Name)
	sub.Email = strings.TrimSpace(sub.Email)
	sub.Position = strings.ToUpper(strings.TrimSpace(sub.Position))
	sub.Telegram = strings.TrimSpace(sub.Telegram)
	sub.TikTok = strings.TrimSpace(sub.TikTok)
	sub.Motivation = strings.TrimSpace(sub.Motivation)
	sub.Creativity = strings.TrimSpace(sub.Creativity)
	sub.UniverseModel = strings.TrimSpace(sub.UniverseModel)
	return sub
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
