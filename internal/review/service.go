package review

import (
	"errors"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/romainfalanga/Romainflg/internal/auth"
	"github.com/romainfalanga/Romainflg/internal/db"
	"github.com/romainfalanga/Romainflg/models"
)

var (
	// ErrUnauthenticated is returned when there is no viewer session.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrForbidden is returned when the viewer is not an administrator.
	ErrForbidden = errors.New("admin role required")
	// ErrNotFound is returned when the requested application does not exist.
	ErrNotFound = errors.New("application not found")
)

// ApplicationReader is the read side of the applications table.
type ApplicationReader interface {
	ListApplications() ([]models.Application, error)
	GetApplication(id string) (*models.Application, error)
}

// Entry is an application as shown to a reviewer.
type Entry struct {
	models.Application
	ReplyLink string `json:"reply_link"`
}

// Service serves applications to administrators.
type Service struct {
	reader ApplicationReader
	logger *logrus.Logger
}

func NewService(reader ApplicationReader, logger *logrus.Logger) *Service {
	return &Service{reader: reader, logger: logger}
}

// List returns every application, newest first.
func (s *Service) List(viewer *auth.Session) ([]Entry, error) {
	if err := authorize(viewer); err != nil {
		return nil, err
	}

	apps, err := s.reader.ListApplications()
	if err != nil {
		s.logger.WithError(err).Error("Failed to load applications")
		return nil, err
	}

	sort.SliceStable(apps, func(i, j int) bool {
		return apps[i].CreatedAt.After(apps[j].CreatedAt)
	})

	entries := make([]Entry, 0, len(apps))
	for _, app := range apps {
		entries = append(entries, Entry{Application: app, ReplyLink: app.ReplyLink()})
	}
	return entries, nil
}

// Get returns one application with its reply link.
func (s *Service) Get(viewer *auth.Session, id string) (*Entry, error) {
	if err := authorize(viewer); err != nil {
		return nil, err
	}

	app, err := s.reader.GetApplication(id)
	if errors.Is(err, db.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &Entry{Application: *app, ReplyLink: app.ReplyLink()}, nil
}

func authorize(viewer *auth.Session) error {
	if viewer == nil {
		return ErrUnauthenticated
	}
	if !viewer.IsAdmin() {
		return ErrForbidden
	}
	return nil
}
