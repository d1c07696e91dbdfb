package handlers

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/romainfalanga/Romainflg/internal/auth"
	"github.com/romainfalanga/Romainflg/internal/catalog"
	"github.com/romainfalanga/Romainflg/internal/intake"
	"github.com/romainfalanga/Romainflg/internal/profile"
	"github.com/romainfalanga/Romainflg/internal/review"
	"github.com/romainfalanga/Romainflg/middleware"
	"github.com/romainfalanga/Romainflg/models"
)

// IntakeService stores applications and queues their notification.
type IntakeService interface {
	Submit(ctx context.Context, sub intake.Submission) (*intake.Result, error)
}

// CatalogStore is the project catalog.
type CatalogStore interface {
	List() []models.Project
	Get(id string) (models.Project, error)
	GetBySlug(slug string) (models.Project, error)
	Add(in catalog.ProjectInput) (models.Project, error)
	Update(id string, patch catalog.ProjectPatch) (models.Project, error)
	Delete(id string) error
}

// AuthService signs people in and out.
type AuthService interface {
	SignUp(in auth.SignUpInput) (*auth.Session, error)
	SignIn(email, password string) (*auth.Session, error)
	SignOut(accessToken string) error
	Authenticate(accessToken string) (*auth.Session, error)
}

// ReviewService serves applications to administrators.
type ReviewService interface {
	List(viewer *auth.Session) ([]review.Entry, error)
	Get(viewer *auth.Session, id string) (*review.Entry, error)
}

// ProfileService manages the viewer's own profile.
type ProfileService interface {
	Load(viewer *auth.Session) (*profile.View, error)
	UpdateGlobal(viewer *auth.Session, patch profile.GlobalPatch) (*models.GlobalUser, error)
	UpdateSite(viewer *auth.Session, patch profile.SitePatch) (*models.SiteUserProfile, error)
	UploadPhoto(viewer *auth.Session, photo profile.Photo) (*models.GlobalUser, error)
}

// Deps lists what the site handlers need. The Supabase-backed services are nil
// while the backend is not configured; BackendErr then says why.
type Deps struct {
	Intake       IntakeService
	Catalog      CatalogStore
	Auth         AuthService
	Review       ReviewService
	Profiles     ProfileService
	Metrics      *middleware.Metrics
	Logger       *logrus.Logger
	CookieSecure bool
	BackendErr   error
}

// SiteHandler holds shared dependencies for handlers.
type SiteHandler struct {
	intake       IntakeService
	catalog      CatalogStore
	auth         AuthService
	review       ReviewService
	profiles     ProfileService
	metrics      *middleware.Metrics
	logger       *logrus.Logger
	cookieSecure bool
	backendErr   error
	validate     *validator.Validate
}

// NewSiteHandler creates a new SiteHandler with the given dependencies.
func NewSiteHandler(deps Deps) *SiteHandler {
	return &SiteHandler{
		intake:       deps.Intake,
		catalog:      deps.Catalog,
		auth:         deps.Auth,
		review:       deps.Review,
		profiles:     deps.Profiles,
		metrics:      deps.Metrics,
		logger:       deps.Logger,
		cookieSecure: deps.CookieSecure,
		backendErr:   deps.BackendErr,
		validate:     validator.New(),
	}
}
