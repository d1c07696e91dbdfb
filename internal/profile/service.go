package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/romainfalanga/Romainflg/internal/auth"
	"github.com/romainfalanga/Romainflg/internal/db"
	"github.com/romainfalanga/Romainflg/models"
)

// MaxPhotoBytes caps the size of an uploaded profile photo.
const MaxPhotoBytes = 5 * 1024 * 1024

var (
	ErrNotImage      = errors.New("le fichier doit être une image")
	ErrPhotoTooLarge = errors.New("l'image ne doit pas dépasser 5MB")
	ErrEmptyUpdate   = errors.New("nothing to update")
	ErrInvalidData   = errors.New("site_specific_data is not valid JSON")
)

// Store is the profile side of the hosted database.
type Store interface {
	GetGlobalUser(authUserID string) (*models.GlobalUser, error)
	InsertGlobalUser(user models.GlobalUser) (*models.GlobalUser, error)
	UpdateGlobalUser(id string, fields map[string]interface{}) (*models.GlobalUser, error)
	GetSiteProfile(globalUserID, siteName string) (*models.SiteUserProfile, error)
	InsertSiteProfile(profile models.SiteUserProfile) (*models.SiteUserProfile, error)
	UpdateSiteProfile(id string, fields map[string]interface{}) (*models.SiteUserProfile, error)
}

// PhotoStorage keeps uploaded photos and serves them publicly.
type PhotoStorage interface {
	Upload(path, contentType string, data io.Reader) (string, error)
}

// View is everything the profile page shows.
type View struct {
	Global *models.GlobalUser      `json:"global_user"`
	Site   *models.SiteUserProfile `json:"site_profile"`
}

// GlobalPatch lists the global fields to change.
type GlobalPatch struct {
	Username        *string `json:"username,omitempty" validate:"omitempty,min=1,max=50"`
	ProfilePhotoURL *string `json:"profile_photo_url,omitempty" validate:"omitempty,url"`
}

// SitePatch lists the per-site fields to change.
type SitePatch struct {
	Description      *string         `json:"description,omitempty" validate:"omitempty,max=2000"`
	SiteSpecificData json.RawMessage `json:"site_specific_data,omitempty"`
}

// Service manages the signed-in person's own profile.
type Service struct {
	store    Store
	photos   PhotoStorage
	siteName string
	logger   *logrus.Logger
	now      func() time.Time
}

// NewService returns a profile Service scoped to siteName.
func NewService(store Store, photos PhotoStorage, siteName string, logger *logrus.Logger) *Service {
	return &Service{
		store:    store,
		photos:   photos,
		siteName: siteName,
		logger:   logger,
		now:      time.Now,
	}
}

// Load returns the profile of viewer, creating missing rows on first visit.
func (s *Service) Load(viewer *auth.Session) (*View, error) {
	global, err := s.globalUser(viewer)
	if err != nil {
		return nil, err
	}

	site, err := s.store.GetSiteProfile(global.ID, s.siteName)
	if errors.Is(err, db.ErrRecordNotFound) {
		site, err = s.store.InsertSiteProfile(models.SiteUserProfile{
			GlobalUserID: global.ID,
			SiteName:     s.siteName,
		})
	}
	if err != nil {
		return nil, err
	}

	return &View{Global: global, Site: site}, nil
}

// UpdateGlobal changes the cross-site fields of viewer.
func (s *Service) UpdateGlobal(viewer *auth.Session, patch GlobalPatch) (*models.GlobalUser, error) {
	fields := map[string]interface{}{}
	if patch.Username != nil {
		fields["username"] = strings.TrimSpace(*patch.Username)
	}
	if patch.ProfilePhotoURL != nil {
		fields["profile_photo_url"] = *patch.ProfilePhotoURL
	}
	if len(fields) == 0 {
		return nil, ErrEmptyUpdate
	}

	global, err := s.globalUser(viewer)
	if err != nil {
		return nil, err
	}
	return s.store.UpdateGlobalUser(global.ID, fields)
}

// UpdateSite changes the per-site fields of viewer.
func (s *Service) UpdateSite(viewer *auth.Session, patch SitePatch) (*models.SiteUserProfile, error) {
	fields := map[string]interface{}{}
	if patch.Description != nil {
		fields["description"] = *patch.Description
	}
	if len(patch.SiteSpecificData) > 0 {
		if !json.Valid(patch.SiteSpecificData) {
			return nil, ErrInvalidData
		}
		fields["site_specific_data"] = patch.SiteSpecificData
	}
	if len(fields) == 0 {
		return nil, ErrEmptyUpdate
	}

	view, err := s.Load(viewer)
	if err != nil {
		return nil, err
	}
	return s.store.UpdateSiteProfile(view.Site.ID, fields)
}

// Photo is an uploaded image file.
type Photo struct {
	Filename    string
	ContentType string
	Size        int64
	Data        io.Reader
}

// UploadPhoto stores photo and makes it the profile photo of viewer.
func (s *Service) UploadPhoto(viewer *auth.Session, photo Photo) (*models.GlobalUser, error) {
	if !strings.HasPrefix(photo.ContentType, "image/") {
		return nil, ErrNotImage
	}
	if photo.Size > MaxPhotoBytes {
		return nil, ErrPhotoTooLarge
	}

	global, err := s.globalUser(viewer)
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("user-%s-%d.%s", viewer.User.ID, s.now().UnixMilli(), extension(photo))
	// Guard against a client lying about Size.
	data := io.LimitReader(photo.Data, MaxPhotoBytes+1)
	url, err := s.photos.Upload(path, photo.ContentType, data)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{"user_id": viewer.User.ID, "path": path}).Info("Profile photo uploaded")
	return s.store.UpdateGlobalUser(global.ID, map[string]interface{}{"profile_photo_url": url})
}

func (s *Service) globalUser(viewer *auth.Session) (*models.GlobalUser, error) {
	if viewer == nil {
		return nil, auth.ErrInvalidSession
	}

	global, err := s.store.GetGlobalUser(viewer.User.ID)
	if !errors.Is(err, db.ErrRecordNotFound) {
		return global, err
	}

	username, _, _ := strings.Cut(viewer.User.Email, "@")
	if viewer.Profile != nil && viewer.Profile.Username != "" {
		username = viewer.Profile.Username
	}
	return s.store.InsertGlobalUser(models.GlobalUser{
		AuthUserID: viewer.User.ID,
		Username:   username,
		Email:      viewer.User.Email,
	})
}

func extension(photo Photo) string {
	if ext := strings.TrimPrefix(filepath.Ext(photo.Filename), "."); ext != "" {
		return strings.ToLower(ext)
	}
	if exts, _ := mime.ExtensionsByType(photo.ContentType); len(exts) > 0 {
		return strings.TrimPrefix(exts[0], ".")
	}
	return "img"
}
