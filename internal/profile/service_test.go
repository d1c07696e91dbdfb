package profile

import (
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/romainfalanga/Romainflg/internal/auth"
	"github.com/romainfalanga/Romainflg/internal/db"
	"github.com/romainfalanga/Romainflg/models"
)

type memStore struct {
	globals map[string]*models.GlobalUser
	sites   map[string]*models.SiteUserProfile
	updates []map[string]interface{}
}

func newMemStore() *memStore {
	return &memStore{globals: map[string]*models.GlobalUser{}, sites: map[string]*models.SiteUserProfile{}}
}

func (m *memStore) GetGlobalUser(authUserID string) (*models.GlobalUser, error) {
	for _, g := range m.globals {
		if g.AuthUserID == authUserID {
			return g, nil
		}
	}
	return nil, db.ErrRecordNotFound
}

func (m *memStore) InsertGlobalUser(user models.GlobalUser) (*models.GlobalUser, error) {
	user.ID = "g-" + user.AuthUserID
	m.globals[user.ID] = &user
	return &user, nil
}

func (m *memStore) UpdateGlobalUser(id string, fields map[string]interface{}) (*models.GlobalUser, error) {
	m.updates = append(m.updates, fields)
	g, ok := m.globals[id]
	if !ok {
		return nil, db.ErrRecordNotFound
	}
	if v, ok := fields["username"].(string); ok {
		g.Username = v
	}
	if v, ok := fields["profile_photo_url"].(string); ok {
		g.ProfilePhotoURL = &v
	}
	return g, nil
}

func (m *memStore) GetSiteProfile(globalUserID, siteName string) (*models.SiteUserProfile, error) {
	p, ok := m.sites[globalUserID+"/"+siteName]
	if !ok {
		return nil, db.ErrRecordNotFound
	}
	return p, nil
}

func (m *memStore) InsertSiteProfile(profile models.SiteUserProfile) (*models.SiteUserProfile, error) {
	profile.ID = "s-" + profile.GlobalUserID
	m.sites[profile.GlobalUserID+"/"+profile.SiteName] = &profile
	return &profile, nil
}

func (m *memStore) UpdateSiteProfile(id string, fields map[string]interface{}) (*models.SiteUserProfile, error) {
	m.updates = append(m.updates, fields)
	for _, p := range m.sites {
		if p.ID == id {
			if v, ok := fields["description"].(string); ok {
				p.Description = v
			}
			if v, ok := fields["site_specific_data"].(json.RawMessage); ok {
				p.SiteSpecificData = v
			}
			return p, nil
		}
	}
	return nil, db.ErrRecordNotFound
}

type memPhotos struct {
	path        string
	contentType string
	size        int
	err         error
}

func (m *memPhotos) Upload(path, contentType string, data io.Reader) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	b, _ := io.ReadAll(data)
	m.path, m.contentType, m.size = path, contentType, len(b)
	return "https://cdn.example.com/" + path, nil
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func viewer() *auth.Session {
	return &auth.Session{
		User:    auth.Identity{ID: "u1", Email: "eve@example.com"},
		Profile: &models.UserProfile{ID: "u1", Username: "evey", Role: models.RoleUser},
	}
}

func newTestService(store *memStore, photos *memPhotos) *Service {
	svc := NewService(store, photos, "romainflg", quietLogger())
	svc.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return svc
}

func TestLoad_CreatesMissingRowsOnce(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, &memPhotos{})

	view, err := svc.Load(viewer())
	require.NoError(t, err)
	assert.Equal(t, "evey", view.Global.Username)
	assert.Equal(t, "eve@example.com", view.Global.Email)
	assert.Equal(t, "romainflg", view.Site.SiteName)
	assert.Equal(t, view.Global.ID, view.Site.GlobalUserID)

	again, err := svc.Load(viewer())
	require.NoError(t, err)
	assert.Equal(t, view.Global.ID, again.Global.ID)
	assert.Len(t, store.globals, 1)
	assert.Len(t, store.sites, 1)
}

func TestLoad_RequiresSession(t *testing.T) {
	_, err := newTestService(newMemStore(), &memPhotos{}).Load(nil)
	assert.ErrorIs(t, err, auth.ErrInvalidSession)
}

func TestUpdateGlobal(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, &memPhotos{})

	name := "  eve  "
	updated, err := svc.UpdateGlobal(viewer(), GlobalPatch{Username: &name})
	require.NoError(t, err)
	assert.Equal(t, "eve", updated.Username)

	_, err = svc.UpdateGlobal(viewer(), GlobalPatch{})
	assert.ErrorIs(t, err, ErrEmptyUpdate)
}

func TestUpdateSite(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, &memPhotos{})

	desc := "Joueuse d'échecs"
	updated, err := svc.UpdateSite(viewer(), SitePatch{
		Description:      &desc,
		SiteSpecificData: json.RawMessage(`{"favorite":"chess-13"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, desc, updated.Description)
	assert.JSONEq(t, `{"favorite":"chess-13"}`, string(updated.SiteSpecificData))

	_, err = svc.UpdateSite(viewer(), SitePatch{SiteSpecificData: json.RawMessage(`{nope`)})
	assert.ErrorIs(t, err, ErrInvalidData)
}

func TestUploadPhoto(t *testing.T) {
	store := newMemStore()
	photos := &memPhotos{}
	svc := newTestService(store, photos)

	updated, err := svc.UploadPhoto(viewer(), Photo{
		Filename:    "Me.PNG",
		ContentType: "image/png",
		Size:        4,
		Data:        strings.NewReader("\x89PNG"),
	})
	require.NoError(t, err)
	assert.Equal(t, "user-u1-1700000000000.png", photos.path)
	assert.Equal(t, "image/png", photos.contentType)
	require.NotNil(t, updated.ProfilePhotoURL)
	assert.Equal(t, "https://cdn.example.com/user-u1-1700000000000.png", *updated.ProfilePhotoURL)
}

func TestUploadPhoto_Rejections(t *testing.T) {
	photos := &memPhotos{}
	svc := newTestService(newMemStore(), photos)

	_, err := svc.UploadPhoto(viewer(), Photo{Filename: "cv.pdf", ContentType: "application/pdf", Size: 10, Data: strings.NewReader("x")})
	assert.ErrorIs(t, err, ErrNotImage)

	_, err = svc.UploadPhoto(viewer(), Photo{Filename: "big.jpg", ContentType: "image/jpeg", Size: MaxPhotoBytes + 1, Data: strings.NewReader("x")})
	assert.ErrorIs(t, err, ErrPhotoTooLarge)
	assert.Empty(t, photos.path)
}

func TestUploadPhoto_StorageFailureKeepsProfile(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store, &memPhotos{err: errors.New("bucket not found")})

	_, err := svc.UploadPhoto(viewer(), Photo{Filename: "a.jpg", ContentType: "image/jpeg", Size: 1, Data: strings.NewReader("x")})
	require.Error(t, err)
	for _, g := range store.globals {
		assert.Nil(t, g.ProfilePhotoURL)
	}
}
