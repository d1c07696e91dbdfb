package db

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/romainfalanga/Romainflg/models"
)

func strPtr(s string) *string { return &s }

func TestInsertApplication_OptionalFieldsStoredAsNull(t *testing.T) {
	fake, client := newFakeREST(t)
	store := NewStore(client)

	created, err := store.InsertApplication(models.Application{
		ProjectName: "Chess 13",
		Name:        "Alice",
		Email:       "alice@example.com",
		Position:    models.PositionCM,
		Telegram:    "@alice",
		Motivation:  "I love chess",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Nil(t, created.TikTok)
	assert.Nil(t, created.Creativity)
	assert.Nil(t, created.UniverseModel)

	rows := fake.rows("applications")
	require.Len(t, rows, 1)
	for _, col := range []string{"tiktok", "creativity", "universe_model"} {
		v, present := rows[0][col]
		assert.True(t, present, col)
		assert.Nil(t, v, col)
	}
	assert.Equal(t, "CM", rows[0]["position"])
}

func TestInsertApplication_StoreFailure(t *testing.T) {
	fake, client := newFakeREST(t)
	fake.fail = true

	_, err := NewStore(client).InsertApplication(models.Application{Name: "Bob"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to store application")
}

func TestListApplications_NewestFirst(t *testing.T) {
	fake, client := newFakeREST(t)
	fake.seed("applications",
		map[string]interface{}{"id": "t2", "name": "two", "created_at": "2024-05-02T10:00:00Z"},
		map[string]interface{}{"id": "t1", "name": "one", "created_at": "2024-05-01T10:00:00Z"},
		map[string]interface{}{"id": "t3", "name": "three", "created_at": "2024-05-03T10:00:00Z"},
	)

	apps, err := NewStore(client).ListApplications()
	require.NoError(t, err)
	require.Len(t, apps, 3)
	assert.Equal(t, []string{"t3", "t2", "t1"}, []string{apps[0].ID, apps[1].ID, apps[2].ID})

	require.NotEmpty(t, fake.queries)
	assert.True(t, strings.Contains(fake.queries[0], "order=created_at.desc"), fake.queries[0])
}

func TestListApplications_EmptyIsNotNil(t *testing.T) {
	_, client := newFakeREST(t)

	apps, err := NewStore(client).ListApplications()
	require.NoError(t, err)
	assert.NotNil(t, apps)
	assert.Empty(t, apps)
}

func TestGetApplication_NotFound(t *testing.T) {
	_, client := newFakeREST(t)

	_, err := NewStore(client).GetApplication("missing")
	assert.True(t, errors.Is(err, ErrRecordNotFound))
}

func TestUserProfiles_InsertThenGet(t *testing.T) {
	_, client := newFakeREST(t)
	store := NewStore(client)

	_, err := store.GetUserProfile("user-1")
	require.True(t, errors.Is(err, ErrRecordNotFound))

	_, err = store.InsertUserProfile(models.UserProfile{ID: "user-1", Username: "romain", Role: models.RoleAdmin})
	require.NoError(t, err)

	profile, err := store.GetUserProfile("user-1")
	require.NoError(t, err)
	assert.Equal(t, "romain", profile.Username)
	assert.True(t, profile.IsAdmin())
}

func TestSiteProfile_CreateAndUpdate(t *testing.T) {
	_, client := newFakeREST(t)
	store := NewStore(client)

	global, err := store.InsertGlobalUser(models.GlobalUser{AuthUserID: "auth-1", Username: "romain", Email: "r@example.com"})
	require.NoError(t, err)

	site, err := store.InsertSiteProfile(models.SiteUserProfile{GlobalUserID: global.ID, SiteName: "romainflg"})
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(site.SiteSpecificData))

	updated, err := store.UpdateSiteProfile(site.ID, map[string]interface{}{"description": "Builder of chess variants"})
	require.NoError(t, err)
	assert.Equal(t, "Builder of chess variants", updated.Description)

	fetched, err := store.GetSiteProfile(global.ID, "romainflg")
	require.NoError(t, err)
	assert.Equal(t, site.ID, fetched.ID)

	_, err = store.GetSiteProfile(global.ID, "other-site")
	assert.True(t, errors.Is(err, ErrRecordNotFound))
}
