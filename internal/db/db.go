package db

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	postgrest "github.com/supabase-community/postgrest-go"

	"github.com/romainfalanga/Romainflg/models"
)

// ErrRecordNotFound is returned when a lookup matches no row.
var ErrRecordNotFound = errors.New("record not found")

const (
	applicationsTable = "applications"
	userProfilesTable = "user_profiles"
	globalUsersTable  = "global_users"
	siteProfilesTable = "site_user_profiles"
)

// Querier is satisfied by both *supabase.Client and *postgrest.Client.
type Querier interface {
	From(table string) *postgrest.QueryBuilder
}

// Store reads and writes the hosted tables through PostgREST.
type Store struct {
	client Querier
}

// NewStore wraps client. Pass the service-key client when writes must bypass row-level security.
func NewStore(client Querier) *Store {
	return &Store{client: client}
}

// InsertApplication stores a new application row and returns it as persisted.
func (s *Store) InsertApplication(app models.Application) (*models.Application, error) {
	// id and created_at are left to the database defaults.
	record := map[string]interface{}{
		"project_name":   app.ProjectName,
		"name":           app.Name,
		"email":          app.Email,
		"position":       app.Position,
		"telegram":       app.Telegram,
		"tiktok":         app.TikTok,
		"motivation":     app.Motivation,
		"creativity":     app.Creativity,
		"universe_model": app.UniverseModel,
	}

	body, _, err := s.client.From(applicationsTable).
		Insert(record, false, "", "representation", "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to store application: %w", err)
	}

	created, err := decodeFirst[models.Application](body)
	if err != nil {
		return nil, fmt.Errorf("failed to store application: %w", err)
	}
	return created, nil
}

// ListApplications returns every application, newest first.
func (s *Store) ListApplications() ([]models.Application, error) {
	body, _, err := s.client.From(applicationsTable).
		Select("*", "", false).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch applications: %w", err)
	}

	var apps []models.Application
	if err := json.Unmarshal(body, &apps); err != nil {
		return nil, fmt.Errorf("failed to decode applications: %w", err)
	}
	if apps == nil {
		apps = []models.Application{}
	}
	return apps, nil
}

// GetApplication fetches a single application by id.
func (s *Store) GetApplication(id string) (*models.Application, error) {
	body, _, err := s.client.From(applicationsTable).
		Select("*", "", false).
		Eq("id", id).
		Limit(1, "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch application %s: %w", id, err)
	}
	return decodeFirst[models.Application](body)
}

// GetUserProfile fetches the role-carrying profile of an auth user.
func (s *Store) GetUserProfile(userID string) (*models.UserProfile, error) {
	body, _, err := s.client.From(userProfilesTable).
		Select("*", "", false).
		Eq("id", userID).
		Limit(1, "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile %s: %w", userID, err)
	}
	return decodeFirst[models.UserProfile](body)
}

// InsertUserProfile creates the profile row of an auth user.
func (s *Store) InsertUserProfile(profile models.UserProfile) (*models.UserProfile, error) {
	record := map[string]interface{}{
		"id":       profile.ID,
		"username": profile.Username,
		"role":     profile.Role,
	}
	body, _, err := s.client.From(userProfilesTable).
		Insert(record, false, "", "representation", "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to create profile %s: %w", profile.ID, err)
	}
	return decodeFirst[models.UserProfile](body)
}

// GetGlobalUser fetches the cross-site user row linked to an auth user.
func (s *Store) GetGlobalUser(authUserID string) (*models.GlobalUser, error) {
	body, _, err := s.client.From(globalUsersTable).
		Select("*", "", false).
		Eq("auth_user_id", authUserID).
		Limit(1, "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch global user for %s: %w", authUserID, err)
	}
	return decodeFirst[models.GlobalUser](body)
}

// InsertGlobalUser creates a cross-site user row.
func (s *Store) InsertGlobalUser(user models.GlobalUser) (*models.GlobalUser, error) {
	record := map[string]interface{}{
		"auth_user_id":      user.AuthUserID,
		"username":          user.Username,
		"email":             user.Email,
		"profile_photo_url": user.ProfilePhotoURL,
	}
	body, _, err := s.client.From(globalUsersTable).
		Insert(record, false, "", "representation", "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to create global user for %s: %w", user.AuthUserID, err)
	}
	return decodeFirst[models.GlobalUser](body)
}

// UpdateGlobalUser applies fields to the global user row id.
func (s *Store) UpdateGlobalUser(id string, fields map[string]interface{}) (*models.GlobalUser, error) {
	fields["updated_at"] = time.Now().UTC()

	body, _, err := s.client.From(globalUsersTable).
		Update(fields, "representation", "").
		Eq("id", id).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to update global user %s: %w", id, err)
	}
	return decodeFirst[models.GlobalUser](body)
}

// GetSiteProfile fetches the per-site profile of a global user.
func (s *Store) GetSiteProfile(globalUserID, siteName string) (*models.SiteUserProfile, error) {
	body, _, err := s.client.From(siteProfilesTable).
		Select("*", "", false).
		Eq("global_user_id", globalUserID).
		Eq("site_name", siteName).
		Limit(1, "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s profile for %s: %w", siteName, globalUserID, err)
	}
	return decodeFirst[models.SiteUserProfile](body)
}

// InsertSiteProfile creates a per-site profile row.
func (s *Store) InsertSiteProfile(profile models.SiteUserProfile) (*models.SiteUserProfile, error) {
	data := profile.SiteSpecificData
	if len(data) == 0 {
		data = json.RawMessage(`{}`)
	}
	record := map[string]interface{}{
		"global_user_id":     profile.GlobalUserID,
		"site_name":          profile.SiteName,
		"description":        profile.Description,
		"site_specific_data": data,
	}
	body, _, err := s.client.From(siteProfilesTable).
		Insert(record, false, "", "representation", "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to create %s profile for %s: %w", profile.SiteName, profile.GlobalUserID, err)
	}
	return decodeFirst[models.SiteUserProfile](body)
}

// UpdateSiteProfile applies fields to the site profile row id.
func (s *Store) UpdateSiteProfile(id string, fields map[string]interface{}) (*models.SiteUserProfile, error) {
	fields["updated_at"] = time.Now().UTC()

	body, _, err := s.client.From(siteProfilesTable).
		Update(fields, "representation", "").
		Eq("id", id).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to update site profile %s: %w", id, err)
	}
	return decodeFirst[models.SiteUserProfile](body)
}

// decodeFirst unmarshals a PostgREST array body and returns its first element.
func decodeFirst[T any](body []byte) (*T, error) {
	var rows []T
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("could not process response: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrRecordNotFound
	}
	return &rows[0], nil
}
