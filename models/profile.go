package models

import (
	"encoding/json"
	"time"
)

// Role is the privilege flag carried by a user profile.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// UserProfile maps to the user_profiles table. ID is the auth user id.
type UserProfile struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Role      Role       `json:"role"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// IsAdmin reports whether the profile holds the admin role.
func (p *UserProfile) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// GlobalUser maps to the global_users table shared by every site.
type GlobalUser struct {
	ID              string     `json:"id,omitempty"`
	AuthUserID      string     `json:"auth_user_id"`
	Username        string     `json:"username"`
	Email           string     `json:"email"`
	ProfilePhotoURL *string    `json:"profile_photo_url,omitempty"`
	CreatedAt       *time.Time `json:"created_at,omitempty"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}

// SiteUserProfile maps to the site_user_profiles table.
type SiteUserProfile struct {
	ID               string          `json:"id,omitempty"`
	GlobalUserID     string          `json:"global_user_id"`
	SiteName         string          `json:"site_name"`
	Description      string          `json:"description"`
	SiteSpecificData json.RawMessage `json:"site_specific_data,omitempty"` // JSONB
	CreatedAt        *time.Time      `json:"created_at,omitempty"`
	UpdatedAt        *time.Time      `json:"updated_at,omitempty"`
}
