package models

// OpenPosition is the occupant name of a role slot nobody holds yet.
const OpenPosition = "Recherche active"

// MaxRoleSlots bounds the number of team slots a project may carry.
const MaxRoleSlots = 3

// RoleSlot is a named position on a project team.
type RoleSlot struct {
	Position   string  `json:"position" yaml:"position" validate:"required"`
	Name       string  `json:"name" yaml:"name"`
	Email      string  `json:"email,omitempty" yaml:"email,omitempty" validate:"omitempty,email"`
	Social     string  `json:"social,omitempty" yaml:"social,omitempty"`
	Percentage float64 `json:"percentage" yaml:"percentage" validate:"gte=0,lte=100"`
}

// IsOpen reports whether the slot is still looking for someone.
func (r RoleSlot) IsOpen() bool {
	return r.Name == "" || r.Name == OpenPosition
}

// Project represents a showcased side project in the catalog.
type Project struct {
	ID              string     `json:"id" yaml:"id"`
	Slug            string     `json:"slug" yaml:"slug"`
	Name            string     `json:"name" yaml:"name"`
	Description     string     `json:"description" yaml:"description"`
	FullDescription string     `json:"full_description,omitempty" yaml:"full_description,omitempty"`
	WebsiteURL      string     `json:"website_url,omitempty" yaml:"website_url,omitempty"`
	FundingURL      string     `json:"funding_url,omitempty" yaml:"funding_url,omitempty"`
	TelegramURL     string     `json:"telegram_url,omitempty" yaml:"telegram_url,omitempty"`
	Image           string     `json:"image,omitempty" yaml:"image,omitempty"`
	Roles           []RoleSlot `json:"roles" yaml:"roles"`
}
