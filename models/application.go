package models

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Position is one of the roles candidates can apply for.
type Position string

const (
	PositionCOO Position = "COO"
	PositionCM  Position = "CM"
)

// Application mirrors a row of the applications table.
// ProjectName is denormalized; it is not a foreign key into the catalog.
type Application struct {
	ID            string    `json:"id,omitempty"`
	ProjectName   string    `json:"project_name"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Position      Position  `json:"position"`
	Telegram      string    `json:"telegram"`
	TikTok        *string   `json:"tiktok"`         // Nullable TEXT
	Motivation    string    `json:"motivation"`
	Creativity    *string   `json:"creativity"`     // Nullable TEXT
	UniverseModel *string   `json:"universe_model"` // Nullable TEXT
	CreatedAt     time.Time `json:"created_at,omitempty"`
}

// ReplySubject is the subject used when answering a candidate.
func (a Application) ReplySubject() string {
	return fmt.Sprintf("Re: Candidature %s - %s", a.Position, a.ProjectName)
}

// ReplyLink is a mailto link pre-filled to answer the candidate.
func (a Application) ReplyLink() string {
	// Mail clients expect %20 for spaces, not the form encoding "+".
	subject := strings.ReplaceAll(url.QueryEscape(a.ReplySubject()), "+", "%20")
	return "mailto:" + a.Email + "?subject=" + subject
}
