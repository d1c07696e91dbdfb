package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/romainfalanga/Romainflg/models"
)

var (
	// ErrNotFound is returned when no project matches the requested id or slug.
	ErrNotFound = errors.New("project not found")
	// ErrSlugTaken is returned when a slug is already used by another project.
	ErrSlugTaken = errors.New("project slug already taken")
	// ErrInvalidSlug is returned for a slug that is empty or not in Slugify form.
	ErrInvalidSlug = errors.New("project slug must be lowercase letters, digits and single dashes")
	// ErrTooManyRoles is returned when a project carries more than models.MaxRoleSlots slots.
	ErrTooManyRoles = fmt.Errorf("a project has at most %d role slots", models.MaxRoleSlots)
)

// ProjectInput holds the fields of a new project.
type ProjectInput struct {
	Name            string            `json:"name" validate:"required"`
	Slug            string            `json:"slug,omitempty"`
	Description     string            `json:"description" validate:"required"`
	FullDescription string            `json:"full_description,omitempty"`
	WebsiteURL      string            `json:"website_url,omitempty" validate:"omitempty,url"`
	FundingURL      string            `json:"funding_url,omitempty" validate:"omitempty,url"`
	TelegramURL     string            `json:"telegram_url,omitempty" validate:"omitempty,url"`
	Image           string            `json:"image,omitempty"`
	Roles           []models.RoleSlot `json:"roles,omitempty" validate:"max=3,dive"`
}

// ProjectPatch lists the fields to change on a project. Nil fields are left untouched.
type ProjectPatch struct {
	Name            *string            `json:"name,omitempty" validate:"omitempty,min=1"`
	Slug            *string            `json:"slug,omitempty"`
	Description     *string            `json:"description,omitempty"`
	FullDescription *string            `json:"full_description,omitempty"`
	WebsiteURL      *string            `json:"website_url,omitempty" validate:"omitempty,url"`
	FundingURL      *string            `json:"funding_url,omitempty" validate:"omitempty,url"`
	TelegramURL     *string            `json:"telegram_url,omitempty" validate:"omitempty,url"`
	Image           *string            `json:"image,omitempty"`
	Roles           *[]models.RoleSlot `json:"roles,omitempty"`
}

type catalogFile struct {
	Projects []models.Project `yaml:"projects"`
}

// Store is the project catalog, kept in memory and mirrored to a YAML file.
type Store struct {
	mu       sync.RWMutex
	path     string
	projects []models.Project
	logger   *logrus.Logger
}

// Open loads the catalog at path, seeding it with DefaultProjects when the file does not exist.
func Open(path string, logger *logrus.Logger) (*Store, error) {
	s := &Store{path: path, logger: logger}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		logger.WithField("path", path).Info("Catalog file not found, seeding default projects")
		s.projects = DefaultProjects()
		if err := s.persist(); err != nil {
			return nil, err
		}
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}
	s.projects = file.Projects
	logger.WithFields(logrus.Fields{"path": path, "projects": len(s.projects)}).Info("Catalog loaded")
	return s, nil
}

// List returns a copy of every project in display order.
func (s *Store) List() []models.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Project, len(s.projects))
	for i, p := range s.projects {
		out[i] = clone(p)
	}
	return out
}

// Get returns the project with the given id.
func (s *Store) Get(id string) (models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Project{}, ErrNotFound
	}
	return clone(s.projects[i]), nil
}

// GetBySlug returns the project with the given slug.
func (s *Store) GetBySlug(slug string) (models.Project, error) {
	if slug == "" {
		return models.Project{}, ErrNotFound
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.projects {
		if p.Slug == slug {
			return clone(p), nil
		}
	}
	return models.Project{}, ErrNotFound
}

// Add creates a project at the head of the catalog.
func (s *Store) Add(in ProjectInput) (models.Project, error) {
	if len(in.Roles) > models.MaxRoleSlots {
		return models.Project{}, ErrTooManyRoles
	}
	if in.Slug != "" && !ValidSlug(in.Slug) {
		return models.Project{}, fmt.Errorf("%w: %q", ErrInvalidSlug, in.Slug)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New().String()
	slug := in.Slug
	if slug == "" {
		slug = Slugify(in.Name)
	}
	if slug == "" {
		slug = id
	}
	if s.slugUsed(slug, "") {
		return models.Project{}, fmt.Errorf("%w: %s", ErrSlugTaken, slug)
	}

	p := models.Project{
		ID:              id,
		Slug:            slug,
		Name:            in.Name,
		Description:     in.Description,
		FullDescription: in.FullDescription,
		WebsiteURL:      in.WebsiteURL,
		FundingURL:      in.FundingURL,
		TelegramURL:     in.TelegramURL,
		Image:           in.Image,
		Roles:           append([]models.RoleSlot{}, in.Roles...),
	}

	prev := s.projects
	s.projects = append([]models.Project{p}, s.projects...)
	if err := s.persist(); err != nil {
		s.projects = prev
		return models.Project{}, err
	}
	return clone(p), nil
}

// Update applies patch to the project id.
func (s *Store) Update(id string, patch ProjectPatch) (models.Project, error) {
	if patch.Roles != nil && len(*patch.Roles) > models.MaxRoleSlots {
		return models.Project{}, ErrTooManyRoles
	}
	if patch.Slug != nil && !ValidSlug(*patch.Slug) {
		return models.Project{}, fmt.Errorf("%w: %q", ErrInvalidSlug, *patch.Slug)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Project{}, ErrNotFound
	}

	p := clone(s.projects[i])
	if patch.Slug != nil && *patch.Slug != p.Slug {
		if s.slugUsed(*patch.Slug, id) {
			return models.Project{}, fmt.Errorf("%w: %s", ErrSlugTaken, *patch.Slug)
		}
		p.Slug = *patch.Slug
	}
	setIf(&p.Name, patch.Name)
	setIf(&p.Description, patch.Description)
	setIf(&p.FullDescription, patch.FullDescription)
	setIf(&p.WebsiteURL, patch.WebsiteURL)
	setIf(&p.FundingURL, patch.FundingURL)
	setIf(&p.TelegramURL, patch.TelegramURL)
	setIf(&p.Image, patch.Image)
	if patch.Roles != nil {
		p.Roles = append([]models.RoleSlot{}, (*patch.Roles)...)
	}

	prev := s.projects[i]
	s.projects[i] = p
	if err := s.persist(); err != nil {
		s.projects[i] = prev
		return models.Project{}, err
	}
	return clone(p), nil
}

// Delete removes the project id.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}

	prev := s.projects
	next := make([]models.Project, 0, len(s.projects)-1)
	next = append(next, s.projects[:i]...)
	next = append(next, s.projects[i+1:]...)
	s.projects = next
	if err := s.persist(); err != nil {
		s.projects = prev
		return err
	}
	return nil
}

// Reset replaces the catalog with DefaultProjects.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.projects
	s.projects = DefaultProjects()
	if err := s.persist(); err != nil {
		s.projects = prev
		return err
	}
	return nil
}

// persist writes the whole catalog. Callers hold the write lock.
func (s *Store) persist() error {
	data, err := yaml.Marshal(catalogFile{Projects: s.projects})
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create catalog directory: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace catalog: %w", err)
	}
	return nil
}

func (s *Store) indexOf(id string) int {
	for i, p := range s.projects {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) slugUsed(slug, exceptID string) bool {
	for _, p := range s.projects {
		if p.Slug == slug && p.ID != exceptID {
			return true
		}
	}
	return false
}

func clone(p models.Project) models.Project {
	p.Roles = append(make([]models.RoleSlot, 0, len(p.Roles)), p.Roles...)
	return p
}

func setIf(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// Slugify turns a project name into a URL-safe slug: "Chess 13" becomes "chess-13".
func Slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// ValidSlug reports whether slug is non-empty and already in Slugify form.
func ValidSlug(slug string) bool {
	return slug != "" && Slugify(slug) == slug
}
