package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrMissingSupabaseConfig is returned when the hosted backend connection
// settings are absent or still hold placeholder values.
var ErrMissingSupabaseConfig = errors.New("missing Supabase configuration")

// Config holds everything the site reads from its environment.
type Config struct {
	SupabaseURL        string
	SupabaseAnonKey    string
	SupabaseServiceKey string
	SupabaseJWTSecret  string
	DatabaseURL        string

	Port         string
	LogLevel     string
	SiteName     string
	CatalogPath  string
	CookieSecure bool

	AdminEmails  []string
	NotifyTo     string
	NotifyFrom   string
	ResendAPIKey string

	RateLimit float64
	RateBurst int
	Workers   int
	QueueSize int
}

// Load reads configuration from the environment. When envFile is non-empty
// and exists, its variables are loaded first without overriding values that
// are already set.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()

	// The SPA used VITE_-prefixed names; accept them so an existing .env keeps working.
	_ = v.BindEnv("supabase_url", "SUPABASE_URL", "VITE_SUPABASE_URL")
	_ = v.BindEnv("supabase_anon_key", "SUPABASE_ANON_KEY", "VITE_SUPABASE_ANON_KEY")
	_ = v.BindEnv("supabase_service_key", "SUPABASE_SERVICE_KEY", "SUPABASE_SERVICE_ROLE_KEY")

	v.SetDefault("site_port", "8080")
	v.SetDefault("site_log_level", "info")
	v.SetDefault("site_name", "romainflg")
	v.SetDefault("site_catalog_path", "data/projects.yaml")
	v.SetDefault("site_cookie_secure", true)
	v.SetDefault("site_notify_to", "romainfalanga83@gmail.com")
	v.SetDefault("site_notify_from", "noreply@romainflg.com")
	v.SetDefault("site_rate_limit", 1.0)
	v.SetDefault("site_rate_burst", 5)
	v.SetDefault("site_workers", 2)
	v.SetDefault("site_queue_size", 64)

	cfg := &Config{
		SupabaseURL:        strings.TrimRight(strings.TrimSpace(v.GetString("supabase_url")), "/"),
		SupabaseAnonKey:    strings.TrimSpace(v.GetString("supabase_anon_key")),
		SupabaseServiceKey: strings.TrimSpace(v.GetString("supabase_service_key")),
		SupabaseJWTSecret:  strings.TrimSpace(v.GetString("supabase_jwt_secret")),
		DatabaseURL:        strings.TrimSpace(v.GetString("database_url")),
		Port:               v.GetString("site_port"),
		LogLevel:           v.GetString("site_log_level"),
		SiteName:           v.GetString("site_name"),
		CatalogPath:        v.GetString("site_catalog_path"),
		CookieSecure:       v.GetBool("site_cookie_secure"),
		AdminEmails:        splitList(v.GetString("site_admin_emails")),
		NotifyTo:           v.GetString("site_notify_to"),
		NotifyFrom:         v.GetString("site_notify_from"),
		ResendAPIKey:       strings.TrimSpace(v.GetString("site_resend_api_key")),
		RateLimit:          v.GetFloat64("site_rate_limit"),
		RateBurst:          v.GetInt("site_rate_burst"),
		Workers:            v.GetInt("site_workers"),
		QueueSize:          v.GetInt("site_queue_size"),
	}
	return cfg, nil
}

// Validate reports whether the Supabase connection settings are usable.
func (c *Config) Validate() error {
	var missing []string
	if c.SupabaseURL == "" || strings.Contains(c.SupabaseURL, "your-project") {
		missing = append(missing, "SUPABASE_URL")
	}
	if c.SupabaseAnonKey == "" || strings.Contains(c.SupabaseAnonKey, "your-anon-key") {
		missing = append(missing, "SUPABASE_ANON_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: set %s", ErrMissingSupabaseConfig, strings.Join(missing, " and "))
	}
	return nil
}

// IsAdminEmail reports whether email is on the admin allow-list.
func (c *Config) IsAdminEmail(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, admin := range c.AdminEmails {
		if admin == email {
			return true
		}
	}
	return false
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
