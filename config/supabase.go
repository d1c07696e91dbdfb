package config

import (
	"fmt"

	"github.com/sirupsen/logrus"
	supa "github.com/supabase-community/supabase-go"
)

// Clients bundles the Supabase clients the site talks to.
type Clients struct {
	// Public is built with the anon key. Auth calls made on behalf of users go through it.
	Public *supa.Client
	// Service is built with the service key when one is configured. Writes that
	// must bypass row-level security (application intake) go through it.
	Service *supa.Client
}

// NewSupabaseClients initializes the Supabase clients from cfg.
func NewSupabaseClients(cfg *Config, logger *logrus.Logger) (*Clients, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	public, err := supa.NewClient(cfg.SupabaseURL, cfg.SupabaseAnonKey, nil)
	if err != nil {
		return nil, fmt.Errorf("error initializing Supabase client: %w", err)
	}

	if cfg.SupabaseServiceKey == "" {
		logger.Warn("SUPABASE_SERVICE_KEY not set, privileged writes will use the anon key")
		return &Clients{Public: public, Service: public}, nil
	}

	service, err := supa.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceKey, nil)
	if err != nil {
		return nil, fmt.Errorf("error initializing Supabase client with service key: %w", err)
	}

	logger.Info("Supabase clients initialized successfully.")
	return &Clients{Public: public, Service: service}, nil
}
