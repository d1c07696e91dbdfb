package main

import (
	"github.com/spf13/cobra"

	"github.com/romainfalanga/Romainflg/internal/migrations"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back the database schema (needs DATABASE_URL)",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRunner(func(r *migrations.Runner) error { return r.Up() })
		},
	}, &cobra.Command{
		Use:   "down",
		Short: "Roll back every migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRunner(func(r *migrations.Runner) error { return r.Down() })
		},
	})
	return cmd
}

func withRunner(fn func(r *migrations.Runner) error) (err error) {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	runner, err := migrations.New(cfg.DatabaseURL, logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := runner.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	return fn(runner)
}
