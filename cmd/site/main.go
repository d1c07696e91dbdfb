package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/romainfalanga/Romainflg/config"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:           "site",
	Short:         "Romainflg project showcase and application intake service",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	rootCmd.AddCommand(newServeCmd(), newMigrateCmd(), newCatalogCmd())
}

// @title Romainflg Site API
// @version 1.0
// @description Project catalog, application intake, admin review and account endpoints of the romainflg site.
// @BasePath /
func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads the configuration and the logger shared by every command.
func setup() (*config.Config, *logrus.Logger, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, nil, err
	}
	return cfg, config.InitLogger(cfg.LogLevel), nil
}
