package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
	fiberSwagger "github.com/swaggo/fiber-swagger"

	"github.com/romainfalanga/Romainflg/config"
	_ "github.com/romainfalanga/Romainflg/docs"
	"github.com/romainfalanga/Romainflg/handlers"
	"github.com/romainfalanga/Romainflg/internal/auth"
	"github.com/romainfalanga/Romainflg/internal/catalog"
	"github.com/romainfalanga/Romainflg/internal/db"
	"github.com/romainfalanga/Romainflg/internal/intake"
	"github.com/romainfalanga/Romainflg/internal/mailer"
	"github.com/romainfalanga/Romainflg/internal/profile"
	"github.com/romainfalanga/Romainflg/internal/review"
	"github.com/romainfalanga/Romainflg/internal/worker"
	"github.com/romainfalanga/Romainflg/middleware"
)

// Profile photos go up to 5MB; leave room for the multipart envelope.
const bodyLimit = 6 * 1024 * 1024

func newServeCmd() *cobra.Command {
	var port, catalogPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Port = port
			}
			if catalogPath != "" {
				cfg.CatalogPath = catalogPath
			}

			projects, err := catalog.Open(cfg.CatalogPath, logger)
			if err != nil {
				return err
			}

			dispatcher := worker.NewDispatcher(cfg.Workers, cfg.QueueSize, logger)
			dispatcher.Run()

			var sender mailer.Sender = &mailer.LogSender{Logger: logger}
			if cfg.ResendAPIKey != "" {
				sender = mailer.NewResendSender(cfg.ResendAPIKey)
			}

			metrics := middleware.NewMetrics()
			deps := handlers.Deps{
				Catalog:      projects,
				Metrics:      metrics,
				Logger:       logger,
				CookieSecure: cfg.CookieSecure,
			}

			clients, err := config.NewSupabaseClients(cfg, logger)
			if err != nil {
				// The catalog keeps working; backend routes answer 503 until this is fixed.
				logger.WithError(err).Warn("Supabase backend unavailable, starting in degraded mode")
				deps.BackendErr = err
			} else {
				store := db.NewStore(clients.Service)
				deps.Intake = intake.NewService(store, dispatcher, sender, intake.Options{
					NotifyTo:   cfg.NotifyTo,
					NotifyFrom: cfg.NotifyFrom,
				}, logger)
				deps.Auth = auth.NewService(auth.NewGoTrueProvider(clients.Public.Auth), store, auth.Options{
					JWTSecret:    cfg.SupabaseJWTSecret,
					IsAdminEmail: cfg.IsAdminEmail,
				}, logger)
				deps.Review = review.NewService(store, logger)
				deps.Profiles = profile.NewService(store,
					profile.NewSupabaseStorage(clients.Service.Storage, profile.PhotoBucket),
					cfg.SiteName, logger)
			}

			app := fiber.New(fiber.Config{
				AppName:   "romainflg-site",
				BodyLimit: bodyLimit,
			})
			app.Use(recover.New())
			app.Use(cors.New(cors.Config{
				AllowOrigins: "*",
				AllowHeaders: "Origin, Content-Type, Accept, Authorization",
			}))
			app.Use(middleware.RequestLogger(logger))
			app.Use(metrics.Handler())

			app.Get("/metrics", metrics.Expose())
			app.Get("/swagger/*", fiberSwagger.WrapHandler)

			stop := make(chan struct{})
			limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst, logger)
			limiter.StartCleanup(5*time.Minute, stop)

			handlers.NewSiteHandler(deps).Register(app, limiter.Handler())

			errCh := make(chan error, 1)
			go func() {
				logger.Infof("Starting site on port %s...", cfg.Port)
				errCh <- app.Listen(":" + cfg.Port)
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err = <-errCh:
				logger.WithError(err).Error("Server stopped")
			case sig := <-quit:
				logger.Infof("Received %s, shutting down...", sig)
				if shutdownErr := app.ShutdownWithTimeout(10 * time.Second); shutdownErr != nil {
					logger.WithError(shutdownErr).Error("Server shutdown failed")
				}
			}

			close(stop)
			// Let queued notification emails go out before exiting.
			dispatcher.Stop()
			return err
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "listen port (overrides SITE_PORT)")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "project catalog file (overrides SITE_CATALOG_PATH)")
	return cmd
}
