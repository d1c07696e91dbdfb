package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/romainfalanga/Romainflg/middleware"
)

// Register mounts every site route on app. limit guards the endpoints that
// accept anonymous writes; pass nil to disable rate limiting.
func (h *SiteHandler) Register(app *fiber.App, limit fiber.Handler) {
	if limit == nil {
		limit = func(c *fiber.Ctx) error { return c.Next() }
	}
	backend := middleware.RequireBackend(h.backendErr)
	requireSession := middleware.RequireSession()

	if h.auth != nil {
		app.Use(middleware.LoadSession(h.auth))
	}

	app.Get("/health", h.Health)

	// Path kept from the hosted edge function.
	app.Post("/functions/send-application-email", limit, backend, h.SubmitApplication)
	app.Get("/admin/applications", backend, requireSession, h.ListApplications)

	apiV1 := app.Group("/api/v1")

	apiV1.Post("/applications", limit, backend, h.SubmitApplication)

	// Project routes
	apiV1.Get("/projects", h.ListProjects)
	apiV1.Get("/projects/:slug", h.GetProject)
	apiV1.Post("/projects", backend, requireSession, middleware.RequireAdmin(), h.CreateProject)
	apiV1.Patch("/projects/:id", backend, requireSession, middleware.RequireAdmin(), h.UpdateProject)
	apiV1.Delete("/projects/:id", backend, requireSession, middleware.RequireAdmin(), h.DeleteProject)

	authRoutes := apiV1.Group("/auth", backend)
	authRoutes.Post("/signup", limit, h.SignUp)
	authRoutes.Post("/signin", limit, h.SignIn)
	authRoutes.Post("/signout", h.SignOut)
	authRoutes.Get("/session", h.CurrentSession)

	adminRoutes := apiV1.Group("/admin", backend, requireSession)
	adminRoutes.Get("/applications", h.ListApplications)
	adminRoutes.Get("/applications/:id", h.GetApplication)

	profileRoutes := apiV1.Group("/profile", backend, requireSession)
	profileRoutes.Get("", h.GetProfile)
	profileRoutes.Patch("", h.UpdateProfile)
	profileRoutes.Post("/photo", h.UploadProfilePhoto)
}
