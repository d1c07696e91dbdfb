package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/romainfalanga/Romainflg/utils"
)

// RequireBackend answers 503 with configErr while the hosted backend is not configured.
func RequireBackend(configErr error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if configErr != nil {
			return utils.RespondWithError(c, fiber.StatusServiceUnavailable, configErr.Error())
		}
		return c.Next()
	}
}
