package handlers

import "github.com/gofiber/fiber/v2"

// Health godoc
// @Summary Health check
// @Description Reports whether the service runs and whether the hosted backend is configured.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *SiteHandler) Health(c *fiber.Ctx) error {
	if h.backendErr != nil {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "degraded",
			"message": h.backendErr.Error(),
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "ok",
		"message": "Site API is healthy",
	})
}
