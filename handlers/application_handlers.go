package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/romainfalanga/Romainflg/internal/intake"
	"github.com/romainfalanga/Romainflg/internal/review"
	"github.com/romainfalanga/Romainflg/middleware"
	"github.com/romainfalanga/Romainflg/utils"
)

// SubmissionDebug reports what happened beyond storage.
type SubmissionDebug struct {
	StoredInDatabase bool   `json:"stored_in_database"`
	EmailPrepared    bool   `json:"email_prepared"`
	EmailQueued      bool   `json:"email_queued"`
	Note             string `json:"note,omitempty"`
}

// SubmissionResponse is the success envelope of the intake endpoint.
type SubmissionResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Debug   SubmissionDebug `json:"debug"`
}

// SubmissionFailure is the failure envelope of the intake endpoint.
type SubmissionFailure struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// SubmitApplication godoc
// @Summary Submit an application
// @Description Stores a candidate application for a project role and queues the owner notification.
// @Tags applications
// @Accept json
// @Produce json
// @Param application body intake.Submission true "Application"
// @Success 200 {object} SubmissionResponse
// @Failure 400 {object} SubmissionFailure "Invalid payload"
// @Failure 500 {object} SubmissionFailure "Could not store the application"
// @Router /functions/send-application-email [post]
// @Router /api/v1/applications [post]
func (h *SiteHandler) SubmitApplication(c *fiber.Ctx) error {
	var sub intake.Submission
	if err := c.BodyParser(&sub); err != nil {
		h.metrics.ObserveApplication("invalid")
		return c.Status(fiber.StatusBadRequest).JSON(SubmissionFailure{
			Error: fmt.Sprintf("Cannot parse JSON: %v", err),
		})
	}

	result, err := h.intake.Submit(c.UserContext(), sub)
	if errors.Is(err, intake.ErrInvalidSubmission) {
		h.metrics.ObserveApplication("invalid")
		return c.Status(fiber.StatusBadRequest).JSON(SubmissionFailure{
			Error: strings.Join(utils.FormatValidationErrors(err), ", "),
		})
	}
	if err != nil {
		h.metrics.ObserveApplication("failed")
		h.logger.WithError(err).WithField("request_id", c.Locals(middleware.RequestIDKey)).Error("Error processing application")
		return c.Status(fiber.StatusInternalServerError).JSON(SubmissionFailure{Error: err.Error()})
	}

	h.metrics.ObserveApplication("stored")
	return c.Status(fiber.StatusOK).JSON(SubmissionResponse{
		Success: true,
		Message: "Application submitted and stored successfully",
		Debug: SubmissionDebug{
			StoredInDatabase: true,
			EmailPrepared:    result.EmailPrepared,
			EmailQueued:      result.EmailQueued,
			Note:             result.Note,
		},
	})
}

// ListApplications godoc
// @Summary List applications
// @Description Lists every application, newest first. Administrators only.
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 502 {object} map[string]interface{} "Fetch failed; data is empty"
// @Router /api/v1/admin/applications [get]
// @Router /admin/applications [get]
func (h *SiteHandler) ListApplications(c *fiber.Ctx) error {
	entries, err := h.review.List(middleware.SessionFrom(c))
	if err != nil {
		if status, ok := reviewAccessStatus(err); ok {
			return utils.RespondWithError(c, status, err.Error())
		}
		return utils.RespondWithErrorData(c, fiber.StatusBadGateway,
			fmt.Sprintf("could not load applications: %v", err), []review.Entry{})
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, entries)
}

// GetApplication godoc
// @Summary Get an application
// @Description Returns one application with a pre-filled reply link. Administrators only.
// @Tags admin
// @Produce json
// @Param id path string true "Application ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/admin/applications/{id} [get]
func (h *SiteHandler) GetApplication(c *fiber.Ctx) error {
	entry, err := h.review.Get(middleware.SessionFrom(c), utils.SanitizeInput(c.Params("id")))
	if err != nil {
		if status, ok := reviewAccessStatus(err); ok {
			return utils.RespondWithError(c, status, err.Error())
		}
		if errors.Is(err, review.ErrNotFound) {
			return utils.RespondWithError(c, fiber.StatusNotFound, err.Error())
		}
		h.logger.WithError(err).WithFields(logrus.Fields{"application_id": c.Params("id")}).Error("Failed to load application")
		return utils.RespondWithError(c, fiber.StatusBadGateway, fmt.Sprintf("could not load application: %v", err))
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, entry)
}

func reviewAccessStatus(err error) (int, bool) {
	switch {
	case errors.Is(err, review.ErrUnauthenticated):
		return fiber.StatusUnauthorized, true
	case errors.Is(err, review.ErrForbidden):
		return fiber.StatusForbidden, true
	}
	return 0, false
}
