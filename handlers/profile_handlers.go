package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/romainfalanga/Romainflg/internal/profile"
	"github.com/romainfalanga/Romainflg/middleware"
	"github.com/romainfalanga/Romainflg/utils"
)

// UpdateProfileRequest holds the profile fields a person may change.
// Global fields are shared across sites, the others belong to this site only.
type UpdateProfileRequest struct {
	Username         *string         `json:"username,omitempty" validate:"omitempty,min=1,max=50"`
	ProfilePhotoURL  *string         `json:"profile_photo_url,omitempty" validate:"omitempty,url"`
	Description      *string         `json:"description,omitempty" validate:"omitempty,max=2000"`
	SiteSpecificData json.RawMessage `json:"site_specific_data,omitempty" swaggertype:"object"`
}

// GetProfile godoc
// @Summary Get own profile
// @Description Returns the global and site profile of the signed-in person, creating them on first visit.
// @Tags profile
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/profile [get]
func (h *SiteHandler) GetProfile(c *fiber.Ctx) error {
	view, err := h.profiles.Load(middleware.SessionFrom(c))
	if err != nil {
		h.logger.WithError(err).Error("Failed to load profile")
		return utils.RespondWithError(c, fiber.StatusBadGateway, fmt.Sprintf("could not load profile: %v", err))
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, view)
}

// UpdateProfile godoc
// @Summary Update own profile
// @Description Changes username, photo URL, description or site data of the signed-in person.
// @Tags profile
// @Accept json
// @Produce json
// @Param profile body UpdateProfileRequest true "Fields to change"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/profile [patch]
func (h *SiteHandler) UpdateProfile(c *fiber.Ctx) error {
	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse JSON: %v", err))
	}
	if err := h.validate.Struct(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, strings.Join(utils.FormatValidationErrors(err), ", "))
	}

	viewer := middleware.SessionFrom(c)
	touched := false

	if req.Username != nil || req.ProfilePhotoURL != nil {
		if _, err := h.profiles.UpdateGlobal(viewer, profile.GlobalPatch{
			Username:        req.Username,
			ProfilePhotoURL: req.ProfilePhotoURL,
		}); err != nil {
			return h.respondProfileError(c, err)
		}
		touched = true
	}
	if req.Description != nil || len(req.SiteSpecificData) > 0 {
		if _, err := h.profiles.UpdateSite(viewer, profile.SitePatch{
			Description:      req.Description,
			SiteSpecificData: req.SiteSpecificData,
		}); err != nil {
			return h.respondProfileError(c, err)
		}
		touched = true
	}
	if !touched {
		return utils.RespondWithError(c, fiber.StatusBadRequest, profile.ErrEmptyUpdate.Error())
	}

	view, err := h.profiles.Load(viewer)
	if err != nil {
		return h.respondProfileError(c, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, view)
}

// UploadProfilePhoto godoc
// @Summary Upload profile photo
// @Description Stores an image (max 5MB) and makes it the profile photo.
// @Tags profile
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image file"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 413 {object} ErrorResponse
// @Router /api/v1/profile/photo [post]
func (h *SiteHandler) UploadProfilePhoto(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("File upload error: %v", err))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusInternalServerError, fmt.Sprintf("Failed to open uploaded file: %v", err))
	}
	defer file.Close()

	user, err := h.profiles.UploadPhoto(middleware.SessionFrom(c), profile.Photo{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get(fiber.HeaderContentType),
		Size:        fileHeader.Size,
		Data:        file,
	})
	if err != nil {
		return h.respondProfileError(c, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, user)
}

func (h *SiteHandler) respondProfileError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, profile.ErrNotImage), errors.Is(err, profile.ErrEmptyUpdate), errors.Is(err, profile.ErrInvalidData):
		return utils.RespondWithError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, profile.ErrPhotoTooLarge):
		return utils.RespondWithError(c, fiber.StatusRequestEntityTooLarge, err.Error())
	}
	h.logger.WithError(err).Error("Profile update failed")
	return utils.RespondWithError(c, fiber.StatusBadGateway, fmt.Sprintf("could not update profile: %v", err))
}
