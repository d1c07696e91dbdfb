package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/romainfalanga/Romainflg/internal/catalog"
	"github.com/romainfalanga/Romainflg/models"
	"github.com/romainfalanga/Romainflg/utils"
)

// ProjectSuccessResponse defines the structure for a successful response for a single project.
type ProjectSuccessResponse struct {
	Status  string         `json:"status"`
	Message string         `json:"message"`
	Data    models.Project `json:"data"`
}

// ProjectListSuccessResponse defines the structure for a successful response when listing projects.
type ProjectListSuccessResponse struct {
	Status  string           `json:"status"`
	Message string           `json:"message"`
	Data    []models.Project `json:"data"`
}

// ErrorResponse defines a common structure for error responses.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ListProjects godoc
// @Summary List projects
// @Description Lists every showcased project with its team slots.
// @Tags projects
// @Produce json
// @Success 200 {object} ProjectListSuccessResponse
// @Router /api/v1/projects [get]
func (h *SiteHandler) ListProjects(c *fiber.Ctx) error {
	projects := h.catalog.List()
	return c.Status(fiber.StatusOK).JSON(ProjectListSuccessResponse{
		Status:  "success",
		Message: "Projects retrieved successfully",
		Data:    projects,
	})
}

// GetProject godoc
// @Summary Get a project
// @Description Returns the project page data for a slug.
// @Tags projects
// @Produce json
// @Param slug path string true "Project slug"
// @Success 200 {object} ProjectSuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/projects/{slug} [get]
func (h *SiteHandler) GetProject(c *fiber.Ctx) error {
	slug := utils.SanitizeInput(c.Params("slug"))
	project, err := h.catalog.GetBySlug(slug)
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusNotFound, fmt.Sprintf("Project %s not found", slug))
	}
	return c.Status(fiber.StatusOK).JSON(ProjectSuccessResponse{
		Status:  "success",
		Message: "Project retrieved successfully",
		Data:    project,
	})
}

// CreateProject godoc
// @Summary Create a new project
// @Description Adds a project to the catalog. Administrators only.
// @Tags projects
// @Accept json
// @Produce json
// @Param project body catalog.ProjectInput true "Project to create"
// @Success 201 {object} ProjectSuccessResponse "Project created successfully"
// @Failure 400 {object} ErrorResponse "Bad request if input is invalid (e.g., missing name)"
// @Failure 409 {object} ErrorResponse "Slug already used"
// @Router /api/v1/projects [post]
func (h *SiteHandler) CreateProject(c *fiber.Ctx) error {
	var in catalog.ProjectInput
	if err := c.BodyParser(&in); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse project JSON: %v", err))
	}
	in.Name = utils.SanitizeInput(in.Name)
	in.Slug = utils.SanitizeInput(in.Slug)

	if err := h.validate.Struct(in); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, strings.Join(utils.FormatValidationErrors(err), ", "))
	}

	project, err := h.catalog.Add(in)
	if err != nil {
		return h.respondCatalogError(c, err)
	}

	h.logger.WithFields(logrus.Fields{"project_id": project.ID, "slug": project.Slug}).Info("Project created")
	return c.Status(fiber.StatusCreated).JSON(ProjectSuccessResponse{
		Status:  "success",
		Message: "Project created successfully",
		Data:    project,
	})
}

// UpdateProject godoc
// @Summary Update a project
// @Description Changes the provided fields of a project. Administrators only.
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param project body catalog.ProjectPatch true "Fields to change"
// @Success 200 {object} ProjectSuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/projects/{id} [patch]
func (h *SiteHandler) UpdateProject(c *fiber.Ctx) error {
	id := c.Params("id")

	var patch catalog.ProjectPatch
	if err := c.BodyParser(&patch); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse project JSON: %v", err))
	}
	if err := h.validate.Struct(patch); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, strings.Join(utils.FormatValidationErrors(err), ", "))
	}
	if patch.Roles != nil {
		for _, role := range *patch.Roles {
			if err := h.validate.Struct(role); err != nil {
				return utils.RespondWithError(c, fiber.StatusBadRequest, strings.Join(utils.FormatValidationErrors(err), ", "))
			}
		}
	}

	project, err := h.catalog.Update(id, patch)
	if err != nil {
		return h.respondCatalogError(c, err)
	}

	h.logger.WithField("project_id", id).Info("Project updated")
	return c.Status(fiber.StatusOK).JSON(ProjectSuccessResponse{
		Status:  "success",
		Message: "Project updated successfully",
		Data:    project,
	})
}

// DeleteProject godoc
// @Summary Delete a project
// @Description Removes a project from the catalog. Administrators only.
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} ErrorResponse "status is success"
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/projects/{id} [delete]
func (h *SiteHandler) DeleteProject(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.catalog.Delete(id); err != nil {
		return h.respondCatalogError(c, err)
	}

	h.logger.WithField("project_id", id).Info("Project deleted")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": fmt.Sprintf("Project %s deleted successfully", id),
	})
}

func (h *SiteHandler) respondCatalogError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return utils.RespondWithError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, catalog.ErrSlugTaken):
		return utils.RespondWithError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, catalog.ErrTooManyRoles), errors.Is(err, catalog.ErrInvalidSlug):
		return utils.RespondWithError(c, fiber.StatusBadRequest, err.Error())
	}
	h.logger.WithError(err).Error("Catalog update failed")
	return utils.RespondWithError(c, fiber.StatusInternalServerError, fmt.Sprintf("Could not save the catalog: %v", err))
}
