package handlers

import (
	"net/http"
	"strconv"

	"dialdesk/internal/repo"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// InteractionHandler serves the interaction log to dashboard views
type InteractionHandler struct {
	interactionRepo *repo.InteractionRepository
}

// NewInteractionHandler creates a new interaction handler
func NewInteractionHandler(interactionRepo *repo.InteractionRepository) *InteractionHandler {
	return &InteractionHandler{interactionRepo: interactionRepo}
}

// List godoc
// @Summary List interactions
// @Description Get the company's communication log, newest first
// @Tags interactions
// @Produce json
// @Param limit query int false "Limit" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} models.InteractionListResponse
// @Router /interactions [get]
// @Security BearerAuth
func (h *InteractionHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	if limit <= 0 {
		limit = 20
	}

	companyID, err := resolveCompanyID(c)
	if err != nil {
		return err
	}

	result, err := h.interactionRepo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

// ListByContact godoc
// @Summary List interactions with one contact
// @Tags interactions
// @Produce json
// @Param id path string true "Contact ID"
// @Param limit query int false "Limit" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} models.SwaggerInteraction
// @Router /contacts/{id}/interactions [get]
// @Security BearerAuth
func (h *InteractionHandler) ListByContact(c echo.Context) error {
	contactID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid contact ID"})
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	if limit <= 0 {
		limit = 50
	}

	companyID, err := resolveCompanyID(c)
	if err != nil {
		return err
	}

	interactions, err := h.interactionRepo.ListByContact(contactID, companyID, limit, offset)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, interactions)
}
