package handlers

import (
	"net/http"
	"strconv"

	"dialdesk/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// NumberHandler handles phone number pool operations
type NumberHandler struct {
	numberService *services.NumberService
}

// NewNumberHandler creates a new number handler
func NewNumberHandler(numberService *services.NumberService) *NumberHandler {
	return &NumberHandler{numberService: numberService}
}

// List godoc
// @Summary List phone numbers
// @Description Get the company's purchased numbers with pagination
// @Tags numbers
// @Accept json
// @Produce json
// @Param limit query int false "Limit" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} models.PhoneNumberListResponse
// @Failure 500 {object} map[string]string
// @Router /numbers [get]
// @Security BearerAuth
func (h *NumberHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	if limit <= 0 {
		limit = 20
	}

	companyID, err := resolveCompanyID(c)
	if err != nil {
		return err
	}

	result, err := h.numberService.ListByCompany(companyID, limit, offset)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

// ListAvailable godoc
// @Summary List available phone numbers
// @Description Get the company's unassigned numbers, newest purchase first
// @Tags numbers
// @Produce json
// @Success 200 {array} models.SwaggerPhoneNumber
// @Router /numbers/available [get]
// @Security BearerAuth
func (h *NumberHandler) ListAvailable(c echo.Context) error {
	companyID, err := resolveCompanyID(c)
	if err != nil {
		return err
	}

	numbers, err := h.numberService.ListAvailable(companyID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, numbers)
}

// GetByID godoc
// @Summary Get phone number by ID
// @Tags numbers
// @Produce json
// @Param id path string true "Phone number ID"
// @Success 200 {object} models.SwaggerPhoneNumber
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /numbers/{id} [get]
// @Security BearerAuth
func (h *NumberHandler) GetByID(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid number ID"})
	}

	number, err := h.numberService.Get(id, callerScope(c))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, number)
}

// Search godoc
// @Summary Search purchasable numbers
// @Description Query the provider's inventory for an area code
// @Tags numbers
// @Produce json
// @Param area_code query string true "Area code"
// @Success 200 {array} telnyx.AvailableNumber
// @Failure 502 {object} map[string]string
// @Router /numbers/search [get]
// @Security BearerAuth
func (h *NumberHandler) Search(c echo.Context) error {
	areaCode := c.QueryParam("area_code")
	if areaCode == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "area_code is required"})
	}

	numbers, err := h.numberService.SearchAvailable(c.Request().Context(), areaCode)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, numbers)
}

// PurchaseRequest represents a number purchase request
type PurchaseRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required"`
	AreaCode    string `json:"area_code"`
}

// Purchase godoc
// @Summary Purchase a phone number
// @Description Buy a number from the provider and register it for the company
// @Tags numbers
// @Accept json
// @Produce json
// @Param request body PurchaseRequest true "Number to purchase"
// @Success 201 {object} models.SwaggerPhoneNumber
// @Failure 409 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /numbers/purchase [post]
// @Security BearerAuth
func (h *NumberHandler) Purchase(c echo.Context) error {
	var req PurchaseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	companyID, err := resolveCompanyID(c)
	if err != nil {
		return err
	}

	number, err := h.numberService.Purchase(c.Request().Context(), companyID, req.PhoneNumber, req.AreaCode)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, number)
}

// AssignRequest represents a number assignment request
type AssignRequest struct {
	AgentID uuid.UUID `json:"agent_id" validate:"required"`
}

// Assign godoc
// @Summary Assign a number to an agent
// @Description Give an agent exclusive use of a number for outbound traffic
// @Tags numbers
// @Accept json
// @Produce json
// @Param id path string true "Phone number ID"
// @Param request body AssignRequest true "Agent to assign"
// @Success 200 {object} models.SwaggerPhoneNumber
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /numbers/{id}/assign [post]
// @Security BearerAuth
func (h *NumberHandler) Assign(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid number ID"})
	}

	var req AssignRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	if req.AgentID == uuid.Nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "agent_id is required"})
	}

	number, err := h.numberService.Assign(id, req.AgentID, callerScope(c))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, number)
}

// Unassign godoc
// @Summary Unassign a number
// @Description Return a number to the company's available pool
// @Tags numbers
// @Produce json
// @Param id path string true "Phone number ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /numbers/{id}/unassign [post]
// @Security BearerAuth
func (h *NumberHandler) Unassign(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid number ID"})
	}

	if err := h.numberService.Unassign(id, callerScope(c)); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "unassigned"})
}
