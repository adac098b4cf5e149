package handlers

import (
	"net/http"

	"dialdesk/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// MessagingHandler handles outbound SMS and call dispatch
type MessagingHandler struct {
	dispatcher *services.Dispatcher
}

// NewMessagingHandler creates a new messaging handler
func NewMessagingHandler(dispatcher *services.Dispatcher) *MessagingHandler {
	return &MessagingHandler{dispatcher: dispatcher}
}

// SendSMSRequest represents an outbound SMS request
type SendSMSRequest struct {
	ContactID uuid.UUID `json:"contact_id" validate:"required"`
	Text      string    `json:"text" validate:"required,max=1600"`
}

// SendSMS godoc
// @Summary Send an SMS
// @Description Send an outbound SMS from the agent's assigned number to a contact
// @Tags messaging
// @Accept json
// @Produce json
// @Param request body SendSMSRequest true "Message to send"
// @Success 201 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /messages/sms [post]
// @Security BearerAuth
func (h *MessagingHandler) SendSMS(c echo.Context) error {
	var req SendSMSRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	agentID, ok := c.Get("user_id").(uuid.UUID)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "user_id not found in context"})
	}

	interactionID, err := h.dispatcher.SendSMS(c.Request().Context(), agentID, req.ContactID, req.Text)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]string{"interaction_id": interactionID.String()})
}

// InitiateCallRequest represents an outbound call request
type InitiateCallRequest struct {
	ContactID uuid.UUID `json:"contact_id" validate:"required"`
}

// InitiateCall godoc
// @Summary Start an outbound call
// @Description Place a call from the agent's assigned number to a contact
// @Tags messaging
// @Accept json
// @Produce json
// @Param request body InitiateCallRequest true "Contact to call"
// @Success 201 {object} services.CallDispatchResult
// @Failure 409 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /calls [post]
// @Security BearerAuth
func (h *MessagingHandler) InitiateCall(c echo.Context) error {
	var req InitiateCallRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	agentID, ok := c.Get("user_id").(uuid.UUID)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "user_id not found in context"})
	}

	result, err := h.dispatcher.InitiateCall(c.Request().Context(), agentID, req.ContactID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, result)
}
