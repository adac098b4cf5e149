package handlers

import (
	"errors"
	"net/http"

	"dialdesk/internal/repo"
	"dialdesk/internal/services"
	"dialdesk/internal/telnyx"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// writeError maps domain errors to HTTP responses. Callers need to tell
// "nothing happened, retry" from "succeeded but bookkeeping degraded",
// so each error class gets its own code in the body.
func writeError(c echo.Context, err error) error {
	var sentErr *services.SentButNotLoggedError
	if errors.As(err, &sentErr) {
		// The provider side effect happened; 502 would read as full
		// failure and invite a duplicate send.
		return c.JSON(http.StatusOK, map[string]interface{}{
			"code":        "sent_but_not_logged",
			"error":       sentErr.Error(),
			"provider_id": sentErr.ProviderID,
		})
	}

	var providerErr *telnyx.ProviderError
	if errors.As(err, &providerErr) {
		return c.JSON(http.StatusBadGateway, map[string]interface{}{
			"code":   "provider_error",
			"error":  providerErr.Error(),
			"detail": providerErr.Detail,
		})
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"code": "not_found", "error": "resource not found"})
	case errors.Is(err, services.ErrForbidden):
		return c.JSON(http.StatusForbidden, map[string]string{"code": "forbidden", "error": err.Error()})
	case errors.Is(err, services.ErrNoOriginNumber):
		return c.JSON(http.StatusConflict, map[string]string{"code": "no_origin_number", "error": "agent has no outbound number; assign one from the number pool"})
	case errors.Is(err, services.ErrContactUnreachable):
		return c.JSON(http.StatusConflict, map[string]string{"code": "contact_unreachable", "error": err.Error()})
	case errors.Is(err, repo.ErrDuplicateNumber):
		return c.JSON(http.StatusConflict, map[string]string{"code": "duplicate_number", "error": err.Error()})
	case errors.Is(err, repo.ErrNumberConflict):
		return c.JSON(http.StatusConflict, map[string]string{"code": "number_conflict", "error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{"code": "internal", "error": err.Error()})
	}
}
