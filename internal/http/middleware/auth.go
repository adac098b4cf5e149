package middleware

import (
	"net/http"
	"strings"

	"dialdesk/internal/auth"
	"dialdesk/pkg/models"

	"github.com/labstack/echo/v4"
)

// JWTAuth middleware validates JWT tokens
func JWTAuth(authService *auth.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization header")
			}

			if !strings.HasPrefix(authHeader, "Bearer ") {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization header format")
			}

			tokenString := authHeader[7:]
			if tokenString == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing token")
			}

			claims, err := authService.ValidateToken(tokenString)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}
			if claims.Type != "access" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token type")
			}

			c.Set("claims", claims)
			c.Set("user_id", claims.UserID)
			c.Set("user_email", claims.Email)
			c.Set("user_role", claims.Role)

			if claims.CompanyID != nil {
				c.Set("company_id", *claims.CompanyID)
			}

			return next(c)
		}
	}
}

// RequireRole middleware ensures the user has one of the given roles
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userRole := c.Get("user_role")
			if userRole == nil {
				return echo.NewHTTPError(http.StatusForbidden, "User role not found")
			}

			roleStr := userRole.(string)
			for _, role := range roles {
				if roleStr == role {
					return next(c)
				}
			}

			return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
		}
	}
}

// SuperAdminOnly middleware ensures only super admins can access
func SuperAdminOnly() echo.MiddlewareFunc {
	return RequireRole(models.RoleSuperAdmin)
}

// CompanyAdminOrAbove middleware allows company_admin and super_admin
func CompanyAdminOrAbove() echo.MiddlewareFunc {
	return RequireRole(models.RoleSuperAdmin, models.RoleCompanyAdmin)
}

// RequireCompanyRole ensures the caller has company-level access.
// Super admins pass without company context; everyone else must carry
// a company id in their claims.
func RequireCompanyRole() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userRole := c.Get("user_role")
			if userRole == nil {
				return echo.NewHTTPError(http.StatusForbidden, "User role not found")
			}

			roleStr := userRole.(string)
			if roleStr != models.RoleSuperAdmin && roleStr != models.RoleCompanyAdmin && roleStr != models.RoleAgent {
				return echo.NewHTTPError(http.StatusForbidden, "Company access required")
			}

			if roleStr == models.RoleSuperAdmin {
				return next(c)
			}

			if c.Get("company_id") == nil {
				return echo.NewHTTPError(http.StatusForbidden, "Company context required")
			}

			return next(c)
		}
	}
}
