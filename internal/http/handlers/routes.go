package handlers

import (
	"dialdesk/internal/app"
	"dialdesk/internal/http/middleware"

	"github.com/labstack/echo/v4"
)

// SetupRoutes sets up all API routes
func SetupRoutes(api *echo.Group, services *app.Services) {
	// WebSocket handler doubles as the dashboard notifier for inbound events
	wsHandler := NewWebSocketHandler(services.AuthService)
	services.WebhookHandler.SetNotifier(wsHandler)

	// Auth routes (no authentication required)
	authHandler := NewAuthHandler(services.AuthService)
	auth := api.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.RefreshToken)

	// WebSocket endpoint (handles authentication manually via query parameter)
	api.GET("/ws", wsHandler.HandleWebSocket)

	// Protected routes (require authentication)
	protected := api.Group("")
	protected.Use(middleware.JWTAuth(services.AuthService))

	// Number registry
	numberHandler := NewNumberHandler(services.NumberService)
	numbers := protected.Group("/numbers")
	numbers.GET("", numberHandler.List)
	numbers.GET("/available", numberHandler.ListAvailable)
	numbers.GET("/search", numberHandler.Search, middleware.CompanyAdminOrAbove())
	numbers.POST("/purchase", numberHandler.Purchase, middleware.CompanyAdminOrAbove())
	numbers.GET("/:id", numberHandler.GetByID)
	numbers.POST("/:id/assign", numberHandler.Assign, middleware.CompanyAdminOrAbove())
	numbers.POST("/:id/unassign", numberHandler.Unassign, middleware.CompanyAdminOrAbove())

	// Outbound messaging and calls (any authenticated agent)
	messagingHandler := NewMessagingHandler(services.Dispatcher)
	protected.POST("/messages/sms", messagingHandler.SendSMS)
	protected.POST("/calls", messagingHandler.InitiateCall)

	// Interaction log
	interactionHandler := NewInteractionHandler(services.InteractionRepo)
	protected.GET("/interactions", interactionHandler.List)
	protected.GET("/contacts/:id/interactions", interactionHandler.ListByContact)
}
