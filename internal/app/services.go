package app

import (
	"os"

	"dialdesk/internal/auth"
	"dialdesk/internal/repo"
	"dialdesk/internal/services"
	"dialdesk/internal/telnyx"
	"dialdesk/internal/webhook"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Services holds all application services
type Services struct {
	DB               *gorm.DB
	AuthService      *auth.Service
	UserRepo         *repo.UserRepository
	PhoneNumberRepo  *repo.PhoneNumberRepository
	ContactRepo      *repo.ContactRepository
	InteractionRepo  *repo.InteractionRepository
	WebhookEventRepo *repo.WebhookEventRepository
	TelnyxClient     telnyx.API
	NumberService    *services.NumberService
	RoutingResolver  *services.RoutingResolver
	Dispatcher       *services.Dispatcher
	StorageService   *services.StorageService
	WebhookHandler   *webhook.TelnyxWebhookHandler
}

// NewServices creates a new services container
func NewServices(db *gorm.DB) *Services {
	// Initialize repositories
	userRepo := repo.NewUserRepository(db)
	phoneNumberRepo := repo.NewPhoneNumberRepository(db)
	contactRepo := repo.NewContactRepository(db)
	interactionRepo := repo.NewInteractionRepository(db)
	webhookEventRepo := repo.NewWebhookEventRepository(db)

	authService := auth.NewService(userRepo)

	telnyxClient := telnyx.NewClient()

	defaultConnectionID := os.Getenv("TELNYX_DEFAULT_CONNECTION_ID")
	messagingProfileID := os.Getenv("TELNYX_MESSAGING_PROFILE_ID")

	numberService := services.NewNumberService(phoneNumberRepo, userRepo, telnyxClient, defaultConnectionID, messagingProfileID)
	routingResolver := services.NewRoutingResolver(phoneNumberRepo, userRepo, defaultConnectionID)
	dispatcher := services.NewDispatcher(routingResolver, userRepo, contactRepo, interactionRepo, telnyxClient)

	webhookHandler := webhook.NewTelnyxWebhookHandler(webhookEventRepo, phoneNumberRepo, contactRepo, interactionRepo)

	// Storage is optional: without S3 credentials inbound media keeps its
	// provider URL until it expires
	var storageService *services.StorageService
	if os.Getenv("S3_BUCKET") != "" {
		svc, err := services.NewStorageService()
		if err != nil {
			log.Warn().Err(err).Msg("Failed to initialize storage service, inbound media will not be persisted")
		} else {
			storageService = svc
			webhookHandler.SetMediaStore(storageService)
		}
	}

	return &Services{
		DB:               db,
		AuthService:      authService,
		UserRepo:         userRepo,
		PhoneNumberRepo:  phoneNumberRepo,
		ContactRepo:      contactRepo,
		InteractionRepo:  interactionRepo,
		WebhookEventRepo: webhookEventRepo,
		TelnyxClient:     telnyxClient,
		NumberService:    numberService,
		RoutingResolver:  routingResolver,
		Dispatcher:       dispatcher,
		StorageService:   storageService,
		WebhookHandler:   webhookHandler,
	}
}
