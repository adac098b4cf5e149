package services

import (
	"dialdesk/pkg/models"

	"github.com/google/uuid"
)

// Store interfaces consumed by the telephony services. The repo package
// implements all of them against Postgres; tests use in-memory fakes.

// NumberStore is the registry of purchased numbers
type NumberStore interface {
	Create(number *models.PhoneNumber) error
	GetByID(id uuid.UUID) (*models.PhoneNumber, error)
	GetByNumber(phoneNumber string) (*models.PhoneNumber, error)
	GetAssignedToUser(userID uuid.UUID) (*models.PhoneNumber, error)
	ListByCompany(companyID uuid.UUID, limit, offset int) (models.PaginationResult[models.PhoneNumber], error)
	ListAvailable(companyID uuid.UUID) ([]models.PhoneNumber, error)
	Assign(id, userID uuid.UUID) error
	Release(id uuid.UUID) error
}

// UserStore reads agents and maintains their legacy number mirror
type UserStore interface {
	GetByID(id uuid.UUID) (*models.User, error)
	SetLegacyNumber(userID uuid.UUID, number, connectionID string) error
	ClearLegacyNumberIfMatches(userID uuid.UUID, number string) error
}

// ContactStore resolves outbound destinations
type ContactStore interface {
	GetByIDAndCompany(id, companyID uuid.UUID) (*models.Contact, error)
}

// InteractionStore appends to the interaction log
type InteractionStore interface {
	Create(interaction *models.Interaction) error
}
