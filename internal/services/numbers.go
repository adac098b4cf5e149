package services

import (
	"context"
	"time"

	"dialdesk/internal/telnyx"
	"dialdesk/pkg/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// NumberService owns the lifecycle of purchased numbers: provisioning
// from the provider, registration, and exclusive assignment to agents.
// It is the only writer of phone number state.
type NumberService struct {
	numbers             NumberStore
	users               UserStore
	provider            telnyx.API
	defaultConnectionID string
	messagingProfileID  string
}

// NewNumberService creates a new number service
func NewNumberService(numbers NumberStore, users UserStore, provider telnyx.API, defaultConnectionID, messagingProfileID string) *NumberService {
	return &NumberService{
		numbers:             numbers,
		users:               users,
		provider:            provider,
		defaultConnectionID: defaultConnectionID,
		messagingProfileID:  messagingProfileID,
	}
}

// SearchAvailable lists purchasable numbers for an area code
func (s *NumberService) SearchAvailable(ctx context.Context, areaCode string) ([]telnyx.AvailableNumber, error) {
	return s.provider.SearchNumbers(ctx, areaCode)
}

// Purchase buys a number from the provider, binds it to the default
// connection and messaging profile, and registers it as available for
// the company. A provider failure after purchase leaves the registry
// untouched; the order id in the log is the reconciliation handle.
func (s *NumberService) Purchase(ctx context.Context, companyID uuid.UUID, phoneNumber, areaCode string) (*models.PhoneNumber, error) {
	order, err := s.provider.PurchaseNumber(ctx, phoneNumber)
	if err != nil {
		return nil, err
	}

	if err := s.provider.AssignToConnection(ctx, order.NumberID, s.defaultConnectionID, s.messagingProfileID); err != nil {
		log.Error().Err(err).Str("order_id", order.OrderID).Str("number", order.PhoneNumber).
			Msg("Number purchased but connection assignment failed; not registered")
		return nil, err
	}

	return s.Register(companyID, order.PhoneNumber, order.NumberID, s.defaultConnectionID, areaCode, time.Now())
}

// Register inserts a purchased number into the registry as available
func (s *NumberService) Register(companyID uuid.UUID, phoneNumber, telnyxNumberID, connectionID, areaCode string, purchasedAt time.Time) (*models.PhoneNumber, error) {
	number := &models.PhoneNumber{
		BaseCompanyModel:   models.BaseCompanyModel{ID: uuid.New(), CompanyID: companyID},
		PhoneNumber:        phoneNumber,
		TelnyxNumberID:     telnyxNumberID,
		ConnectionID:       connectionID,
		MessagingProfileID: s.messagingProfileID,
		Status:             models.NumberStatusAvailable,
		AreaCode:           areaCode,
		PurchasedAt:        purchasedAt,
	}

	if err := s.numbers.Create(number); err != nil {
		return nil, err
	}
	return number, nil
}

// Get returns one number, enforcing company scope. callerCompanyID nil
// means super scope.
func (s *NumberService) Get(numberID uuid.UUID, callerCompanyID *uuid.UUID) (*models.PhoneNumber, error) {
	number, err := s.numbers.GetByID(numberID)
	if err != nil {
		return nil, err
	}
	if callerCompanyID != nil && *callerCompanyID != number.CompanyID {
		return nil, ErrForbidden
	}
	return number, nil
}

// ListByCompany lists a company's numbers with pagination
func (s *NumberService) ListByCompany(companyID uuid.UUID, limit, offset int) (models.PaginationResult[models.PhoneNumber], error) {
	return s.numbers.ListByCompany(companyID, limit, offset)
}

// ListAvailable lists a company's unassigned numbers
func (s *NumberService) ListAvailable(companyID uuid.UUID) ([]models.PhoneNumber, error) {
	return s.numbers.ListAvailable(companyID)
}

// Assign gives an agent exclusive use of a number. The registry update
// is a single conditional write; the legacy mirror on the user row is a
// best-effort secondary write that never rolls the assignment back.
func (s *NumberService) Assign(numberID, agentID uuid.UUID, callerCompanyID *uuid.UUID) (*models.PhoneNumber, error) {
	number, err := s.numbers.GetByID(numberID)
	if err != nil {
		return nil, err
	}
	if callerCompanyID != nil && *callerCompanyID != number.CompanyID {
		return nil, ErrForbidden
	}

	agent, err := s.users.GetByID(agentID)
	if err != nil {
		return nil, err
	}
	if agent.CompanyID == nil || *agent.CompanyID != number.CompanyID {
		return nil, ErrForbidden
	}

	if err := s.numbers.Assign(numberID, agentID); err != nil {
		return nil, err
	}

	if err := s.users.SetLegacyNumber(agentID, number.PhoneNumber, number.ConnectionID); err != nil {
		// Assignment stands; the mirror is reconciled out of band.
		log.Warn().Err(err).
			Str("agent_id", agentID.String()).
			Str("number", number.PhoneNumber).
			Msg("Legacy number mirror write failed; registry and user row are out of sync")
	}

	return s.numbers.GetByID(numberID)
}

// Unassign returns a number to the available pool. The legacy mirror is
// cleared only while it still holds this number, so an agent reassigned
// to a different number in the meantime keeps their newer mirror value.
func (s *NumberService) Unassign(numberID uuid.UUID, callerCompanyID *uuid.UUID) error {
	number, err := s.numbers.GetByID(numberID)
	if err != nil {
		return err
	}
	if callerCompanyID != nil && *callerCompanyID != number.CompanyID {
		return ErrForbidden
	}

	previousAgent := number.AssignedUserID

	if err := s.numbers.Release(numberID); err != nil {
		return err
	}

	if previousAgent != nil {
		if err := s.users.ClearLegacyNumberIfMatches(*previousAgent, number.PhoneNumber); err != nil {
			log.Warn().Err(err).
				Str("agent_id", previousAgent.String()).
				Str("number", number.PhoneNumber).
				Msg("Legacy number mirror clear failed")
		}
	}

	return nil
}
