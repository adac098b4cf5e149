package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Origin is the number and connection an agent's outbound traffic uses
type Origin struct {
	PhoneNumber  string
	ConnectionID string
}

// RoutingResolver determines the single origin number for an agent. The
// registry is authoritative; the legacy mirror on the user row only
// covers agents provisioned before the registry existed.
type RoutingResolver struct {
	numbers             NumberStore
	users               UserStore
	defaultConnectionID string
}

// NewRoutingResolver creates a new routing resolver
func NewRoutingResolver(numbers NumberStore, users UserStore, defaultConnectionID string) *RoutingResolver {
	return &RoutingResolver{
		numbers:             numbers,
		users:               users,
		defaultConnectionID: defaultConnectionID,
	}
}

// Resolve returns the origin for an agent, or ErrNoOriginNumber when
// neither the registry nor the legacy mirror has one.
func (r *RoutingResolver) Resolve(agentID uuid.UUID) (*Origin, error) {
	number, err := r.numbers.GetAssignedToUser(agentID)
	if err == nil {
		connectionID := number.ConnectionID
		if connectionID == "" {
			connectionID = r.defaultConnectionID
		}
		return &Origin{PhoneNumber: number.PhoneNumber, ConnectionID: connectionID}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user, err := r.users.GetByID(agentID)
	if err != nil {
		return nil, err
	}

	if user.TelnyxNumber != "" {
		log.Debug().Str("agent_id", agentID.String()).Msg("Routing via legacy mirror number")
		connectionID := user.TelnyxConnectionID
		if connectionID == "" {
			connectionID = r.defaultConnectionID
		}
		return &Origin{PhoneNumber: user.TelnyxNumber, ConnectionID: connectionID}, nil
	}

	return nil, ErrNoOriginNumber
}
