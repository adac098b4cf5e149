package services

import (
	"context"
	"fmt"

	"dialdesk/internal/telnyx"
	"dialdesk/pkg/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// CallDispatchResult reports a successfully initiated call
type CallDispatchResult struct {
	InteractionID uuid.UUID `json:"interaction_id"`
	FromNumber    string    `json:"from_number"`
	ToNumber      string    `json:"to_number"`
	CallControlID string    `json:"call_control_id"`
}

// Dispatcher executes outbound calls and SMS and records them in the
// interaction log. Provider failures are surfaced untouched and nothing
// is retried here; a log-write failure after a provider success becomes
// SentButNotLoggedError because the message or call already went out.
type Dispatcher struct {
	resolver     *RoutingResolver
	users        UserStore
	contacts     ContactStore
	interactions InteractionStore
	provider     telnyx.API
}

// NewDispatcher creates a new dispatcher
func NewDispatcher(resolver *RoutingResolver, users UserStore, contacts ContactStore, interactions InteractionStore, provider telnyx.API) *Dispatcher {
	return &Dispatcher{
		resolver:     resolver,
		users:        users,
		contacts:     contacts,
		interactions: interactions,
		provider:     provider,
	}
}

// SendSMS sends one outbound SMS from the agent's origin number to a
// contact and returns the logged interaction id
func (d *Dispatcher) SendSMS(ctx context.Context, agentID, contactID uuid.UUID, text string) (uuid.UUID, error) {
	agent, origin, contact, err := d.prepare(agentID, contactID)
	if err != nil {
		return uuid.Nil, err
	}

	result, err := d.provider.SendSMS(ctx, origin.PhoneNumber, contact.Phone, text)
	if err != nil {
		return uuid.Nil, err
	}

	interaction := &models.Interaction{
		BaseCompanyModel:  models.BaseCompanyModel{ID: uuid.New(), CompanyID: contact.CompanyID},
		UserID:            &agent.ID,
		ContactID:         &contact.ID,
		Type:              models.InteractionTypeSMS,
		Content:           text,
		Status:            models.InteractionStatusRead,
		Direction:         models.DirectionOutbound,
		FromNumber:        origin.PhoneNumber,
		ToNumber:          contact.Phone,
		ProviderMessageID: result.MessageID,
	}

	if err := d.interactions.Create(interaction); err != nil {
		log.Error().Err(err).Str("provider_message_id", result.MessageID).Msg("SMS sent but interaction log write failed")
		return interaction.ID, &SentButNotLoggedError{
			InteractionType: models.InteractionTypeSMS,
			ProviderID:      result.MessageID,
			Err:             err,
		}
	}

	return interaction.ID, nil
}

// InitiateCall starts one outbound call from the agent's origin number
// to a contact
func (d *Dispatcher) InitiateCall(ctx context.Context, agentID, contactID uuid.UUID) (*CallDispatchResult, error) {
	agent, origin, contact, err := d.prepare(agentID, contactID)
	if err != nil {
		return nil, err
	}

	to := NormalizeE164(contact.Phone)

	result, err := d.provider.InitiateCall(ctx, origin.PhoneNumber, to, origin.ConnectionID)
	if err != nil {
		return nil, err
	}

	summary := fmt.Sprintf("Outbound call from %s to %s (%s)", origin.PhoneNumber, to, contact.FullName())
	interaction := &models.Interaction{
		BaseCompanyModel:  models.BaseCompanyModel{ID: uuid.New(), CompanyID: contact.CompanyID},
		UserID:            &agent.ID,
		ContactID:         &contact.ID,
		Type:              models.InteractionTypeCall,
		Content:           summary,
		Status:            models.InteractionStatusRead,
		Direction:         models.DirectionOutbound,
		FromNumber:        origin.PhoneNumber,
		ToNumber:          to,
		ProviderMessageID: result.CallControlID,
	}

	dispatch := &CallDispatchResult{
		InteractionID: interaction.ID,
		FromNumber:    origin.PhoneNumber,
		ToNumber:      to,
		CallControlID: result.CallControlID,
	}

	if err := d.interactions.Create(interaction); err != nil {
		log.Error().Err(err).Str("call_control_id", result.CallControlID).Msg("Call placed but interaction log write failed")
		return dispatch, &SentButNotLoggedError{
			InteractionType: models.InteractionTypeCall,
			ProviderID:      result.CallControlID,
			Err:             err,
		}
	}

	return dispatch, nil
}

// prepare resolves the acting agent, origin number and reachable contact
func (d *Dispatcher) prepare(agentID, contactID uuid.UUID) (*models.User, *Origin, *models.Contact, error) {
	agent, err := d.users.GetByID(agentID)
	if err != nil {
		return nil, nil, nil, err
	}
	if agent.CompanyID == nil {
		return nil, nil, nil, ErrForbidden
	}

	origin, err := d.resolver.Resolve(agentID)
	if err != nil {
		return nil, nil, nil, err
	}

	contact, err := d.contacts.GetByIDAndCompany(contactID, *agent.CompanyID)
	if err != nil {
		return nil, nil, nil, err
	}
	if contact.Phone == "" {
		return nil, nil, nil, ErrContactUnreachable
	}

	return agent, origin, contact, nil
}
