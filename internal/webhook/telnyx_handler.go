package webhook

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"dialdesk/pkg/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Store interfaces implemented by the repo layer. The handler acks
// before touching most of them; only the inbox claim happens on the
// provider's clock.

// EventInbox de-duplicates provider redeliveries
type EventInbox interface {
	Claim(eventID, eventType, payload string) (bool, error)
}

// NumberLookup resolves a dialable number to its registry row
type NumberLookup interface {
	GetByNumber(phoneNumber string) (*models.PhoneNumber, error)
}

// ContactLookup resolves an inbound sender to a known contact
type ContactLookup interface {
	FindByPhone(companyID uuid.UUID, phone string) (*models.Contact, error)
}

// InteractionStore appends to the interaction log
type InteractionStore interface {
	Create(interaction *models.Interaction) error
}

// MediaStore persists inbound media off the provider's expiring URLs
type MediaStore interface {
	StoreInboundMedia(mediaURL, companyID, interactionID, contentType string) (string, error)
}

// Envelope is the outer shape shared by all Telnyx webhook deliveries
type Envelope struct {
	Data struct {
		ID         string          `json:"id"`
		EventType  string          `json:"event_type"`
		OccurredAt string          `json:"occurred_at"`
		Payload    json.RawMessage `json:"payload"`
	} `json:"data"`
}

type smsPayload struct {
	ID   string `json:"id"`
	From struct {
		PhoneNumber string `json:"phone_number"`
	} `json:"from"`
	To []struct {
		PhoneNumber string `json:"phone_number"`
	} `json:"to"`
	Text  string `json:"text"`
	Media []struct {
		URL         string `json:"url"`
		ContentType string `json:"content_type"`
	} `json:"media"`
}

type voicePayload struct {
	CallControlID string `json:"call_control_id"`
	From          string `json:"from"`
	To            string `json:"to"`
}

// TelnyxWebhookHandler ingests provider events for SMS and voice. The
// contract with the provider is ack-fast: parse, claim the event in the
// durable inbox, respond 2xx, and do everything else off the request
// goroutine so a slow contact lookup never runs into the retry timer.
type TelnyxWebhookHandler struct {
	inbox        EventInbox
	numbers      NumberLookup
	contacts     ContactLookup
	interactions InteractionStore
	media        MediaStore
	notifier     Notifier
}

// NewTelnyxWebhookHandler creates a new webhook handler. media and
// notifier are optional.
func NewTelnyxWebhookHandler(inbox EventInbox, numbers NumberLookup, contacts ContactLookup, interactions InteractionStore) *TelnyxWebhookHandler {
	return &TelnyxWebhookHandler{
		inbox:        inbox,
		numbers:      numbers,
		contacts:     contacts,
		interactions: interactions,
	}
}

// SetNotifier sets the dashboard notifier for real-time pushes
func (h *TelnyxWebhookHandler) SetNotifier(notifier Notifier) {
	h.notifier = notifier
}

// SetMediaStore sets the media store for inbound attachments
func (h *TelnyxWebhookHandler) SetMediaStore(media MediaStore) {
	h.media = media
}

// HandleSMS processes inbound SMS webhook deliveries. Anything that
// prevents acceptance, a body we cannot parse included, is answered
// with a 5xx so the provider keeps the event and retries.
func (h *TelnyxWebhookHandler) HandleSMS(c echo.Context) error {
	body, envelope, err := h.readEnvelope(c)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "event not accepted"})
	}

	if envelope.Data.EventType != "message.received" {
		return h.claimAndIgnore(c, envelope, body)
	}

	var payload smsPayload
	if err := json.Unmarshal(envelope.Data.Payload, &payload); err != nil {
		log.Warn().Err(err).Msg("Failed to parse SMS webhook payload")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "event not accepted"})
	}
	if len(payload.To) == 0 {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "event not accepted"})
	}

	claimed, err := h.claim(envelope, body)
	if err != nil {
		log.Error().Err(err).Msg("Webhook inbox write failed")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "event not accepted"})
	}
	if !claimed {
		return c.JSON(http.StatusOK, map[string]string{"status": "duplicate"})
	}

	go h.processInboundSMS(payload)

	return c.JSON(http.StatusOK, map[string]string{"status": "accepted"})
}

// HandleVoice processes voice webhook deliveries
func (h *TelnyxWebhookHandler) HandleVoice(c echo.Context) error {
	body, envelope, err := h.readEnvelope(c)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "event not accepted"})
	}

	if envelope.Data.EventType != "call.initiated" {
		return h.claimAndIgnore(c, envelope, body)
	}

	var payload voicePayload
	if err := json.Unmarshal(envelope.Data.Payload, &payload); err != nil {
		log.Warn().Err(err).Msg("Failed to parse voice webhook payload")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "event not accepted"})
	}

	claimed, err := h.claim(envelope, body)
	if err != nil {
		log.Error().Err(err).Msg("Webhook inbox write failed")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "event not accepted"})
	}
	if !claimed {
		return c.JSON(http.StatusOK, map[string]string{"status": "duplicate"})
	}

	go h.processCallInitiated(payload)

	return c.JSON(http.StatusOK, map[string]string{"status": "accepted"})
}

// readEnvelope reads the raw body and parses the outer envelope
func (h *TelnyxWebhookHandler) readEnvelope(c echo.Context) ([]byte, *Envelope, error) {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return nil, nil, err
	}

	var envelope Envelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		log.Warn().Err(err).Msg("Failed to parse webhook envelope")
		return nil, nil, err
	}
	if envelope.Data.EventType == "" {
		return nil, nil, errors.New("missing event_type")
	}

	return body, &envelope, nil
}

// claimAndIgnore acknowledges event types this system does not consume.
// The provider's event set evolves independently; unknown types must
// never look like failures or they are redelivered forever.
func (h *TelnyxWebhookHandler) claimAndIgnore(c echo.Context, envelope *Envelope, body []byte) error {
	if _, err := h.claim(envelope, body); err != nil {
		log.Error().Err(err).Msg("Webhook inbox write failed")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "event not accepted"})
	}
	log.Debug().Str("event_type", envelope.Data.EventType).Msg("Ignoring webhook event type")
	return c.JSON(http.StatusOK, map[string]string{"status": "ignored"})
}

func (h *TelnyxWebhookHandler) claim(envelope *Envelope, body []byte) (bool, error) {
	return h.inbox.Claim(eventKey(envelope), envelope.Data.EventType, string(body))
}

// eventKey is the idempotency key for a delivery: the provider event id
// when present, otherwise a content hash bucketed to the minute so
// redeliveries within the retry window still collide.
func eventKey(envelope *Envelope) string {
	if envelope.Data.ID != "" {
		return envelope.Data.ID
	}

	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%s",
		envelope.Data.EventType,
		string(envelope.Data.Payload),
		time.Now().UTC().Format("2006-01-02T15:04"),
	)))
	return hex.EncodeToString(sum[:])
}

// processInboundSMS applies the side effects of a received message:
// resolve the recipient number against the registry, attribute the
// sender to a contact when possible, and append an inbound interaction.
func (h *TelnyxWebhookHandler) processInboundSMS(payload smsPayload) {
	recipient := payload.To[0].PhoneNumber

	number, err := h.numbers.GetByNumber(recipient)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Numbers get decommissioned while events are in flight.
			log.Info().Str("to", recipient).Msg("Inbound SMS for unregistered number, dropping")
			return
		}
		log.Error().Err(err).Str("to", recipient).Msg("Registry lookup failed for inbound SMS")
		return
	}

	interaction := &models.Interaction{
		BaseCompanyModel:  models.BaseCompanyModel{ID: uuid.New(), CompanyID: number.CompanyID},
		UserID:            number.AssignedUserID,
		Type:              models.InteractionTypeSMS,
		Content:           payload.Text,
		Status:            models.InteractionStatusUnread,
		Direction:         models.DirectionInbound,
		FromNumber:        payload.From.PhoneNumber,
		ToNumber:          recipient,
		ProviderMessageID: payload.ID,
	}

	contact, err := h.contacts.FindByPhone(number.CompanyID, payload.From.PhoneNumber)
	if err == nil {
		interaction.ContactID = &contact.ID
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Warn().Err(err).Str("from", payload.From.PhoneNumber).Msg("Contact lookup failed for inbound SMS")
	}

	if len(payload.Media) > 0 && h.media != nil {
		url, err := h.media.StoreInboundMedia(payload.Media[0].URL, number.CompanyID.String(), interaction.ID.String(), payload.Media[0].ContentType)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to store inbound media")
		} else {
			interaction.MediaURL = url
		}
	}

	if err := h.interactions.Create(interaction); err != nil {
		log.Error().Err(err).Str("event_message_id", payload.ID).Msg("Failed to log inbound SMS interaction")
		return
	}

	if h.notifier != nil {
		h.notifier.BroadcastInteraction(number.CompanyID.String(), interaction)
	}
}

// processCallInitiated records that an inbound call began. Answer/IVR
// logic does not live here yet.
func (h *TelnyxWebhookHandler) processCallInitiated(payload voicePayload) {
	number, err := h.numbers.GetByNumber(payload.To)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Info().Str("to", payload.To).Msg("Call event for unregistered number, dropping")
			return
		}
		log.Error().Err(err).Str("to", payload.To).Msg("Registry lookup failed for call event")
		return
	}

	interaction := &models.Interaction{
		BaseCompanyModel:  models.BaseCompanyModel{ID: uuid.New(), CompanyID: number.CompanyID},
		UserID:            number.AssignedUserID,
		Type:              models.InteractionTypeCall,
		Content:           fmt.Sprintf("Inbound call from %s", payload.From),
		Status:            models.InteractionStatusUnread,
		Direction:         models.DirectionInbound,
		FromNumber:        payload.From,
		ToNumber:          payload.To,
		ProviderMessageID: payload.CallControlID,
	}

	contact, err := h.contacts.FindByPhone(number.CompanyID, payload.From)
	if err == nil {
		interaction.ContactID = &contact.ID
	}

	if err := h.interactions.Create(interaction); err != nil {
		log.Error().Err(err).Str("call_control_id", payload.CallControlID).Msg("Failed to log inbound call interaction")
		return
	}

	if h.notifier != nil {
		h.notifier.BroadcastInteraction(number.CompanyID.String(), interaction)
	}
}
