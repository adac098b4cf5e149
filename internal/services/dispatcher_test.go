package services

import (
	"context"
	"errors"
	"testing"

	"dialdesk/internal/telnyx"
	"dialdesk/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeContactStore struct {
	contacts map[uuid.UUID]*models.Contact
}

func newFakeContactStore(contacts ...*models.Contact) *fakeContactStore {
	f := &fakeContactStore{contacts: make(map[uuid.UUID]*models.Contact)}
	for _, c := range contacts {
		f.contacts[c.ID] = c
	}
	return f
}

func (f *fakeContactStore) GetByIDAndCompany(id, companyID uuid.UUID) (*models.Contact, error) {
	if c, ok := f.contacts[id]; ok && c.CompanyID == companyID {
		copied := *c
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeInteractionStore struct {
	created   []*models.Interaction
	createErr error
}

func (f *fakeInteractionStore) Create(interaction *models.Interaction) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, interaction)
	return nil
}

type sentSMS struct {
	from, to, text string
}

type placedCall struct {
	from, to, connectionID string
}

// fakeProvider records outbound traffic instead of hitting the provider
type fakeProvider struct {
	smsSent   []sentSMS
	calls     []placedCall
	smsErr    error
	callErr   error
	messageID string
	controlID string
}

func (f *fakeProvider) SearchNumbers(ctx context.Context, areaCode string) ([]telnyx.AvailableNumber, error) {
	return nil, nil
}

func (f *fakeProvider) PurchaseNumber(ctx context.Context, phoneNumber string) (*telnyx.OrderResult, error) {
	return nil, nil
}

func (f *fakeProvider) AssignToConnection(ctx context.Context, numberID, connectionID, messagingProfileID string) error {
	return nil
}

func (f *fakeProvider) SendSMS(ctx context.Context, from, to, text string) (*telnyx.MessageResult, error) {
	if f.smsErr != nil {
		return nil, f.smsErr
	}
	f.smsSent = append(f.smsSent, sentSMS{from: from, to: to, text: text})
	return &telnyx.MessageResult{MessageID: f.messageID}, nil
}

func (f *fakeProvider) InitiateCall(ctx context.Context, from, to, connectionID string) (*telnyx.CallResult, error) {
	if f.callErr != nil {
		return nil, f.callErr
	}
	f.calls = append(f.calls, placedCall{from: from, to: to, connectionID: connectionID})
	return &telnyx.CallResult{CallControlID: f.controlID}, nil
}

type dispatcherFixture struct {
	companyID    uuid.UUID
	agent        *models.User
	contact      *models.Contact
	interactions *fakeInteractionStore
	provider     *fakeProvider
	dispatcher   *Dispatcher
}

func newDispatcherFixture(contactPhone string) *dispatcherFixture {
	companyID := uuid.New()
	agent := agentWithCompany(companyID)
	contact := &models.Contact{
		BaseCompanyModel: models.BaseCompanyModel{ID: uuid.New(), CompanyID: companyID},
		FirstName:        "Dana",
		LastName:         "Reyes",
		Phone:            contactPhone,
	}

	numbers := newFakeNumberStore(assignedNumber(companyID, agent.ID, "+15551110000", "conn-1"))
	users := newFakeUserStore(agent)
	interactions := &fakeInteractionStore{}
	provider := &fakeProvider{messageID: "msg-1", controlID: "call-ctl-1"}

	resolver := NewRoutingResolver(numbers, users, "conn-default")
	dispatcher := NewDispatcher(resolver, users, newFakeContactStore(contact), interactions, provider)

	return &dispatcherFixture{
		companyID:    companyID,
		agent:        agent,
		contact:      contact,
		interactions: interactions,
		provider:     provider,
		dispatcher:   dispatcher,
	}
}

func TestSendSMSLogsOutboundInteraction(t *testing.T) {
	fx := newDispatcherFixture("+19095551234")

	id, err := fx.dispatcher.SendSMS(context.Background(), fx.agent.ID, fx.contact.ID, "hello there")
	if err != nil {
		t.Fatalf("SendSMS() error = %v", err)
	}
	if id == uuid.Nil {
		t.Error("SendSMS() returned nil interaction id")
	}

	if len(fx.provider.smsSent) != 1 {
		t.Fatalf("provider got %d messages, expected 1", len(fx.provider.smsSent))
	}
	sent := fx.provider.smsSent[0]
	if sent.from != "+15551110000" || sent.to != "+19095551234" || sent.text != "hello there" {
		t.Errorf("provider got %+v", sent)
	}

	if len(fx.interactions.created) != 1 {
		t.Fatalf("logged %d interactions, expected 1", len(fx.interactions.created))
	}
	logged := fx.interactions.created[0]
	if logged.Type != models.InteractionTypeSMS {
		t.Errorf("interaction type = %q", logged.Type)
	}
	if logged.Direction != models.DirectionOutbound {
		t.Errorf("interaction direction = %q", logged.Direction)
	}
	if logged.Status != models.InteractionStatusRead {
		t.Errorf("interaction status = %q", logged.Status)
	}
	if logged.ProviderMessageID != "msg-1" {
		t.Errorf("interaction provider id = %q", logged.ProviderMessageID)
	}
	if logged.CompanyID != fx.companyID {
		t.Errorf("interaction company = %v, expected %v", logged.CompanyID, fx.companyID)
	}
}

func TestSendSMSProviderFailureLogsNothing(t *testing.T) {
	fx := newDispatcherFixture("+19095551234")
	fx.provider.smsErr = &telnyx.ProviderError{Op: "send sms", StatusCode: 502, Detail: "upstream"}

	_, err := fx.dispatcher.SendSMS(context.Background(), fx.agent.ID, fx.contact.ID, "hello")

	var provErr *telnyx.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("SendSMS() error = %v, expected provider error", err)
	}
	if len(fx.interactions.created) != 0 {
		t.Errorf("logged %d interactions after provider failure, expected 0", len(fx.interactions.created))
	}
}

func TestSendSMSLogFailureReportsSentButNotLogged(t *testing.T) {
	fx := newDispatcherFixture("+19095551234")
	fx.interactions.createErr = errors.New("connection reset")

	id, err := fx.dispatcher.SendSMS(context.Background(), fx.agent.ID, fx.contact.ID, "hello")

	var notLogged *SentButNotLoggedError
	if !errors.As(err, &notLogged) {
		t.Fatalf("SendSMS() error = %v, expected SentButNotLoggedError", err)
	}
	if notLogged.ProviderID != "msg-1" {
		t.Errorf("ProviderID = %q, expected msg-1", notLogged.ProviderID)
	}
	if id == uuid.Nil {
		t.Error("interaction id should still be returned when the message went out")
	}
	if len(fx.provider.smsSent) != 1 {
		t.Errorf("provider got %d messages, expected exactly 1", len(fx.provider.smsSent))
	}
}

func TestSendSMSWithoutOriginNumber(t *testing.T) {
	companyID := uuid.New()
	agent := agentWithCompany(companyID)
	contact := &models.Contact{
		BaseCompanyModel: models.BaseCompanyModel{ID: uuid.New(), CompanyID: companyID},
		Phone:            "+19095551234",
	}

	users := newFakeUserStore(agent)
	provider := &fakeProvider{messageID: "msg-1"}
	resolver := NewRoutingResolver(newFakeNumberStore(), users, "conn-default")
	dispatcher := NewDispatcher(resolver, users, newFakeContactStore(contact), &fakeInteractionStore{}, provider)

	_, err := dispatcher.SendSMS(context.Background(), agent.ID, contact.ID, "hello")
	if !errors.Is(err, ErrNoOriginNumber) {
		t.Fatalf("SendSMS() error = %v, expected ErrNoOriginNumber", err)
	}
	if len(provider.smsSent) != 0 {
		t.Error("provider should not be called without an origin number")
	}
}

func TestSendSMSSuperAdminForbidden(t *testing.T) {
	fx := newDispatcherFixture("+19095551234")
	super := &models.User{
		BaseModel: models.BaseModel{ID: uuid.New()},
		Role:      models.RoleSuperAdmin,
	}
	users := newFakeUserStore(super)
	resolver := NewRoutingResolver(newFakeNumberStore(), users, "conn-default")
	dispatcher := NewDispatcher(resolver, users, newFakeContactStore(fx.contact), &fakeInteractionStore{}, fx.provider)

	_, err := dispatcher.SendSMS(context.Background(), super.ID, fx.contact.ID, "hello")
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("SendSMS() error = %v, expected ErrForbidden", err)
	}
}

func TestSendSMSContactWithoutPhone(t *testing.T) {
	fx := newDispatcherFixture("")

	_, err := fx.dispatcher.SendSMS(context.Background(), fx.agent.ID, fx.contact.ID, "hello")
	if !errors.Is(err, ErrContactUnreachable) {
		t.Errorf("SendSMS() error = %v, expected ErrContactUnreachable", err)
	}
}

func TestInitiateCallNormalizesDestination(t *testing.T) {
	fx := newDispatcherFixture("(909) 555-1234")

	result, err := fx.dispatcher.InitiateCall(context.Background(), fx.agent.ID, fx.contact.ID)
	if err != nil {
		t.Fatalf("InitiateCall() error = %v", err)
	}

	if len(fx.provider.calls) != 1 {
		t.Fatalf("provider got %d calls, expected 1", len(fx.provider.calls))
	}
	call := fx.provider.calls[0]
	if call.from != "+15551110000" {
		t.Errorf("call from = %q", call.from)
	}
	if call.to != "+19095551234" {
		t.Errorf("call to = %q, expected normalized E.164", call.to)
	}
	if call.connectionID != "conn-1" {
		t.Errorf("call connection = %q", call.connectionID)
	}

	if result.CallControlID != "call-ctl-1" {
		t.Errorf("result control id = %q", result.CallControlID)
	}
	if len(fx.interactions.created) != 1 {
		t.Fatalf("logged %d interactions, expected 1", len(fx.interactions.created))
	}
	if fx.interactions.created[0].Type != models.InteractionTypeCall {
		t.Errorf("interaction type = %q", fx.interactions.created[0].Type)
	}
	if fx.interactions.created[0].ToNumber != "+19095551234" {
		t.Errorf("interaction to = %q", fx.interactions.created[0].ToNumber)
	}
}

func TestInitiateCallProviderFailure(t *testing.T) {
	fx := newDispatcherFixture("+19095551234")
	fx.provider.callErr = &telnyx.ProviderError{Op: "initiate call", StatusCode: 500}

	result, err := fx.dispatcher.InitiateCall(context.Background(), fx.agent.ID, fx.contact.ID)
	if err == nil {
		t.Fatal("InitiateCall() expected error")
	}
	if result != nil {
		t.Error("InitiateCall() should not return a result on provider failure")
	}
	if len(fx.interactions.created) != 0 {
		t.Errorf("logged %d interactions after provider failure, expected 0", len(fx.interactions.created))
	}
}
