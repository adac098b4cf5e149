package services

import (
	"context"
	"errors"
	"testing"

	"dialdesk/internal/repo"
	"dialdesk/internal/telnyx"
	"dialdesk/pkg/models"

	"github.com/google/uuid"
)

func availableNumber(companyID uuid.UUID, phone string) *models.PhoneNumber {
	return &models.PhoneNumber{
		BaseCompanyModel: models.BaseCompanyModel{ID: uuid.New(), CompanyID: companyID},
		PhoneNumber:      phone,
		ConnectionID:     "conn-1",
		Status:           models.NumberStatusAvailable,
	}
}

func TestAssignWritesLegacyMirror(t *testing.T) {
	companyID := uuid.New()
	agent := agentWithCompany(companyID)
	number := availableNumber(companyID, "+15551110000")

	numbers := newFakeNumberStore(number)
	users := newFakeUserStore(agent)
	svc := NewNumberService(numbers, users, &fakeProvider{}, "conn-default", "profile-1")

	updated, err := svc.Assign(number.ID, agent.ID, &companyID)
	if err != nil {
		t.Fatalf("Assign() error = %v", err)
	}

	if updated.Status != models.NumberStatusAssigned {
		t.Errorf("number status = %q, expected assigned", updated.Status)
	}
	if updated.AssignedUserID == nil || *updated.AssignedUserID != agent.ID {
		t.Errorf("number assigned user = %v, expected %v", updated.AssignedUserID, agent.ID)
	}

	mirrored, _ := users.GetByID(agent.ID)
	if mirrored.TelnyxNumber != "+15551110000" {
		t.Errorf("legacy mirror number = %q, expected assignment to be mirrored", mirrored.TelnyxNumber)
	}
	if mirrored.TelnyxConnectionID != "conn-1" {
		t.Errorf("legacy mirror connection = %q", mirrored.TelnyxConnectionID)
	}
}

func TestAssignAlreadyAssignedConflicts(t *testing.T) {
	companyID := uuid.New()
	first := agentWithCompany(companyID)
	second := agentWithCompany(companyID)
	number := assignedNumber(companyID, first.ID, "+15551110000", "conn-1")

	numbers := newFakeNumberStore(number)
	users := newFakeUserStore(first, second)
	svc := NewNumberService(numbers, users, &fakeProvider{}, "conn-default", "profile-1")

	_, err := svc.Assign(number.ID, second.ID, &companyID)
	if !errors.Is(err, repo.ErrNumberConflict) {
		t.Fatalf("Assign() error = %v, expected conflict", err)
	}

	current, _ := numbers.GetByID(number.ID)
	if current.AssignedUserID == nil || *current.AssignedUserID != first.ID {
		t.Error("conflicting assign must not steal the number")
	}
}

func TestAssignCrossCompanyAgentForbidden(t *testing.T) {
	companyID := uuid.New()
	otherCompany := uuid.New()
	agent := agentWithCompany(otherCompany)
	number := availableNumber(companyID, "+15551110000")

	numbers := newFakeNumberStore(number)
	users := newFakeUserStore(agent)
	svc := NewNumberService(numbers, users, &fakeProvider{}, "conn-default", "profile-1")

	_, err := svc.Assign(number.ID, agent.ID, &companyID)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("Assign() error = %v, expected ErrForbidden", err)
	}

	current, _ := numbers.GetByID(number.ID)
	if current.Status != models.NumberStatusAvailable {
		t.Error("number must stay available after a forbidden assign")
	}
}

func TestAssignCallerScopeEnforced(t *testing.T) {
	companyID := uuid.New()
	callerCompany := uuid.New()
	agent := agentWithCompany(companyID)
	number := availableNumber(companyID, "+15551110000")

	svc := NewNumberService(newFakeNumberStore(number), newFakeUserStore(agent), &fakeProvider{}, "conn-default", "profile-1")

	_, err := svc.Assign(number.ID, agent.ID, &callerCompany)
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("Assign() error = %v, expected ErrForbidden for cross-company caller", err)
	}
}

func TestAssignSurvivesMirrorWriteFailure(t *testing.T) {
	companyID := uuid.New()
	agent := agentWithCompany(companyID)
	number := availableNumber(companyID, "+15551110000")

	numbers := newFakeNumberStore(number)
	users := newFakeUserStore(agent)
	users.setErr = errors.New("deadlock detected")
	svc := NewNumberService(numbers, users, &fakeProvider{}, "conn-default", "profile-1")

	updated, err := svc.Assign(number.ID, agent.ID, &companyID)
	if err != nil {
		t.Fatalf("Assign() error = %v, mirror failure must not roll back", err)
	}
	if updated.Status != models.NumberStatusAssigned {
		t.Errorf("number status = %q, expected assigned", updated.Status)
	}
}

func TestUnassignClearsMatchingMirrorOnly(t *testing.T) {
	companyID := uuid.New()
	agent := agentWithCompany(companyID)
	// Agent was re-pointed at a newer number since this one was assigned
	agent.TelnyxNumber = "+15552220000"
	number := assignedNumber(companyID, agent.ID, "+15551110000", "conn-1")

	numbers := newFakeNumberStore(number)
	users := newFakeUserStore(agent)
	svc := NewNumberService(numbers, users, &fakeProvider{}, "conn-default", "profile-1")

	if err := svc.Unassign(number.ID, &companyID); err != nil {
		t.Fatalf("Unassign() error = %v", err)
	}

	current, _ := numbers.GetByID(number.ID)
	if current.Status != models.NumberStatusAvailable {
		t.Errorf("number status = %q, expected available", current.Status)
	}
	mirrored, _ := users.GetByID(agent.ID)
	if mirrored.TelnyxNumber != "+15552220000" {
		t.Errorf("mirror = %q, a newer mirror value must survive unassign", mirrored.TelnyxNumber)
	}
}

func TestUnassignClearsMirror(t *testing.T) {
	companyID := uuid.New()
	agent := agentWithCompany(companyID)
	agent.TelnyxNumber = "+15551110000"
	agent.TelnyxConnectionID = "conn-1"
	number := assignedNumber(companyID, agent.ID, "+15551110000", "conn-1")

	numbers := newFakeNumberStore(number)
	users := newFakeUserStore(agent)
	svc := NewNumberService(numbers, users, &fakeProvider{}, "conn-default", "profile-1")

	if err := svc.Unassign(number.ID, &companyID); err != nil {
		t.Fatalf("Unassign() error = %v", err)
	}

	mirrored, _ := users.GetByID(agent.ID)
	if mirrored.TelnyxNumber != "" || mirrored.TelnyxConnectionID != "" {
		t.Errorf("mirror = %q/%q, expected cleared", mirrored.TelnyxNumber, mirrored.TelnyxConnectionID)
	}
}

type purchasingProvider struct {
	fakeProvider
	order         *telnyx.OrderResult
	purchaseErr   error
	connectionErr error
	bound         []string
}

func (p *purchasingProvider) PurchaseNumber(ctx context.Context, phoneNumber string) (*telnyx.OrderResult, error) {
	if p.purchaseErr != nil {
		return nil, p.purchaseErr
	}
	return p.order, nil
}

func (p *purchasingProvider) AssignToConnection(ctx context.Context, numberID, connectionID, messagingProfileID string) error {
	if p.connectionErr != nil {
		return p.connectionErr
	}
	p.bound = append(p.bound, numberID+"/"+connectionID+"/"+messagingProfileID)
	return nil
}

func TestPurchaseRegistersAvailableNumber(t *testing.T) {
	companyID := uuid.New()
	provider := &purchasingProvider{
		order: &telnyx.OrderResult{OrderID: "ord-1", NumberID: "num-1", PhoneNumber: "+19165550123"},
	}
	numbers := newFakeNumberStore()
	svc := NewNumberService(numbers, newFakeUserStore(), provider, "conn-default", "profile-1")

	number, err := svc.Purchase(context.Background(), companyID, "+19165550123", "916")
	if err != nil {
		t.Fatalf("Purchase() error = %v", err)
	}

	if number.Status != models.NumberStatusAvailable {
		t.Errorf("purchased number status = %q, expected available", number.Status)
	}
	if number.ConnectionID != "conn-default" {
		t.Errorf("purchased number connection = %q", number.ConnectionID)
	}
	if number.MessagingProfileID != "profile-1" {
		t.Errorf("purchased number messaging profile = %q", number.MessagingProfileID)
	}
	if len(provider.bound) != 1 || provider.bound[0] != "num-1/conn-default/profile-1" {
		t.Errorf("provider binding = %v", provider.bound)
	}
	if _, err := numbers.GetByNumber("+19165550123"); err != nil {
		t.Error("purchased number missing from registry")
	}
}

func TestPurchaseConnectionFailureLeavesRegistryUntouched(t *testing.T) {
	companyID := uuid.New()
	provider := &purchasingProvider{
		order:         &telnyx.OrderResult{OrderID: "ord-1", NumberID: "num-1", PhoneNumber: "+19165550123"},
		connectionErr: &telnyx.ProviderError{Op: "assign connection", StatusCode: 422},
	}
	numbers := newFakeNumberStore()
	svc := NewNumberService(numbers, newFakeUserStore(), provider, "conn-default", "profile-1")

	_, err := svc.Purchase(context.Background(), companyID, "+19165550123", "916")
	if err == nil {
		t.Fatal("Purchase() expected error")
	}
	if _, err := numbers.GetByNumber("+19165550123"); err == nil {
		t.Error("registry must stay untouched when connection binding fails")
	}
}
