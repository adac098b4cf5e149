package telnyx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSendSMSSuccess(t *testing.T) {
	var gotAuth string
	var gotBody sendMessageRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/messages" {
			t.Errorf("path = %q", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": {"id": "msg-42"}}`))
	}))
	defer server.Close()

	client := NewClientWithConfig(server.URL, "key-1", "")

	result, err := client.SendSMS(context.Background(), "+15551110000", "+19095551234", "hello")
	if err != nil {
		t.Fatalf("SendSMS() error = %v", err)
	}
	if result.MessageID != "msg-42" {
		t.Errorf("MessageID = %q", result.MessageID)
	}
	if gotAuth != "Bearer key-1" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotBody.From != "+15551110000" || gotBody.To != "+19095551234" || gotBody.Text != "hello" {
		t.Errorf("request body = %+v", gotBody)
	}
}

func TestSendSMSProviderErrorDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"errors": [{"code": "40310", "title": "Invalid destination", "detail": "not SMS capable"}]}`))
	}))
	defer server.Close()

	client := NewClientWithConfig(server.URL, "key-1", "")

	_, err := client.SendSMS(context.Background(), "+15551110000", "+1900", "hello")

	var provErr *ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("error = %v, expected *ProviderError", err)
	}
	if provErr.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("StatusCode = %d", provErr.StatusCode)
	}
	if provErr.Detail != "Invalid destination: not SMS capable" {
		t.Errorf("Detail = %q", provErr.Detail)
	}
	if provErr.Transport() {
		t.Error("a decoded API error is not a transport failure")
	}
}

func TestSendSMSTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	client := NewClientWithConfig(server.URL, "key-1", "")

	_, err := client.SendSMS(context.Background(), "+15551110000", "+19095551234", "hello")

	var provErr *ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("error = %v, expected *ProviderError", err)
	}
	if !provErr.Transport() {
		t.Error("connection refusal should report as a transport failure")
	}
}

func TestPurchaseNumberParsesOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/number_orders" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"data": {"id": "ord-1", "phone_numbers": [{"id": "num-1", "phone_number": "+19165550123"}]}}`))
	}))
	defer server.Close()

	client := NewClientWithConfig(server.URL, "key-1", "")

	result, err := client.PurchaseNumber(context.Background(), "+19165550123")
	if err != nil {
		t.Fatalf("PurchaseNumber() error = %v", err)
	}
	if result.OrderID != "ord-1" || result.NumberID != "num-1" || result.PhoneNumber != "+19165550123" {
		t.Errorf("result = %+v", result)
	}
}

func TestInitiateCallSendsConnectionAndWebhook(t *testing.T) {
	var gotBody createCallRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/calls" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Write([]byte(`{"data": {"call_control_id": "ctl-7", "call_leg_id": "leg-7"}}`))
	}))
	defer server.Close()

	client := NewClientWithConfig(server.URL, "key-1", "https://app.example.com/webhooks/voice")

	result, err := client.InitiateCall(context.Background(), "+15551110000", "+19095551234", "conn-1")
	if err != nil {
		t.Fatalf("InitiateCall() error = %v", err)
	}
	if result.CallControlID != "ctl-7" || result.CallLegID != "leg-7" {
		t.Errorf("result = %+v", result)
	}
	if gotBody.ConnectionID != "conn-1" {
		t.Errorf("connection_id = %q", gotBody.ConnectionID)
	}
	if gotBody.WebhookURL != "https://app.example.com/webhooks/voice" {
		t.Errorf("webhook_url = %q", gotBody.WebhookURL)
	}
}

func TestSearchNumbersFiltersByAreaCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("filter[national_destination_code]"); got != "916" {
			t.Errorf("area code filter = %q", got)
		}
		w.Write([]byte(`{"data": [{"phone_number": "+19165550123"}, {"phone_number": "+19165550124"}]}`))
	}))
	defer server.Close()

	client := NewClientWithConfig(server.URL, "key-1", "")

	numbers, err := client.SearchNumbers(context.Background(), "916")
	if err != nil {
		t.Fatalf("SearchNumbers() error = %v", err)
	}
	if len(numbers) != 2 {
		t.Fatalf("got %d numbers, expected 2", len(numbers))
	}
	if numbers[0].PhoneNumber != "+19165550123" {
		t.Errorf("numbers[0] = %+v", numbers[0])
	}
}
