package telnyx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/rs/zerolog/log"
)

// Per-operation deadlines. Purchases and call legs take longer on the
// provider side than inventory search or message submission.
const (
	searchTimeout   = 5 * time.Second
	sendTimeout     = 5 * time.Second
	purchaseTimeout = 10 * time.Second
	callTimeout     = 10 * time.Second
)

// API is the narrow surface of the Telnyx REST API this system consumes.
// Implemented by Client; test doubles implement it in-memory.
type API interface {
	SearchNumbers(ctx context.Context, areaCode string) ([]AvailableNumber, error)
	PurchaseNumber(ctx context.Context, phoneNumber string) (*OrderResult, error)
	AssignToConnection(ctx context.Context, numberID, connectionID, messagingProfileID string) error
	SendSMS(ctx context.Context, from, to, text string) (*MessageResult, error)
	InitiateCall(ctx context.Context, from, to, connectionID string) (*CallResult, error)
}

// Client talks to the Telnyx v2 REST API
type Client struct {
	baseURL         string
	apiKey          string
	voiceWebhookURL string
	httpClient      *http.Client
}

// NewClient creates a Telnyx client from the environment
func NewClient() *Client {
	baseURL := os.Getenv("TELNYX_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.telnyx.com"
	}

	return &Client{
		baseURL:         baseURL,
		apiKey:          os.Getenv("TELNYX_API_KEY"),
		voiceWebhookURL: os.Getenv("PUBLIC_BASE_URL") + "/webhooks/voice",
		httpClient:      &http.Client{},
	}
}

// NewClientWithConfig creates a Telnyx client with explicit configuration (for tests)
func NewClientWithConfig(baseURL, apiKey, voiceWebhookURL string) *Client {
	return &Client{
		baseURL:         baseURL,
		apiKey:          apiKey,
		voiceWebhookURL: voiceWebhookURL,
		httpClient:      &http.Client{},
	}
}

// AvailableNumber is one purchasable number from inventory search
type AvailableNumber struct {
	PhoneNumber string `json:"phone_number"`
	Region      string `json:"region_information,omitempty"`
	CostPerUse  string `json:"upfront_cost,omitempty"`
}

// OrderResult is the outcome of a number purchase
type OrderResult struct {
	OrderID     string
	NumberID    string
	PhoneNumber string
}

// MessageResult is the outcome of an SMS submission
type MessageResult struct {
	MessageID string
}

// CallResult is the outcome of a call initiation
type CallResult struct {
	CallControlID string
	CallLegID     string
}

type availableNumbersResponse struct {
	Data []AvailableNumber `json:"data"`
}

type numberOrderRequest struct {
	PhoneNumbers []struct {
		PhoneNumber string `json:"phone_number"`
	} `json:"phone_numbers"`
}

type numberOrderResponse struct {
	Data struct {
		ID           string `json:"id"`
		PhoneNumbers []struct {
			ID          string `json:"id"`
			PhoneNumber string `json:"phone_number"`
		} `json:"phone_numbers"`
	} `json:"data"`
}

type updateNumberRequest struct {
	ConnectionID       string `json:"connection_id,omitempty"`
	MessagingProfileID string `json:"messaging_profile_id,omitempty"`
}

type sendMessageRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
	Text string `json:"text"`
}

type sendMessageResponse struct {
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

type createCallRequest struct {
	ConnectionID              string `json:"connection_id"`
	To                        string `json:"to"`
	From                      string `json:"from"`
	WebhookURL                string `json:"webhook_url,omitempty"`
	AnsweringMachineDetection string `json:"answering_machine_detection,omitempty"`
}

type createCallResponse struct {
	Data struct {
		CallControlID string `json:"call_control_id"`
		CallLegID     string `json:"call_leg_id"`
	} `json:"data"`
}

type errorResponse struct {
	Errors []struct {
		Code   string `json:"code"`
		Title  string `json:"title"`
		Detail string `json:"detail"`
	} `json:"errors"`
}

// SearchNumbers lists purchasable numbers for an area code
func (c *Client) SearchNumbers(ctx context.Context, areaCode string) ([]AvailableNumber, error) {
	ctx, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()

	q := url.Values{}
	q.Set("filter[national_destination_code]", areaCode)
	q.Set("filter[country_code]", "US")
	q.Set("filter[limit]", "10")

	var response availableNumbersResponse
	if err := c.doRequest(ctx, "search_numbers", http.MethodGet, "/v2/available_phone_numbers?"+q.Encode(), nil, &response); err != nil {
		return nil, err
	}

	return response.Data, nil
}

// PurchaseNumber places a number order for a single phone number
func (c *Client) PurchaseNumber(ctx context.Context, phoneNumber string) (*OrderResult, error) {
	ctx, cancel := context.WithTimeout(ctx, purchaseTimeout)
	defer cancel()

	var request numberOrderRequest
	request.PhoneNumbers = []struct {
		PhoneNumber string `json:"phone_number"`
	}{{PhoneNumber: phoneNumber}}

	var response numberOrderResponse
	if err := c.doRequest(ctx, "purchase_number", http.MethodPost, "/v2/number_orders", request, &response); err != nil {
		return nil, err
	}

	result := &OrderResult{OrderID: response.Data.ID, PhoneNumber: phoneNumber}
	if len(response.Data.PhoneNumbers) > 0 {
		result.NumberID = response.Data.PhoneNumbers[0].ID
		result.PhoneNumber = response.Data.PhoneNumbers[0].PhoneNumber
	}

	log.Info().Str("order_id", result.OrderID).Str("number", result.PhoneNumber).Msg("Purchased number from provider")
	return result, nil
}

// AssignToConnection binds a purchased number to a voice connection and messaging profile
func (c *Client) AssignToConnection(ctx context.Context, numberID, connectionID, messagingProfileID string) error {
	ctx, cancel := context.WithTimeout(ctx, purchaseTimeout)
	defer cancel()

	request := updateNumberRequest{
		ConnectionID:       connectionID,
		MessagingProfileID: messagingProfileID,
	}

	return c.doRequest(ctx, "assign_to_connection", http.MethodPatch, "/v2/phone_numbers/"+url.PathEscape(numberID), request, nil)
}

// SendSMS submits an outbound SMS
func (c *Client) SendSMS(ctx context.Context, from, to, text string) (*MessageResult, error) {
	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	request := sendMessageRequest{From: from, To: to, Text: text}

	var response sendMessageResponse
	if err := c.doRequest(ctx, "send_sms", http.MethodPost, "/v2/messages", request, &response); err != nil {
		return nil, err
	}

	return &MessageResult{MessageID: response.Data.ID}, nil
}

// InitiateCall starts an outbound call leg with voice webhooks and
// answering-machine detection enabled
func (c *Client) InitiateCall(ctx context.Context, from, to, connectionID string) (*CallResult, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	request := createCallRequest{
		ConnectionID:              connectionID,
		To:                        to,
		From:                      from,
		WebhookURL:                c.voiceWebhookURL,
		AnsweringMachineDetection: "detect",
	}

	var response createCallResponse
	if err := c.doRequest(ctx, "initiate_call", http.MethodPost, "/v2/calls", request, &response); err != nil {
		return nil, err
	}

	log.Info().Str("call_control_id", response.Data.CallControlID).Str("to", to).Msg("Call initiated")
	return &CallResult{
		CallControlID: response.Data.CallControlID,
		CallLegID:     response.Data.CallLegID,
	}, nil
}

// doRequest performs one API round trip. Transport failures and non-2xx
// responses both come back as *ProviderError.
func (c *Client) doRequest(ctx context.Context, op, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &ProviderError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := fmt.Sprintf("provider returned status %d", resp.StatusCode)
		var apiErr errorResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && len(apiErr.Errors) > 0 {
			detail = apiErr.Errors[0].Title
			if apiErr.Errors[0].Detail != "" {
				detail = detail + ": " + apiErr.Errors[0].Detail
			}
		}
		return &ProviderError{Op: op, StatusCode: resp.StatusCode, Detail: detail}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &ProviderError{Op: op, StatusCode: resp.StatusCode, Detail: "failed to decode response", Err: err}
		}
	}

	return nil
}
