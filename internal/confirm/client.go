// Package confirm is the storefront-client side of the checkout flow: a
// small HTTP client for the checkout and verification endpoints and the
// order-confirmation view state machine.
package confirm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"luxe-storefront/internal/models"
)

// Client calls the storefront API the way the web client does.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// VerifyResponse mirrors the verification endpoint body. Session is kept raw;
// the client only surfaces it, it never interprets provider metadata.
type VerifyResponse struct {
	Success       bool            `json:"success"`
	PaymentStatus string          `json:"payment_status"`
	Session       json.RawMessage `json:"session,omitempty"`
	Error         string          `json:"error,omitempty"`
}

// CreateCheckoutSession submits the cart and the tax-inclusive total and
// returns the session id and redirect URL.
func (c *Client) CreateCheckoutSession(ctx context.Context, items []models.CartItem, amountTotal float64) (*models.CreateCheckoutResponse, error) {
	req := models.CreateCheckoutRequest{CartItems: items, AmountTotal: amountTotal}

	var resp struct {
		models.CreateCheckoutResponse
		Error string `json:"error,omitempty"`
	}
	status, err := c.post(ctx, "/api/checkout", req, &resp)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("checkout failed: %s", errorText(resp.Error, status))
	}
	if resp.URL == "" {
		return nil, fmt.Errorf("invalid response from payment service")
	}
	return &resp.CreateCheckoutResponse, nil
}

// VerifyPayment asks the server to reconcile a checkout session. status may
// be empty or "cancelled".
func (c *Client) VerifyPayment(ctx context.Context, sessionID, status string) (*VerifyResponse, error) {
	req := models.VerifyPaymentRequest{SessionID: sessionID, Status: status}

	var resp VerifyResponse
	httpStatus, err := c.post(ctx, "/api/payments/verify", req, &resp)
	if err != nil {
		return nil, err
	}
	if httpStatus != http.StatusOK {
		return nil, fmt.Errorf("payment verification failed: %s", errorText(resp.Error, httpStatus))
	}
	return &resp, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) (int, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("decode response: %w", err)
	}
	return resp.StatusCode, nil
}

func errorText(message string, status int) string {
	if message != "" {
		return message
	}
	return fmt.Sprintf("unexpected status %d", status)
}
