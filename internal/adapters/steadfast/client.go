// Package steadfast is the courier gateway client: order creation, tracking,
// the per-number fraud-check counters and the balance probe used to validate
// credentials. Authentication is per-request Api-Key/Secret-Key headers.
package steadfast

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/viralforge/courierdesk/internal/domain"
	"github.com/viralforge/courierdesk/internal/ports"
)

type Config struct {
	BaseURL    string
	HTTPClient *http.Client
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://portal.packzy.com/api/v1"
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

type createOrderResponse struct {
	Status      int                 `json:"status"`
	Message     string              `json:"message"`
	Errors      map[string][]string `json:"errors"`
	Consignment *consignmentPayload `json:"consignment"`
}

type consignmentPayload struct {
	ConsignmentID  json.Number `json:"consignment_id"`
	Invoice        string      `json:"invoice"`
	TrackingCode   string      `json:"tracking_code"`
	DeliveryStatus string      `json:"status"`
}

func (c *Client) CreateOrder(ctx context.Context, creds domain.Credentials, order ports.OrderRequest) (*ports.GatewayResult, error) {
	body, err := json.Marshal(order)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/create_order", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	c.setHeaders(req, creds)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if !isJSONResponse(resp) {
		return nil, nonJSONError(resp.StatusCode)
	}

	var payload createOrderResponse
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("create order response: %w", err)
	}
	result := &ports.GatewayResult{Status: payload.Status, Message: payload.Message, Errors: payload.Errors}
	if payload.Consignment != nil {
		result.Consignment = &ports.ConsignmentInfo{
			ConsignmentID:  payload.Consignment.ConsignmentID.String(),
			Invoice:        payload.Consignment.Invoice,
			TrackingCode:   payload.Consignment.TrackingCode,
			DeliveryStatus: payload.Consignment.DeliveryStatus,
		}
	}
	return result, nil
}

type statusResponse struct {
	Status         int    `json:"status"`
	DeliveryStatus string `json:"delivery_status"`
}

func (c *Client) StatusByConsignment(ctx context.Context, creds domain.Credentials, consignmentID string) (*ports.ConsignmentInfo, error) {
	return c.status(ctx, creds, "/status_by_cid/"+consignmentID, consignmentID)
}

func (c *Client) StatusByInvoice(ctx context.Context, creds domain.Credentials, invoice string) (*ports.ConsignmentInfo, error) {
	return c.status(ctx, creds, "/status_by_invoice/"+invoice, "")
}

func (c *Client) status(ctx context.Context, creds domain.Credentials, path, consignmentID string) (*ports.ConsignmentInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req, creds)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("parcel status: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrNotFound
	}
	var payload statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("parcel status response: %w", err)
	}
	return &ports.ConsignmentInfo{ConsignmentID: consignmentID, DeliveryStatus: payload.DeliveryStatus}, nil
}

// FraudCheck returns the raw counter payload; field coercion stays in domain
// because the upstream mixes strings and numbers.
func (c *Client) FraudCheck(ctx context.Context, creds domain.Credentials, phone string) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/fraud_check/"+phone, nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req, creds)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fraud check: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: fraud check returned HTTP %d", domain.ErrDependencyUnavailable, resp.StatusCode)
	}
	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("fraud check response: %w", err)
	}
	return payload, nil
}

type balanceResponse struct {
	Status         int     `json:"status"`
	CurrentBalance float64 `json:"current_balance"`
	Message        string  `json:"message"`
}

func (c *Client) Balance(ctx context.Context, creds domain.Credentials) (*ports.BalanceResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/get_balance", nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req, creds)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get balance: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return &ports.BalanceResult{Status: resp.StatusCode}, nil
	}
	var payload balanceResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return &ports.BalanceResult{Status: resp.StatusCode, Message: "unexpected API response"}, nil
	}
	status := payload.Status
	if status == 0 {
		status = resp.StatusCode
	}
	return &ports.BalanceResult{Status: status, Balance: payload.CurrentBalance, Message: payload.Message}, nil
}

func (c *Client) setHeaders(req *http.Request, creds domain.Credentials) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Api-Key", creds.APIKey)
	req.Header.Set("Secret-Key", creds.SecretKey)
}

func isJSONResponse(resp *http.Response) bool {
	return strings.Contains(resp.Header.Get("Content-Type"), "application/json")
}

// nonJSONError translates a non-JSON gateway response into a readable hint.
// The portal serves HTML error pages for several failure modes.
func nonJSONError(status int) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("%w: invalid Api-Key or Secret-Key", domain.ErrMissingCredentials)
	case status == http.StatusNotFound:
		return fmt.Errorf("%w: courier API endpoint not found", domain.ErrDependencyUnavailable)
	case status >= 500:
		return fmt.Errorf("%w: courier server error (duplicate invoice or maintenance)", domain.ErrDependencyUnavailable)
	default:
		return fmt.Errorf("%w: courier API returned HTTP %s", domain.ErrDependencyUnavailable, strconv.Itoa(status))
	}
}
