// Package hoorin implements the multi-courier delivery-history feed. The
// upstream keys its Summaries object by courier display name with per-courier
// counter field names; reshaping happens in domain.
package hoorin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/viralforge/courierdesk/internal/domain"
	"github.com/viralforge/courierdesk/internal/ports"
)

type Config struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: cfg.BaseURL, apiKey: cfg.APIKey, httpClient: httpClient}
}

func (c *Client) Search(ctx context.Context, phone string) (*ports.AggregatorResult, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: aggregator api key not configured", domain.ErrDependencyUnavailable)
	}
	q := url.Values{}
	q.Set("apiKey", c.apiKey)
	q.Set("searchTerm", phone)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("aggregator search: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: aggregator returned HTTP %d", domain.ErrDependencyUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("aggregator response: %w", err)
	}

	result := &ports.AggregatorResult{Summaries: map[string]map[string]any{}, Payload: payload}
	if summaries, ok := payload["Summaries"].(map[string]any); ok {
		for name, v := range summaries {
			if fields, ok := v.(map[string]any); ok {
				result.Summaries[name] = fields
			}
		}
	}
	return result, nil
}
