package cartsink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/log"
)

const defaultTimeout = 30 * time.Second

// Config holds connection parameters for the cart service.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client is a minimal HTTP client for the cart service.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	debug      bool
}

// NewClient constructs a cart sink client with sane defaults.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		debug:      os.Getenv("ENV") == "development",
	}
}

// AddItem forwards an add-to-cart request to the cart service.
func (c *Client) AddItem(ctx context.Context, req AddItemRequest) (*AddItemResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	if c.debug {
		log.Debug().
			Str("endpoint", c.baseURL+"/cart/items").
			RawJSON("request", payload).
			Msg("[CARTSINK] Outgoing request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/cart/items", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("cart sink returned status %d", resp.StatusCode)
	}

	var result AddItemResponse
	if len(body) > 0 {
		if err := json.Unmarshal(body, &result); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return &result, nil
}
