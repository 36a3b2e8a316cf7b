package productsource

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

	"github.com/velora/storefront_api/internal/models"
)

const defaultTimeout = 30 * time.Second

// Config holds connection parameters for the product source service.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client is a minimal HTTP client for the upstream product catalog.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	debug      bool
}

// NewClient constructs a product source client with sane defaults.
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

// ListProducts fetches the product list for the given query. The response is
// expected to be a JSON array of products; any other valid JSON shape is
// coerced to an empty list rather than treated as an error. Network errors,
// non-success statuses and malformed bodies are returned as errors so callers
// can keep their previous snapshot.
func (c *Client) ListProducts(ctx context.Context, q Query) ([]models.Product, error) {
	endpoint := c.baseURL + "/products"
	vals := url.Values{}
	if q.Category != "" {
		vals.Set("category", q.Category)
	}
	if q.Search != "" {
		vals.Set("search", q.Search)
	}
	if q.Featured {
		vals.Set("featured", "true")
	}
	if q.InStock {
		vals.Set("inStock", "true")
	}
	if enc := vals.Encode(); enc != "" {
		endpoint += "?" + enc
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if c.debug {
		log.Debug().
			Str("endpoint", endpoint).
			Int("status_code", resp.StatusCode).
			Msg("[PRODUCTSOURCE] Incoming response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("product source returned status %d", resp.StatusCode)
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		// The catalog occasionally answers with an error object on a 200.
		if !json.Valid(trimmed) && len(trimmed) > 0 {
			return nil, fmt.Errorf("malformed product source response")
		}
		log.Warn().Str("endpoint", endpoint).Msg("product source returned a non-array body, treating as no products")
		return []models.Product{}, nil
	}

	var products []models.Product
	if err := json.Unmarshal(trimmed, &products); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return products, nil
}
