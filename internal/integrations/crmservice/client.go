package crmservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Logger is the leveled printf logger the client reports through.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client talks to the CRM customer directory over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient creates a CRM directory client.
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetTier fetches a customer pricing tier by id.
func (c *Client) GetTier(ctx context.Context, tierID string) (*Tier, error) {
	endpoint := fmt.Sprintf("%s/internal/tiers/%s", c.baseURL, url.PathEscape(tierID))

	var tier Tier
	if err := c.getJSON(ctx, endpoint, &tier); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, ErrTierNotFound
		}
		return nil, err
	}
	return &tier, nil
}

// GetPromo resolves a discount code.
func (c *Client) GetPromo(ctx context.Context, code string) (*Promo, error) {
	endpoint := fmt.Sprintf("%s/internal/promos/%s", c.baseURL, url.PathEscape(code))

	var promo Promo
	if err := c.getJSON(ctx, endpoint, &promo); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, ErrPromoNotFound
		}
		return nil, err
	}
	return &promo, nil
}

// errNotFound is internal to getJSON; exported sentinels are mapped per call.
var errNotFound = errors.New("crmservice: not found")

func (c *Client) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to decode
	case http.StatusNotFound:
		return errNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return nil
}
