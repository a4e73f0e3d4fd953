package guestconfig

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"flatguide/internal/domain"
	"flatguide/internal/pkg/validator"
)

// Client fetches guest configurations from a deployed config service over
// HTTP. The native shell and the marketing site run against this; the API
// process itself uses the Repository directly.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Fetch retrieves and validates one configuration. A 404 maps to
// ErrNotFound; a 200 with a schema-invalid body maps to ErrInvalidConfig so
// the caller's transient-error path picks it up instead of the not-found
// path.
func (c *Client) Fetch(ctx context.Context, rid string) (*domain.GuestConfig, error) {
	u := c.baseURL + "/api/get-guest-config?rid=" + url.QueryEscape(rid)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("guest config fetch: unexpected status %d", resp.StatusCode)
	}

	var envelope struct {
		Success bool          `json:"success"`
		Data    *envelopeData `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if envelope.Data == nil {
		return nil, fmt.Errorf("%w: empty body", ErrInvalidConfig)
	}
	cfg := envelope.Data.Config

	if fields := validator.Validate(&cfg); fields != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, fields)
	}
	if err := cfg.ValidateStayWindow(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return &cfg, nil
}

type envelopeData struct {
	Config domain.GuestConfig `json:"config"`
}
