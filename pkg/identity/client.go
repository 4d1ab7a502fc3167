package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"talent-onboarding-backend/internal/domain"
)

// Client is a thin wrapper over the upstream identity endpoint. It does not
// retry or cache.
type Client struct {
	url        string
	apiKey     string
	httpClient *http.Client
}

func NewClient(url, apiKey string) *Client {
	return &Client{
		url:        url,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchIdentity returns the user/session document for token.
func (c *Client) FetchIdentity(ctx context.Context, token string) (*domain.IdentityDocument, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("identity: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, domain.ErrIdentityRejected
	}
	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("identity: upstream status %d: %s", resp.StatusCode, body)
	}

	var doc domain.IdentityDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("identity: decode response: %w", err)
	}
	return &doc, nil
}
