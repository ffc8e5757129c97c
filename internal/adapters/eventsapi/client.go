// Package eventsapi fetches the public events listing over HTTP. The rendered
// pages consume the API through this client rather than querying the store
// directly.
package eventsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"eventbook/internal/domain"
)

type listingClient struct {
	baseURL string
	client  *http.Client
}

// NewListingClient returns a client that calls the events listing endpoint
// rooted at baseURL.
func NewListingClient(baseURL string, client *http.Client) domain.EventListingClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &listingClient{baseURL: baseURL, client: client}
}

type listingResponse struct {
	Events []*domain.EventSummary `json:"events"`
}

func (c *listingClient) FetchEvents(ctx context.Context) ([]*domain.EventSummary, error) {
	url := c.baseURL + "/api/events"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events listing: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("events listing returned status: %d", resp.StatusCode)
	}

	var data listingResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode events listing: %w", err)
	}
	return data.Events, nil
}
