package client

import (
	"context"

	"github.com/donaldgifford/vinted-search/internal/api/handlers"
)

// ListWatches returns the watches configured on the server.
func (c *Client) ListWatches(ctx context.Context) ([]handlers.WatchSummary, error) {
	var watches []handlers.WatchSummary
	if err := c.get(ctx, "/api/v1/watches", &watches); err != nil {
		return nil, err
	}
	return watches, nil
}

// PollWatches asks the server to poll every watch now and waits for the
// cycle to finish.
func (c *Client) PollWatches(ctx context.Context) (string, error) {
	var resp handlers.StatusResponse
	if err := c.post(ctx, "/api/v1/watches/poll", nil, &resp); err != nil {
		return "", err
	}
	return resp.Status, nil
}
