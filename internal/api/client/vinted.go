package client

import (
	"context"
	"net/url"
	"time"
)

// Quota is the server's outbound Vinted API budget.
type Quota struct {
	DailyLimit int64     `json:"daily_limit"`
	DailyUsed  int64     `json:"daily_used"`
	Remaining  int64     `json:"remaining"`
	ResetAt    time.Time `json:"reset_at"`
}

// GetQuota returns the server's API budget status.
func (c *Client) GetQuota(ctx context.Context) (*Quota, error) {
	var q Quota
	if err := c.get(ctx, "/api/v1/quota", &q); err != nil {
		return nil, err
	}
	return &q, nil
}

// AcquireCookie makes the server fetch and store a fresh session cookie
// for variant.
func (c *Client) AcquireCookie(ctx context.Context, variant string) (string, error) {
	var resp struct {
		Cookie string `json:"cookie"`
	}
	if err := c.post(ctx, "/api/v1/cookies/"+url.PathEscape(variant), nil, &resp); err != nil {
		return "", err
	}
	return resp.Cookie, nil
}

// ClearCookies drops the cookies stored by the server.
func (c *Client) ClearCookies(ctx context.Context) error {
	return c.del(ctx, "/api/v1/cookies", nil)
}
