package client

import (
	"context"
	"fmt"
)

// Usage returns the authenticated user's current-month usage summary
func (c *Client) Usage(ctx context.Context) (*UsageSummary, error) {
	var summary UsageSummary
	if err := c.doRequest(ctx, "GET", "/api/v1/usage", nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// NearLimit lists users close to their quota. Admin only.
func (c *Client) NearLimit(ctx context.Context) ([]UsageSummary, error) {
	var summaries []UsageSummary
	if err := c.doRequest(ctx, "GET", "/api/v1/admin/usage/near-limit", nil, &summaries); err != nil {
		return nil, err
	}
	return summaries, nil
}

// ResetUsage zeroes a user's current-month counters. Admin only.
func (c *Client) ResetUsage(ctx context.Context, userID int64) error {
	path := fmt.Sprintf("/api/v1/admin/usage/%d/reset", userID)
	return c.doRequest(ctx, "POST", path, nil, nil)
}
