package client

import (
	"context"
	"fmt"
)

// Settings lists all stored settings. Admin only.
func (c *Client) Settings(ctx context.Context) ([]Setting, error) {
	var settings []Setting
	if err := c.doRequest(ctx, "GET", "/api/v1/admin/settings", nil, &settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// SetSetting upserts one setting by key. Admin only.
func (c *Client) SetSetting(ctx context.Context, key, value, description string) error {
	body := map[string]string{"value": value}
	if description != "" {
		body["description"] = description
	}

	path := fmt.Sprintf("/api/v1/admin/settings/%s", key)
	return c.doRequest(ctx, "PUT", path, body, nil)
}

// InitializeSettings resets every setting to its shipped default. Admin only.
func (c *Client) InitializeSettings(ctx context.Context) error {
	return c.doRequest(ctx, "POST", "/api/v1/admin/settings/initialize", nil, nil)
}

// Plans lists plan tiers with live prices
func (c *Client) Plans(ctx context.Context) ([]Plan, error) {
	var resp struct {
		Plans []Plan `json:"plans"`
	}
	if err := c.doRequest(ctx, "GET", "/api/v1/billing/plans", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Plans, nil
}
