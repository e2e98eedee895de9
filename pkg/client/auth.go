package client

import "context"

// Login authenticates with email and password and stores the access token
// on the client for subsequent requests
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	body := map[string]string{"email": email, "password": password}

	var resp AuthResponse
	if err := c.doRequest(ctx, "POST", "/api/v1/auth/login", body, &resp); err != nil {
		return nil, err
	}

	c.SetToken(resp.AccessToken)
	return &resp, nil
}

// Register creates a new account and stores the access token
func (c *Client) Register(ctx context.Context, email, password, fullName string) (*AuthResponse, error) {
	body := map[string]string{"email": email, "password": password}
	if fullName != "" {
		body["fullName"] = fullName
	}

	var resp AuthResponse
	if err := c.doRequest(ctx, "POST", "/api/v1/auth/register", body, &resp); err != nil {
		return nil, err
	}

	c.SetToken(resp.AccessToken)
	return &resp, nil
}

// Me returns the authenticated user's profile
func (c *Client) Me(ctx context.Context) (*User, error) {
	var u User
	if err := c.doRequest(ctx, "GET", "/api/v1/auth/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
