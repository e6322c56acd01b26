package fitapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Register creates a new upstream account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	var user User
	if err := c.postJSON(ctx, ResourceAuth, "/auth/register", false, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login exchanges credentials for a bearer token. The upstream login endpoint
// is the one form-encoded call in the API.
func (c *Client) Login(ctx context.Context, username, password string) (*Token, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/auth/login", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var token Token
	if err := c.send(ctx, ResourceAuth, req, false, &token); err != nil {
		return nil, err
	}
	return &token, nil
}

// CurrentUser fetches the authenticated account profile.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.get(ctx, ResourceAuth, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile updates the editable profile fields and returns the updated
// account.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*User, error) {
	var user User
	if err := c.putJSON(ctx, ResourceAuth, "/auth/me", update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
