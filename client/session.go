package client

import (
	"context"
	"fmt"
	"strings"
)

// SessionIdentity is the logged-in user as the cache and lifecycle
// operations see it. Email is always lower-cased so it can double as a
// stable cache key.
type SessionIdentity struct {
	Email string
	Name  string
	Role  string
}

type loginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"x_token"`
	User    struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Role  string `json:"role"`
	} `json:"user"`
}

// Login authenticates and installs the session identity. The previous
// session's cache entries are dropped so the new user never sees them.
func (c *Client) Login(ctx context.Context, email, password string) (*SessionIdentity, error) {
	payload := map[string]string{"email": email, "password": password}

	var resp loginResponse
	if err := c.doJSON(ctx, "POST", "/api/v1/auth/login", payload, &resp); err != nil {
		return nil, err
	}
	if !resp.Success || resp.Token == "" {
		return nil, fmt.Errorf("login rejected: %s", resp.Message)
	}

	identity := &SessionIdentity{
		Email: strings.ToLower(strings.TrimSpace(resp.User.Email)),
		Name:  resp.User.Name,
		Role:  resp.User.Role,
	}

	c.mu.Lock()
	previous := ""
	if c.session != nil {
		previous = c.session.Email
	}
	c.token = resp.Token
	c.session = identity
	c.mu.Unlock()

	c.destinations.Invalidate(previous, anonymousKey)

	return identity, nil
}

// Logout clears the identity and invalidates every plausible cache key,
// including in-flight fetches, so a late response cannot repopulate the
// cache for the next user.
func (c *Client) Logout(ctx context.Context) error {
	c.mu.Lock()
	key := anonymousKey
	if c.session != nil && c.session.Email != "" {
		key = c.session.Email
	}
	c.mu.Unlock()

	err := c.doJSON(ctx, "GET", "/api/v1/auth/logout", nil, nil)

	c.mu.Lock()
	c.token = ""
	c.session = nil
	c.mu.Unlock()

	c.destinations.Invalidate(key, anonymousKey)

	return err
}
