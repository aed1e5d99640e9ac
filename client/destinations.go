package client

import (
	"context"
	"fmt"
)

const (
	modeAll    = "all"
	modeActive = "active"
)

type destinationListResponse struct {
	Success bool                     `json:"success"`
	Message string                   `json:"message"`
	Data    []map[string]interface{} `json:"data"`
}

func (c *Client) fetchDestinations(activeOnly bool) fetchFunc {
	path := "/api/v1/dest/"
	if activeOnly {
		path += "?active=1"
	}
	return func(ctx context.Context) ([]Destination, error) {
		var resp destinationListResponse
		if err := c.doJSON(ctx, "GET", path, nil, &resp); err != nil {
			return nil, err
		}
		if !resp.Success {
			return nil, fmt.Errorf("destination fetch rejected: %s", resp.Message)
		}
		out := make([]Destination, 0, len(resp.Data))
		for _, raw := range resp.Data {
			out = append(out, normalizeDestination(raw))
		}
		return out, nil
	}
}

// Destinations returns the reference list for the current session, cached
// per session with in-flight coalescing. force bypasses the cached copy.
func (c *Client) Destinations(ctx context.Context, activeOnly, force bool) ([]Destination, error) {
	mode := modeAll
	if activeOnly {
		mode = modeActive
	}
	return c.destinations.Get(ctx, c.sessionKey(), mode, force, c.fetchDestinations(activeOnly))
}

// WarmDestinations prefetches both reference lists when they are cold, so
// the first form render does not pay the fetch.
func (c *Client) WarmDestinations(ctx context.Context) {
	key := c.sessionKey()
	c.destinations.Warm(ctx, key, modeAll, c.fetchDestinations(false))
	c.destinations.Warm(ctx, key, modeActive, c.fetchDestinations(true))
}

type DestinationInput struct {
	DestinationName string `json:"destinationName"`
	DestinationCode string `json:"destinationCode"`
	EmailID         string `json:"emailID,omitempty"`
	IsActive        *bool  `json:"isActive,omitempty"`
}

type destinationCreateResponse struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data"`
}

// CreateDestination creates the entry and folds it into any cached lists of
// the current session; a cold cache is left untouched.
func (c *Client) CreateDestination(ctx context.Context, input DestinationInput) (Destination, error) {
	var resp destinationCreateResponse
	if err := c.doJSON(ctx, "POST", "/api/v1/dest/create", input, &resp); err != nil {
		return Destination{}, err
	}
	if !resp.Success {
		return Destination{}, fmt.Errorf("destination creation rejected: %s", resp.Message)
	}

	created := normalizeDestination(resp.Data)
	c.destinations.Upsert(c.sessionKey(), created)
	return created, nil
}
