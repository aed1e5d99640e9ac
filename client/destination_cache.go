package client

import (
	"context"
	"strings"
	"sync"
)

// Destination is the canonical reference entry after boundary
// normalization. ID stays a string because the server serializes snowflake
// ids as strings and historic rows used arbitrary ids.
type Destination struct {
	ID              string `json:"id"`
	DestinationName string `json:"destinationName"`
	DestinationCode string `json:"destinationCode"`
	EmailID         string `json:"emailID"`
	IsActive        bool   `json:"isActive"`
}

type fetchFunc func(ctx context.Context) ([]Destination, error)

// pendingFetch tracks one in-flight load. Waiters block on done and read
// result/err afterwards. A cancelled fetch still settles its waiters but is
// not allowed to populate the cache.
type pendingFetch struct {
	done      chan struct{}
	result    []Destination
	err       error
	cancelled bool
}

// DestinationCache holds per-session destination lists with in-flight
// coalescing: concurrent loads for the same key share a single request.
type DestinationCache struct {
	mu      sync.Mutex
	entries map[string][]Destination
	pending map[string]*pendingFetch
}

func NewDestinationCache() *DestinationCache {
	return &DestinationCache{
		entries: make(map[string][]Destination),
		pending: make(map[string]*pendingFetch),
	}
}

func cacheKey(sessionKey, mode string) string {
	return sessionKey + ":" + mode
}

// Get returns the cached list for the key, loading it through fetch on a
// miss (or when force is set). Concurrent callers for the same key wait on
// the first caller's fetch instead of issuing their own. force only skips
// the cached copy: a force call arriving while a fetch is in flight joins
// that fetch rather than starting a second one, since its result is just as
// fresh.
func (dc *DestinationCache) Get(ctx context.Context, sessionKey, mode string, force bool, fetch fetchFunc) ([]Destination, error) {
	key := cacheKey(sessionKey, mode)

	dc.mu.Lock()
	if !force {
		if cached, ok := dc.entries[key]; ok {
			out := copyDestinations(cached)
			dc.mu.Unlock()
			return out, nil
		}
	}

	if p, ok := dc.pending[key]; ok {
		dc.mu.Unlock()
		select {
		case <-p.done:
			if p.err != nil {
				return nil, p.err
			}
			return copyDestinations(p.result), nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	p := &pendingFetch{done: make(chan struct{})}
	dc.pending[key] = p
	dc.mu.Unlock()

	result, err := fetch(ctx)

	dc.mu.Lock()
	p.result, p.err = result, err
	if err == nil && !p.cancelled {
		dc.entries[key] = copyDestinations(result)
	}
	if dc.pending[key] == p {
		delete(dc.pending, key)
	}
	close(p.done)
	dc.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return result, nil
}

// Invalidate drops every cached list and in-flight fetch under the given
// session keys. Waiters on a cancelled fetch still receive its data; it just
// never lands in the cache.
func (dc *DestinationCache) Invalidate(sessionKeys ...string) {
	dc.mu.Lock()
	defer dc.mu.Unlock()

	for _, sessionKey := range sessionKeys {
		if sessionKey == "" {
			continue
		}
		prefix := sessionKey + ":"
		for key := range dc.entries {
			if strings.HasPrefix(key, prefix) {
				delete(dc.entries, key)
			}
		}
		for key, p := range dc.pending {
			if strings.HasPrefix(key, prefix) {
				p.cancelled = true
				delete(dc.pending, key)
			}
		}
	}
}

// Upsert replaces a cached entry matched by id, else by case-insensitive
// code, else appends. A cold cache stays cold: nothing is fabricated.
func (dc *DestinationCache) Upsert(sessionKey string, d Destination) {
	dc.mu.Lock()
	defer dc.mu.Unlock()

	prefix := sessionKey + ":"
	for key, cached := range dc.entries {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		replaced := false
		for i := range cached {
			if cached[i].ID == d.ID ||
				strings.EqualFold(cached[i].DestinationCode, d.DestinationCode) {
				cached[i] = d
				replaced = true
				break
			}
		}
		if !replaced {
			cached = append(cached, d)
		}
		dc.entries[key] = cached
	}
}

// Warm populates the key only when it is empty.
func (dc *DestinationCache) Warm(ctx context.Context, sessionKey, mode string, fetch fetchFunc) {
	key := cacheKey(sessionKey, mode)

	dc.mu.Lock()
	_, cached := dc.entries[key]
	dc.mu.Unlock()
	if cached {
		return
	}

	// best effort, errors surface on the next Get
	_, _ = dc.Get(ctx, sessionKey, mode, false, fetch)
}

func copyDestinations(src []Destination) []Destination {
	out := make([]Destination, len(src))
	copy(out, src)
	return out
}
