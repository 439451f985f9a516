package cache

import (
	"context"
	"sync"
	"time"

	"rebalancer/internal/provider"
)

// entry stores the cached quote for a single symbol with expiry.
type entry struct {
	expiresAt time.Time
	quote     provider.Quote
}

// Provider caches results per symbol for a TTL.
// It requests only missing symbols from the underlying provider and
// combines cached + fresh results. Misses are not cached, so a symbol the
// provider could not price is asked for again on the next call.
type Provider struct {
	P        provider.Provider
	TTL      time.Duration
	MaxItems int

	// now is swapped in tests.
	now func() time.Time

	mu    sync.RWMutex
	items map[string]entry // key: symbol
}

func (c *Provider) Name() string { return c.P.Name() }

func (c *Provider) clock() time.Time {
	if c.now != nil {
		return c.now()
	}
	return time.Now()
}

// Fetch returns quotes for requested symbols using cache when valid.
func (c *Provider) Fetch(ctx context.Context, symbols []string) (map[string]provider.Quote, error) {
	if c.TTL <= 0 {
		return c.P.Fetch(ctx, symbols)
	}

	now := c.clock()
	out := make(map[string]provider.Quote, len(symbols))
	missing := make([]string, 0, len(symbols))
	seen := make(map[string]struct{}, len(symbols))

	c.mu.RLock()
	for _, s := range symbols {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		if e, ok := c.items[s]; ok && now.Before(e.expiresAt) {
			out[s] = e.quote
			continue
		}
		missing = append(missing, s)
	}
	c.mu.RUnlock()

	// If everything is cached, return quickly
	if len(missing) == 0 {
		return out, nil
	}

	fresh, err := c.P.Fetch(ctx, missing)
	if err != nil {
		// If we have at least some cached data, return it rather than failing entirely
		if len(out) > 0 {
			return out, nil
		}
		return nil, err
	}

	expiry := now.Add(c.TTL)
	c.mu.Lock()
	if c.items == nil {
		c.items = make(map[string]entry, len(fresh))
	}
	for _, s := range missing {
		q, ok := fresh[s]
		if !ok {
			continue
		}
		c.items[s] = entry{expiresAt: expiry, quote: q}
		out[s] = q
	}
	c.evictLocked(now)
	c.mu.Unlock()

	return out, nil
}

// evictLocked caps the cache size: expired entries go first, then arbitrary ones.
func (c *Provider) evictLocked(now time.Time) {
	if c.MaxItems <= 0 || len(c.items) <= c.MaxItems {
		return
	}
	for k, v := range c.items {
		if now.After(v.expiresAt) {
			delete(c.items, k)
		}
	}
	for k := range c.items {
		if len(c.items) <= c.MaxItems {
			break
		}
		delete(c.items, k)
	}
}

// Len reports the number of cached symbols, expired or not.
func (c *Provider) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
