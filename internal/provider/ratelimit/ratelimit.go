package ratelimit

import (
	"context"
	"sync"
	"time"

	"rebalancer/internal/provider"
)

// Limiter blocks until the next upstream call may proceed.
type Limiter interface {
	Wait(ctx context.Context) error
}

// MinInterval enforces a minimum time between calls.
// Concurrent callers each reserve the next free slot and wait for it,
// or return early if the context is canceled.
type MinInterval struct {
	Interval time.Duration

	mu   sync.Mutex
	next time.Time
}

func NewMinInterval(d time.Duration) *MinInterval {
	return &MinInterval{Interval: d}
}

func (m *MinInterval) Wait(ctx context.Context) error {
	if m.Interval <= 0 {
		return ctx.Err()
	}
	m.mu.Lock()
	now := time.Now()
	slot := m.next
	if slot.Before(now) {
		slot = now
	}
	m.next = slot.Add(m.Interval)
	m.mu.Unlock()

	wait := time.Until(slot)
	if wait <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(wait)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Provider gates Fetch calls of the wrapped provider with L.
type Provider struct {
	P provider.Provider
	L Limiter
}

func (p *Provider) Name() string { return p.P.Name() }

func (p *Provider) Fetch(ctx context.Context, symbols []string) (map[string]provider.Quote, error) {
	if p.L != nil {
		if err := p.L.Wait(ctx); err != nil {
			return nil, err
		}
	}
	return p.P.Fetch(ctx, symbols)
}

// Checker gates Check calls of the wrapped checker with L. Share one Limiter
// between a Provider and a Checker backed by the same upstream.
type Checker struct {
	C provider.Checker
	L Limiter
}

func (c *Checker) Name() string { return c.C.Name() }

func (c *Checker) Check(ctx context.Context, symbol string) (bool, error) {
	if c.L != nil {
		if err := c.L.Wait(ctx); err != nil {
			return false, err
		}
	}
	return c.C.Check(ctx, symbol)
}

// Chain applies every non-nil limiter in order.
type Chain []Limiter

func (c Chain) Wait(ctx context.Context) error {
	for _, l := range c {
		if l == nil {
			continue
		}
		if err := l.Wait(ctx); err != nil {
			return err
		}
	}
	return nil
}
