package pricing

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	domainerrors "coin-desk.backend/internal/domain/errors"
)

// CachedSource wraps a Source and keeps the last good snapshot for up to
// ttl, so one feed hiccup does not fail every trade close in flight.
type CachedSource struct {
	upstream Source
	ttl      time.Duration

	mu        sync.RWMutex
	quotes    map[string]Quote
	fetchedAt time.Time
}

// NewCachedSource creates a caching wrapper around upstream
func NewCachedSource(upstream Source, ttl time.Duration) *CachedSource {
	return &CachedSource{
		upstream: upstream,
		ttl:      ttl,
		quotes:   make(map[string]Quote),
	}
}

// Refresh pulls a fresh snapshot from upstream and returns it
func (c *CachedSource) Refresh(ctx context.Context) ([]Quote, error) {
	quotes, err := c.upstream.ListQuotes(ctx)
	if err != nil {
		return nil, err
	}

	m := make(map[string]Quote, len(quotes))
	for _, q := range quotes {
		m[q.Symbol] = q
	}

	c.mu.Lock()
	c.quotes = m
	c.fetchedAt = time.Now()
	c.mu.Unlock()

	return quotes, nil
}

func (c *CachedSource) snapshot() (map[string]Quote, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if time.Since(c.fetchedAt) > c.ttl {
		return nil, false
	}
	return c.quotes, true
}

// GetCurrentPrice returns the cached price, refreshing when stale
func (c *CachedSource) GetCurrentPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	if quotes, ok := c.snapshot(); ok {
		if q, found := quotes[symbol]; found {
			return q.Price, nil
		}
		return decimal.Zero, domainerrors.ErrNotFound
	}

	if _, err := c.Refresh(ctx); err != nil {
		return decimal.Zero, err
	}

	quotes, _ := c.snapshot()
	if q, found := quotes[symbol]; found {
		return q.Price, nil
	}
	return decimal.Zero, domainerrors.ErrNotFound
}

// ListQuotes returns the cached snapshot, refreshing when stale
func (c *CachedSource) ListQuotes(ctx context.Context) ([]Quote, error) {
	if quotes, ok := c.snapshot(); ok {
		out := make([]Quote, 0, len(quotes))
		for _, q := range quotes {
			out = append(out, q)
		}
		return out, nil
	}
	return c.Refresh(ctx)
}
