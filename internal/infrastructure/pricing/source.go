package pricing

import (
	"context"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	domainerrors "coin-desk.backend/internal/domain/errors"
)

// Quote is a market price observation for one symbol.
type Quote struct {
	Symbol    string          `json:"symbol"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Change24h decimal.Decimal `json:"change24h"`
}

// Source provides current market prices. The trading workflow depends
// only on this interface: a live feed in production, a fixed table in
// tests.
type Source interface {
	GetCurrentPrice(ctx context.Context, symbol string) (decimal.Decimal, error)
	ListQuotes(ctx context.Context) ([]Quote, error)
}

// StaticSource serves prices from a fixed in-memory table.
type StaticSource struct {
	mu     sync.RWMutex
	quotes map[string]Quote
}

// NewStaticSource creates a source over the given quotes
func NewStaticSource(quotes []Quote) *StaticSource {
	m := make(map[string]Quote, len(quotes))
	for _, q := range quotes {
		m[q.Symbol] = q
	}
	return &StaticSource{quotes: m}
}

// NewDefaultStaticSource creates a source with the built-in symbol table
func NewDefaultStaticSource() *StaticSource {
	return NewStaticSource([]Quote{
		{Symbol: "BTC", Name: "Bitcoin", Price: decimal.RequireFromString("43456.78"), Change24h: decimal.RequireFromString("2.34")},
		{Symbol: "ETH", Name: "Ethereum", Price: decimal.RequireFromString("2345.67"), Change24h: decimal.RequireFromString("1.56")},
		{Symbol: "USDT", Name: "Tether", Price: decimal.RequireFromString("1.00"), Change24h: decimal.RequireFromString("0.01")},
		{Symbol: "BNB", Name: "Binance Coin", Price: decimal.RequireFromString("312.45"), Change24h: decimal.RequireFromString("-0.23")},
		{Symbol: "XRP", Name: "Ripple", Price: decimal.RequireFromString("0.5678"), Change24h: decimal.RequireFromString("3.21")},
		{Symbol: "ADA", Name: "Cardano", Price: decimal.RequireFromString("0.4321"), Change24h: decimal.RequireFromString("-1.45")},
		{Symbol: "SOL", Name: "Solana", Price: decimal.RequireFromString("98.76"), Change24h: decimal.RequireFromString("5.67")},
		{Symbol: "DOT", Name: "Polkadot", Price: decimal.RequireFromString("6.78"), Change24h: decimal.RequireFromString("-2.34")},
	})
}

// GetCurrentPrice returns the price for a symbol
func (s *StaticSource) GetCurrentPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q, ok := s.quotes[symbol]
	if !ok {
		return decimal.Zero, domainerrors.ErrNotFound
	}
	return q.Price, nil
}

// ListQuotes returns all quotes sorted by symbol
func (s *StaticSource) ListQuotes(ctx context.Context) ([]Quote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	quotes := make([]Quote, 0, len(s.quotes))
	for _, q := range s.quotes {
		quotes = append(quotes, q)
	}
	sort.Slice(quotes, func(i, j int) bool { return quotes[i].Symbol < quotes[j].Symbol })
	return quotes, nil
}

// SetQuotes replaces the table, used by the refresh job
func (s *StaticSource) SetQuotes(quotes []Quote) {
	m := make(map[string]Quote, len(quotes))
	for _, q := range quotes {
		m[q.Symbol] = q
	}
	s.mu.Lock()
	s.quotes = m
	s.mu.Unlock()
}
