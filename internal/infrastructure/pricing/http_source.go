package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	domainerrors "coin-desk.backend/internal/domain/errors"
)

// HTTPSource fetches quotes from a JSON market-data API. The endpoint is
// expected to answer GET {baseURL}/quotes?symbols=BTC,ETH with
// [{"symbol":"BTC","name":"Bitcoin","price":"43456.78","change24h":"2.34"}].
type HTTPSource struct {
	baseURL string
	apiKey  string
	symbols []string
	client  *http.Client
}

// NewHTTPSource creates a price source over an HTTP market-data API
func NewHTTPSource(baseURL, apiKey string, symbols []string) *HTTPSource {
	return &HTTPSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		symbols: symbols,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type quotePayload struct {
	Symbol    string          `json:"symbol"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Change24h decimal.Decimal `json:"change24h"`
}

func (s *HTTPSource) fetch(ctx context.Context, symbols []string) ([]Quote, error) {
	u := fmt.Sprintf("%s/quotes?symbols=%s", s.baseURL, url.QueryEscape(strings.Join(symbols, ",")))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	if s.apiKey != "" {
		req.Header.Set("X-API-Key", s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("price feed request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("price feed returned status %d", resp.StatusCode)
	}

	var payload []quotePayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("price feed decode: %w", err)
	}

	quotes := make([]Quote, 0, len(payload))
	for _, p := range payload {
		quotes = append(quotes, Quote{
			Symbol:    p.Symbol,
			Name:      p.Name,
			Price:     p.Price,
			Change24h: p.Change24h,
		})
	}
	return quotes, nil
}

// GetCurrentPrice fetches the price for one symbol
func (s *HTTPSource) GetCurrentPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	quotes, err := s.fetch(ctx, []string{symbol})
	if err != nil {
		return decimal.Zero, err
	}
	for _, q := range quotes {
		if q.Symbol == symbol {
			return q.Price, nil
		}
	}
	return decimal.Zero, domainerrors.ErrNotFound
}

// ListQuotes fetches all configured symbols
func (s *HTTPSource) ListQuotes(ctx context.Context) ([]Quote, error) {
	return s.fetch(ctx, s.symbols)
}
