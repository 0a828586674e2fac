package collector

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"MarketScout/internal/logger"
	"MarketScout/internal/model"
)

const (
	// DefaultBaseURL is the endpoint prefix; the symbol is appended as the last path segment.
	DefaultBaseURL = "https://api.example.com"
	// CredentialKey names the secret used for the Authorization header.
	CredentialKey = "ALPHA_VANTAGE"
)

// ErrMissingCredential is returned by New when the credential mapping lacks CredentialKey.
var ErrMissingCredential = errors.New("missing credential")

// Collector fetches and normalizes market data for a list of symbols.
type Collector struct {
	baseURL string
	client  HTTPClient
	header  http.Header
	log     zerolog.Logger
}

// Option configures a Collector.
type Option func(*Collector)

// WithBaseURL overrides DefaultBaseURL.
func WithBaseURL(baseURL string) Option {
	return func(c *Collector) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient sets the transport.
func WithHTTPClient(client HTTPClient) Option {
	return func(c *Collector) {
		c.client = client
	}
}

// New creates a Collector. The Authorization header is derived once from
// credentials[CredentialKey].
func New(credentials map[string]string, opts ...Option) (*Collector, error) {
	secret, ok := credentials[CredentialKey]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingCredential, CredentialKey)
	}

	c := &Collector{
		baseURL: DefaultBaseURL,
		client:  NewHTTPClient(DefaultTimeout, ""),
		header:  http.Header{},
		log:     logger.L().With().Str("component", "collector").Logger(),
	}
	c.header.Set("Content-Type", "application/json")
	c.header.Set("Authorization", "Bearer "+secret)

	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Endpoint builds the endpoint reference for symbol.
func (c *Collector) Endpoint(symbol string) string {
	return c.baseURL + "/" + url.PathEscape(symbol)
}

// Collect fetches and normalizes each symbol in order. Symbols that fail
// either step are left out of the result.
func (c *Collector) Collect(ctx context.Context, symbols []string) model.CollectionResult {
	result := make(model.CollectionResult, len(symbols))
	for _, symbol := range symbols {
		raw, ok := c.Fetch(ctx, c.Endpoint(symbol))
		if !ok {
			continue
		}
		rec, ok := Normalize(raw)
		if !ok {
			c.log.Warn().Str("symbol", symbol).Msg("dropping symbol with unusable response")
			continue
		}
		result[symbol] = rec
	}
	c.log.Info().Int("requested", len(symbols)).Int("collected", len(result)).Msg("collection finished")
	return result
}

// Normalize extracts data.symbol and data.price from raw. It returns false
// when that path is missing or holds values of the wrong type.
func Normalize(raw RawData) (model.SymbolRecord, bool) {
	log := logger.L().With().Str("component", "collector").Logger()

	data, ok := raw["data"].(map[string]any)
	if !ok {
		log.Error().Msg("invalid data structure received: missing data object")
		return model.SymbolRecord{}, false
	}
	symbol, ok := data["symbol"].(string)
	if !ok {
		log.Error().Msg("invalid data structure received: missing data.symbol")
		return model.SymbolRecord{}, false
	}
	price, err := model.ParsePrice(data["price"])
	if err != nil {
		log.Error().Err(err).Str("symbol", symbol).Msg("invalid data structure received: bad data.price")
		return model.SymbolRecord{}, false
	}
	return model.SymbolRecord{Symbol: symbol, Price: price}, true
}
