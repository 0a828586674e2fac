package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// MaxAttempts is the number of requests made per endpoint before giving up.
const MaxAttempts = 3

// RawData is a decoded JSON response body.
type RawData map[string]any

// Fetch retrieves endpoint, retrying immediately on any non-200 status or
// transport failure. It returns false once every attempt has failed; the
// cause is only reported in the logs. A 200 whose body is JSON but not an
// object returns (nil, true).
func (c *Collector) Fetch(ctx context.Context, endpoint string) (RawData, bool) {
	log := c.log.With().Str("endpoint", endpoint).Logger()

	for attempt := 1; attempt <= MaxAttempts; attempt++ {
		if ctx.Err() != nil {
			log.Warn().Err(ctx.Err()).Int("attempt", attempt).Msg("fetch abandoned")
			return nil, false
		}
		raw, status, err := c.fetchOnce(ctx, endpoint)
		switch {
		case err != nil:
			log.Error().Err(err).Int("attempt", attempt).Msg("exception during data fetch")
		case status != http.StatusOK:
			log.Warn().Int("attempt", attempt).Int("status", status).Msg("fetch attempt failed")
		default:
			return raw, true
		}
	}

	log.Warn().Int("attempts", MaxAttempts).Msg("all fetch attempts failed")
	return nil, false
}

func (c *Collector) fetchOnce(ctx context.Context, endpoint string) (RawData, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}
	req.Header = c.header.Clone()

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, resp.StatusCode, nil
	}

	var body any
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("decode body: %w", err)
	}
	// Valid JSON that is not an object still ends the attempts; Normalize drops it.
	obj, ok := body.(map[string]any)
	if !ok {
		c.log.Warn().Str("endpoint", endpoint).Str("type", fmt.Sprintf("%T", body)).Msg("response body is not an object")
		return nil, resp.StatusCode, nil
	}
	return RawData(obj), resp.StatusCode, nil
}
