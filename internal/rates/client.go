// Package rates fetches exchange rates for the trip's display currency.
package rates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultBaseURL serves {"rates":{...}} documents at /latest/{base}.
	DefaultBaseURL = "https://open.er-api.com/v6"
	requestTimeout = 10 * time.Second
	maxBodySize    = 1 << 20 // 1 MB
)

var (
	// ErrUnauthorized indicates the API key is missing or rejected.
	ErrUnauthorized = errors.New("rates: unauthorized (API key missing or invalid)")
	// ErrRateLimited indicates the API rate limit was hit.
	ErrRateLimited = errors.New("rates: rate limited")
	// ErrMissingRate indicates the response had no usable rate for the pair.
	ErrMissingRate = errors.New("rates: currency not in response")
)

// Client fetches rates from a JSON exchange-rate API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	now     func() time.Time
}

// NewClient creates a client for baseURL, falling back to DefaultBaseURL.
// apiKey is optional and sent as a bearer token when set.
func NewClient(baseURL, apiKey string) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  strings.TrimSpace(apiKey),
		http:    &http.Client{},
		now:     time.Now,
	}
}

// Fetch returns the current base to secondary rate.
func (c *Client) Fetch(ctx context.Context, base, secondary string) (Quote, error) {
	base = strings.ToUpper(strings.TrimSpace(base))
	secondary = strings.ToUpper(strings.TrimSpace(secondary))
	if base == "" || secondary == "" {
		return Quote{}, errors.New("rates: base and secondary currency are required")
	}

	body, err := c.get(ctx, "/latest/"+base)
	if err != nil {
		return Quote{}, err
	}

	var raw latestResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return Quote{}, fmt.Errorf("rates: parsing response: %w", err)
	}
	if raw.Result != "" && raw.Result != "success" {
		return Quote{}, fmt.Errorf("rates: api returned %q", raw.Result)
	}

	rate, ok := parseRate(raw.Rates[secondary])
	if !ok {
		return Quote{}, fmt.Errorf("%w: %s", ErrMissingRate, secondary)
	}

	q := Quote{
		Base:      base,
		Secondary: secondary,
		Rate:      rate,
		FetchedAt: c.now(),
	}
	switch {
	case raw.Updated > 0:
		q.AsOf = time.Unix(raw.Updated, 0).UTC()
	case raw.Date != "":
		q.AsOf, _ = time.Parse("2006-01-02", raw.Date)
	}
	return q, nil
}

// get performs a GET request and returns the response body.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("rates: creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "github.com/theirongolddev/tripbudget/1.0")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rates: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrUnauthorized
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("rates: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("rates: reading response: %w", err)
	}
	return body, nil
}

// parseRate accepts a JSON number or a numeric string. Non-positive rates
// are rejected.
func parseRate(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 {
		return 0, false
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, false
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, false
		}
		f = v
	}

	if f <= 0 {
		return 0, false
	}
	return f, true
}
