package exchange

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrUnavailable is returned when the rate source cannot be reached or
// returns an unusable payload. Callers decide whether a stale cached rate is
// acceptable; this client never caches.
var ErrUnavailable = errors.New("exchange rate source unavailable")

// Quote holds the average, buy and sell rates for one currency pair.
type Quote struct {
	Average float64 `json:"average"`
	Buy     float64 `json:"buy"`
	Sell    float64 `json:"sell"`
}

// Rates is the payload published by the reference rate source.
type Rates struct {
	USD Quote `json:"usd"`
	EUR Quote `json:"eur"`
}

// Client fetches live VES reference rates over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a rate source client for the given endpoint URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Rates fetches the current reference rates.
func (c *Client) Rates(ctx context.Context) (*Rates, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	var rates Rates
	if err := json.NewDecoder(resp.Body).Decode(&rates); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if rates.USD.Average <= 0 {
		return nil, fmt.Errorf("%w: missing usd rate", ErrUnavailable)
	}

	return &rates, nil
}
