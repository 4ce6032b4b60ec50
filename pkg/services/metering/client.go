// Package metering talks to the observability vendor's usage-metering
// API. Responses are decoded to plain any values; the usage service owns
// the shape handling.
package metering

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/costguard/costguard/pkg/services/ratelimit"
)

// ErrRateLimited marks a 429 from the vendor or an exhausted local token
// window. Batch fetchers cancel their remaining work when they see it.
var ErrRateLimited = errors.New("vendor rate limit exhausted")

// hourFormat is the granularity the hourly-usage endpoint accepts.
const hourFormat = "2006-01-02T15"

// Client fetches raw usage payloads for one product family over a time
// range.
type Client interface {
	FetchHourlyUsage(ctx context.Context, productFamily string, start, end time.Time) (any, error)
}

// Credentials carry the vendor API key pair.
type Credentials struct {
	APIKey string
	AppKey string
}

// TokenGate is consulted before each network call. A denied result means
// the caller must back off until ResetAt.
type TokenGate interface {
	Allow() GateResult
}

type GateResult struct {
	Allowed bool
	ResetAt time.Time
}

// GateFromLimiter adapts the process-local rate limiter to the gate
// consulted before each call.
func GateFromLimiter(g *ratelimit.Gate) TokenGate {
	return limiterGate{g: g}
}

type limiterGate struct {
	g *ratelimit.Gate
}

func (l limiterGate) Allow() GateResult {
	res := l.g.Allow()
	return GateResult{Allowed: res.Allowed, ResetAt: res.ResetAt}
}

type httpClient struct {
	baseURL string
	creds   Credentials
	gate    TokenGate
	client  *http.Client
}

func NewHTTPClient(baseURL string, creds Credentials, gate TokenGate) Client {
	return &httpClient{
		baseURL: baseURL,
		creds:   creds,
		gate:    gate,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *httpClient) FetchHourlyUsage(ctx context.Context, productFamily string, start, end time.Time) (any, error) {
	if c.gate != nil {
		if res := c.gate.Allow(); !res.Allowed {
			return nil, fmt.Errorf("%w: window resets at %s", ErrRateLimited, res.ResetAt.UTC().Format(time.RFC3339))
		}
	}

	q := url.Values{}
	q.Set("product_families", productFamily)
	q.Set("start_hr", start.UTC().Format(hourFormat))
	q.Set("end_hr", end.UTC().Format(hourFormat))

	endpoint := fmt.Sprintf("%s/api/v2/usage/hourly_usage?%s", c.baseURL, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build usage request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Api-Key", c.creds.APIKey)
	req.Header.Set("Application-Key", c.creds.AppKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch usage for %s: %w", productFamily, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("%w: %s", ErrRateLimited, productFamily)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("vendor returned %d for %s: %s", resp.StatusCode, productFamily, body)
	}

	var payload any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode usage response for %s: %w", productFamily, err)
	}
	return payload, nil
}
