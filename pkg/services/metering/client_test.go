package metering

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type allowAllGate struct{ calls int }

func (g *allowAllGate) Allow() GateResult {
	g.calls++
	return GateResult{Allowed: true}
}

type deniedGate struct{}

func (deniedGate) Allow() GateResult {
	return GateResult{ResetAt: time.Date(2024, 3, 1, 11, 0, 0, 0, time.UTC)}
}

func TestFetchHourlyUsage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-api-key", r.Header.Get("Api-Key"))
		assert.Equal(t, "indexed_logs", r.URL.Query().Get("product_families"))
		assert.Equal(t, "2024-03-01T00", r.URL.Query().Get("start_hr"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": []}`))
	}))
	defer srv.Close()

	gate := &allowAllGate{}
	client := NewHTTPClient(srv.URL, Credentials{APIKey: "test-api-key"}, gate)

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	payload, err := client.FetchHourlyUsage(context.Background(), "indexed_logs", start, start.Add(24*time.Hour))

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"data": []any{}}, payload)
	assert.Equal(t, 1, gate.calls)
}

func TestFetchHourlyUsage_VendorRateLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, Credentials{}, nil)

	_, err := client.FetchHourlyUsage(context.Background(), "infra_hosts", time.Now(), time.Now())
	assert.True(t, errors.Is(err, ErrRateLimited))
}

func TestFetchHourlyUsage_LocalGateDenied(t *testing.T) {
	client := NewHTTPClient("http://unreachable.invalid", Credentials{}, deniedGate{})

	_, err := client.FetchHourlyUsage(context.Background(), "infra_hosts", time.Now(), time.Now())
	assert.True(t, errors.Is(err, ErrRateLimited))
}

func TestFetchHourlyUsage_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, Credentials{}, nil)

	_, err := client.FetchHourlyUsage(context.Background(), "infra_hosts", time.Now(), time.Now())
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrRateLimited))
}
