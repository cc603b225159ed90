package holiday

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tollgate-backend/config"
)

func newTestClient(baseURL string) *Client {
	return NewClient(&config.HolidayConfig{
		BaseURL:     baseURL,
		CountryCode: "SE",
		Timeout:     2 * time.Second,
		SuccessTTL:  time.Hour,
		FailureTTL:  time.Minute,
	})
}

func TestIsPublicHoliday(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		assert.Equal(t, "/api/v3/PublicHolidays/2025/SE", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"date":"2025-12-25","name":"Christmas Day"},{"date":"2025-06-06","name":"National Day"}]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	ctx := context.Background()

	isHoliday, err := client.IsPublicHoliday(ctx, time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, isHoliday)

	isHoliday, err = client.IsPublicHoliday(ctx, time.Date(2025, 12, 24, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, isHoliday)

	assert.Equal(t, 1, requests, "the whole year must be served from cache after the first lookup")
}

func TestIsPublicHolidayCachesPerYear(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	ctx := context.Background()

	_, err := client.IsPublicHoliday(ctx, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	_, err = client.IsPublicHoliday(ctx, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, 2, requests, "one fetch per year")
}

func TestIsPublicHolidayUpstreamErrorCachesEmptyYear(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	ctx := context.Background()

	// A non-2xx answer resolves to "no holidays" without an error, and the
	// empty year is remembered so the upstream is not asked again right away.
	isHoliday, err := client.IsPublicHoliday(ctx, time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, isHoliday)

	_, err = client.IsPublicHoliday(ctx, time.Date(2025, 12, 26, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 1, requests)
}

func TestIsPublicHolidayNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // Connection refused from here on.

	client := newTestClient(server.URL)

	_, err := client.IsPublicHoliday(context.Background(), time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC))
	assert.Error(t, err)
}

func TestIsPublicHolidayTransportErrorCachesEmptyYear(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		// Drop the connection mid-request to force a transport error.
		hj, ok := w.(http.Hijacker)
		require.True(t, ok)
		conn, _, err := hj.Hijack()
		require.NoError(t, err)
		conn.Close()
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	ctx := context.Background()

	// The first lookup surfaces the transport error but still caches the
	// empty year, so lookups within the failure TTL stay off the wire.
	_, err := client.IsPublicHoliday(ctx, time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC))
	assert.Error(t, err)

	isHoliday, err := client.IsPublicHoliday(ctx, time.Date(2025, 12, 26, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, isHoliday)
	assert.Equal(t, 1, requests)
}

func TestIsPublicHolidayMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"a list"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.IsPublicHoliday(context.Background(), time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC))
	assert.Error(t, err)
}
