// Package holiday provides a cached client for the Nager.Date public-holiday
// API.
package holiday

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"

	"tollgate-backend/config"
)

const dateLayout = "2006-01-02"

// Client looks up public holidays for a single country, caching one full year
// of holidays per request. Successful lookups are cached for a long TTL;
// failed lookups cache an empty year for a short TTL to bound retry pressure.
type Client struct {
	cfg    *config.HolidayConfig
	client *http.Client
	cache  *cache.Cache
}

// NewClient creates a holiday client with its own process-wide cache.
func NewClient(cfg *config.HolidayConfig) *Client {
	return &Client{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		cache: cache.New(cfg.SuccessTTL, cfg.SuccessTTL),
	}
}

// IsPublicHoliday reports whether the given date is a public holiday in the
// configured country. The date's year is fetched (or served from cache) as a
// whole; errors are returned only when the year could not be fetched at all.
func (c *Client) IsPublicHoliday(ctx context.Context, date time.Time) (bool, error) {
	holidays, err := c.holidaysForYear(ctx, date.Year())
	if err != nil {
		return false, err
	}
	_, found := holidays[date.Format(dateLayout)]
	return found, nil
}

// holidaysForYear returns the set of holiday dates ("2006-01-02" keys) for a
// year. Concurrent calls for a cold year may fetch twice; both produce the
// same set and the last write wins.
func (c *Client) holidaysForYear(ctx context.Context, year int) (map[string]struct{}, error) {
	key := fmt.Sprintf("nager:%s:%d", c.cfg.CountryCode, year)
	if cached, found := c.cache.Get(key); found {
		return cached.(map[string]struct{}), nil
	}

	holidays, err := c.fetchYear(ctx, year)
	if err != nil {
		// A transport failure or timeout also caches an empty year briefly,
		// so an upstream outage cannot trigger a fetch per request.
		log.Printf("holiday request for %d failed; caching empty set for %s: %v", year, c.cfg.FailureTTL, err)
		c.cache.Set(key, map[string]struct{}{}, c.cfg.FailureTTL)
		return nil, err
	}
	if holidays == nil {
		// Upstream answered with a non-2xx status; remember the empty year
		// briefly so a flapping upstream is not hammered on every request.
		log.Printf("holiday API returned no data for %d; caching empty set for %s", year, c.cfg.FailureTTL)
		empty := map[string]struct{}{}
		c.cache.Set(key, empty, c.cfg.FailureTTL)
		return empty, nil
	}

	c.cache.Set(key, holidays, c.cfg.SuccessTTL)
	return holidays, nil
}

type publicHoliday struct {
	Date string `json:"date"`
}

// fetchYear calls the Nager.Date API for one year. A nil map with a nil error
// signals a non-2xx response.
func (c *Client) fetchYear(ctx context.Context, year int) (map[string]struct{}, error) {
	url := fmt.Sprintf("%s/api/v3/PublicHolidays/%d/%s", c.cfg.BaseURL, year, c.cfg.CountryCode)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create holiday request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("holiday request for %d failed: %w", year, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return nil, nil
	}

	var entries []publicHoliday
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode holiday response for %d: %w", year, err)
	}

	holidays := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		holidays[entry.Date] = struct{}{}
	}
	return holidays, nil
}
