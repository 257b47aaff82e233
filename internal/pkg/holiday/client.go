package holiday

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const (
	// DefaultBaseURL points at the Nager.Date public holiday API.
	DefaultBaseURL = "https://date.nager.at"

	fetchTimeout = 5 * time.Second
)

// Client fetches public holidays from the external calendar service with a
// per-(country, year) cache in front. A holiday-service outage must never
// block leave submission, so Fetch degrades to an empty list instead of
// returning an error.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      Cache
	logger     *slog.Logger
}

func NewClient(baseURL string, cache Cache, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if cache == nil {
		cache = NewMemoryCache()
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: fetchTimeout},
		cache:      cache,
		logger:     logger,
	}
}

// Fetch returns the public holidays for a country and year. Cache hits skip
// I/O entirely; only successful fetches populate the cache, so a failed year
// is retried on the next call.
func (c *Client) Fetch(ctx context.Context, countryCode string, year int) []Holiday {
	key := fmt.Sprintf("%s-%d", countryCode, year)
	if holidays, ok := c.cache.Get(key); ok {
		return holidays
	}

	url := fmt.Sprintf("%s/api/v3/PublicHolidays/%d/%s", c.baseURL, year, countryCode)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.logger.Warn("holiday fetch skipped: bad request", "country", countryCode, "year", year, "error", err)
		return nil
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("holiday fetch failed, excluding weekends only", "country", countryCode, "year", year, "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("holiday service returned non-2xx, excluding weekends only",
			"country", countryCode, "year", year, "status", resp.StatusCode)
		return nil
	}

	var holidays []Holiday
	if err := json.NewDecoder(resp.Body).Decode(&holidays); err != nil {
		c.logger.Warn("holiday response decode failed, excluding weekends only",
			"country", countryCode, "year", year, "error", err)
		return nil
	}

	c.cache.Set(key, holidays)
	return holidays
}
