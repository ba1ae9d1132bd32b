package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/killallgit/marathon-api/internal/models"
	"golang.org/x/time/rate"
)

var (
	// ErrLookupFailed wraps every failure to fetch movie details
	ErrLookupFailed = errors.New("movie lookup failed")

	// ErrRateLimited indicates the catalog rate limit was exceeded
	ErrRateLimited = errors.New("catalog rate limit exceeded")

	// ErrMovieNotFound indicates the catalog has no movie with the id
	ErrMovieNotFound = errors.New("movie not found in catalog")

	errServerError = errors.New("catalog server error")
)

const defaultUserAgent = "MarathonAPI/1.0 (+https://github.com/killallgit/marathon-api)"

// Client handles communication with the TMDB API
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	config      Config
	metrics     *clientMetrics
}

// clientMetrics tracks client usage statistics
type clientMetrics struct {
	requests      atomic.Int64
	rateLimitHits atomic.Int64
	errors        atomic.Int64
	cacheHits     atomic.Int64
	cacheMisses   atomic.Int64
}

// NewClient creates a new catalog API client
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.themoviedb.org/3"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = 600
	}
	if cfg.BurstSize <= 0 {
		cfg.BurstSize = 10
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}

	limiter := rate.NewLimiter(
		rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)),
		cfg.BurstSize,
	)

	return &Client{
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		rateLimiter: limiter,
		config:      cfg,
		metrics:     &clientMetrics{},
	}
}

// GetMovieDetails fetches the full record of a movie
func (c *Client) GetMovieDetails(ctx context.Context, movieID int64) (*models.MovieRecord, error) {
	params := url.Values{}
	if c.config.APIKey != "" {
		params.Set("api_key", c.config.APIKey)
	}
	detailsURL := fmt.Sprintf("%s/movie/%d", c.config.BaseURL, movieID)
	if len(params) > 0 {
		detailsURL += "?" + params.Encode()
	}

	var details movieDetails
	if err := c.doRequestWithRetry(ctx, detailsURL, &details); err != nil {
		return nil, fmt.Errorf("%w: movie %d: %w", ErrLookupFailed, movieID, err)
	}

	record := details.toRecord()
	if record.ID == 0 {
		record.ID = movieID
	}
	return record, nil
}

// doRequestWithRetry performs an HTTP request with retry logic
func (c *Client) doRequestWithRetry(ctx context.Context, requestURL string, out any) error {
	var lastErr error
	backoff := c.config.RetryBackoff

	for attempt := 0; attempt < c.config.MaxRetries; attempt++ {
		err := c.doRequest(ctx, requestURL, out)
		if err == nil {
			return nil
		}
		if !isRetryable(err) {
			return err
		}
		lastErr = err

		if attempt == c.config.MaxRetries-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
			backoff *= 2
		}
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

// doRequest performs a single HTTP request
func (c *Client) doRequest(ctx context.Context, requestURL string, out any) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait: %w", err)
	}

	c.metrics.requests.Add(1)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.errors.Add(1)
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		c.metrics.rateLimitHits.Add(1)
		return ErrRateLimited
	case resp.StatusCode == http.StatusNotFound:
		return ErrMovieNotFound
	case resp.StatusCode >= 500:
		c.metrics.errors.Add(1)
		return fmt.Errorf("%w: status %d", errServerError, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		c.metrics.errors.Add(1)
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.metrics.errors.Add(1)
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Stats is a snapshot of catalog client activity
type Stats struct {
	Requests      int64 `json:"requests"`
	RateLimitHits int64 `json:"rate_limit_hits"`
	Errors        int64 `json:"errors"`
	CacheHits     int64 `json:"cache_hits"`
	CacheMisses   int64 `json:"cache_misses"`
	CachedMovies  int   `json:"cached_movies"`
}

// Stats returns the current client counters
func (c *Client) Stats() Stats {
	return Stats{
		Requests:      c.metrics.requests.Load(),
		RateLimitHits: c.metrics.rateLimitHits.Load(),
		Errors:        c.metrics.errors.Load(),
		CacheHits:     c.metrics.cacheHits.Load(),
		CacheMisses:   c.metrics.cacheMisses.Load(),
	}
}

// isRetryable checks if an error is temporary and should be retried
func isRetryable(err error) bool {
	if errors.Is(err, ErrRateLimited) || errors.Is(err, errServerError) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return false
}
