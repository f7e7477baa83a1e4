// Package httpapi implements a catalog Fetcher backed by a course catalog
// HTTP API.
//
// The client layers three behaviors every registry-style API needs: response
// caching (so repeated resolutions don't hammer the catalog), retry with
// exponential backoff for transient failures, and client-side rate limiting.
package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/coursegraph/coursegraph/pkg/cache"
	"github.com/coursegraph/coursegraph/pkg/catalog"
	"github.com/coursegraph/coursegraph/pkg/requirement"
)

// Defaults for client configuration.
const (
	DefaultCacheTTL          = 24 * time.Hour
	DefaultRequestsPerSecond = 10
	requestTimeout           = 30 * time.Second
)

// Config configures a catalog API client.
type Config struct {
	// BaseURL is the catalog API root, e.g. "https://catalog.example.edu/api".
	BaseURL string
	// Cache stores raw course records. Nil disables caching.
	Cache cache.Cache
	// Keyer derives cache keys. Nil uses the default scheme.
	Keyer cache.Keyer
	// CacheTTL is how long cached records stay fresh (default: 24h).
	CacheTTL time.Duration
	// RequestsPerSecond bounds the request rate (default: 10).
	RequestsPerSecond float64
}

// Client fetches course records over HTTP.
type Client struct {
	cfg     Config
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a catalog API client.
func NewClient(cfg Config) *Client {
	if cfg.Cache == nil {
		cfg.Cache = cache.NewNullCache()
	}
	if cfg.Keyer == nil {
		cfg.Keyer = cache.NewDefaultKeyer()
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultRequestsPerSecond
	}
	return &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: requestTimeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
	}
}

// courseRecord is the API's wire format. Requisites may arrive as compact
// expression text, a structured requirement, or neither (no prerequisite).
type courseRecord struct {
	Course     string                   `json:"course"`
	Requisites string                   `json:"requisites,omitempty"`
	Req        *requirement.Requirement `json:"req,omitempty"`
}

// Fetch retrieves one course's record, consulting the cache first.
func (c *Client) Fetch(ctx context.Context, course string) (catalog.Record, error) {
	key := c.cfg.Keyer.CatalogKey(c.cfg.BaseURL, course)

	if data, hit, err := c.cfg.Cache.Get(ctx, key); err == nil && hit {
		var rec courseRecord
		if err := json.Unmarshal(data, &rec); err == nil {
			return toRecord(rec)
		}
		// Corrupt cache entry: fall through to a fresh fetch.
	}

	data, err := c.get(ctx, c.courseURL(course))
	if err != nil {
		return catalog.Record{}, err
	}

	var rec courseRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return catalog.Record{}, fmt.Errorf("decode course %q: %w", course, err)
	}
	if rec.Course == "" {
		rec.Course = course
	}

	_ = c.cfg.Cache.Set(ctx, key, data, c.cfg.CacheTTL)
	return toRecord(rec)
}

func (c *Client) courseURL(course string) string {
	return c.cfg.BaseURL + "/courses/" + url.PathEscape(course)
}

// get performs a rate-limited GET with retry on transient failures.
func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	var body []byte
	err := cache.RetryWithBackoff(ctx, func() error {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return cache.Retryable(fmt.Errorf("%w: %v", cache.ErrNetwork, err))
		}
		defer resp.Body.Close()

		if err := checkStatus(resp.StatusCode); err != nil {
			return err
		}
		body, err = io.ReadAll(resp.Body)
		return err
	})
	return body, err
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return catalog.ErrCourseNotFound
	case code >= 500:
		return cache.Retryable(fmt.Errorf("%w: status %d", cache.ErrNetwork, code))
	default:
		return fmt.Errorf("%w: status %d", cache.ErrNetwork, code)
	}
}

func toRecord(rec courseRecord) (catalog.Record, error) {
	out := catalog.Record{Course: rec.Course, Req: requirement.None()}
	switch {
	case rec.Req != nil:
		out.Req = *rec.Req
	case rec.Requisites != "":
		req, err := requirement.Parse(rec.Requisites)
		if err != nil {
			return catalog.Record{}, fmt.Errorf("course %q: %w", rec.Course, err)
		}
		out.Req = req
	}
	return out, nil
}

// Ensure Client implements catalog.Fetcher.
var _ catalog.Fetcher = (*Client)(nil)
