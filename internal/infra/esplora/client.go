// Package esplora is the cache-backed gateway to an esplora-compatible
// block explorer API, plus the typed accessor methods over it.
package esplora

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/vietddude/chainlens/internal/infra/cache"
)

// cachePolicy controls how a request interacts with the durable cache.
type cachePolicy int

const (
	// cacheImmutable entries never expire; confirmed chain data cannot
	// change once written.
	cacheImmutable cachePolicy = iota
	// cacheVolatile entries expire after the configured TTL; address
	// summaries, transaction lists, and outspend status change as new
	// transactions arrive.
	cacheVolatile
)

func (p cachePolicy) label() string {
	if p == cacheVolatile {
		return "volatile"
	}
	return "immutable"
}

func (p cachePolicy) storeKey(url string) string {
	if p == cacheVolatile {
		return "vol:" + url
	}
	return "imm:" + url
}

// Config holds gateway settings.
type Config struct {
	BaseURL     string
	PriceURL    string
	Timeout     time.Duration
	MaxRetries  int
	RetryDelay  time.Duration
	VolatileTTL time.Duration
}

// Client is the cache-backed gateway. Cache hits never touch the network;
// misses are fetched with a fixed-delay retry policy and stored before
// returning. Failed fetches are never cached.
type Client struct {
	cfg        Config
	httpClient *http.Client
	store      cache.Store
	log        *slog.Logger

	now func() time.Time // injectable for TTL tests
}

// New creates a gateway over store. Zero config fields fall back to the
// documented defaults.
func New(cfg Config, store cache.Store) *Client {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 3 * time.Second
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		store: store,
		log:   slog.Default(),
		now:   time.Now,
	}
}

// volatileEnvelope wraps a volatile response with its fetch time so TTL
// checks survive process restarts.
type volatileEnvelope struct {
	StoredAt time.Time       `json:"stored_at"`
	Body     json.RawMessage `json:"body"`
}

// fetch returns the response body for url, from cache when possible.
func (c *Client) fetch(ctx context.Context, url string, policy cachePolicy) ([]byte, error) {
	if body, ok := c.cached(url, policy); ok {
		c.log.Debug("cache hit", "url", url)
		cacheHits.WithLabelValues(policy.label()).Inc()
		return body, nil
	}
	cacheMisses.WithLabelValues(policy.label()).Inc()

	c.log.Debug("cache miss, fetching", "url", url)
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	// Bodies that are not even valid JSON are terminal for this call and
	// must not poison the cache.
	if !json.Valid(body) {
		upstreamErrors.WithLabelValues("malformed").Inc()
		return nil, fmt.Errorf("%w: %s: body is not valid JSON", ErrMalformed, url)
	}

	c.storeResponse(url, policy, body)
	return body, nil
}

// get issues the GET request with the retry policy: transient failures
// (transport errors, non-2xx statuses) are retried with a fixed delay;
// 404 is terminal immediately.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt < c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			upstreamRetries.Inc()
			c.log.Debug("retrying", "url", url, "attempt", attempt+1)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.cfg.RetryDelay):
			}
		}

		body, err := c.doOnce(ctx, url)
		if err == nil {
			return body, nil
		}
		if errors.Is(err, ErrNotFound) {
			upstreamErrors.WithLabelValues("not_found").Inc()
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		c.log.Warn("fetch attempt failed", "url", url, "attempt", attempt+1, "error", err)
		lastErr = err
	}

	upstreamErrors.WithLabelValues("unavailable").Inc()
	return nil, fmt.Errorf("%w: %s after %d attempts: %v", ErrUnavailable, url, c.cfg.MaxRetries, lastErr)
}

func (c *Client) doOnce(ctx context.Context, url string) ([]byte, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	upstreamCalls.Inc()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("explorer call: %w", err)
	}
	defer resp.Body.Close()

	upstreamLatency.Observe(time.Since(start).Seconds())

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("http %d: %s", resp.StatusCode, body)
	}

	return body, nil
}

// cached returns the stored body for url when it is still usable under
// policy. Volatile entries are honored only within VolatileTTL.
func (c *Client) cached(url string, policy cachePolicy) ([]byte, bool) {
	if policy == cacheVolatile && c.cfg.VolatileTTL <= 0 {
		return nil, false
	}

	raw, err := c.store.Get(policy.storeKey(url))
	if err != nil {
		if !errors.Is(err, cache.ErrNotFound) {
			c.log.Warn("cache read failed", "url", url, "error", err)
		}
		return nil, false
	}

	if policy == cacheImmutable {
		return raw, true
	}

	var env volatileEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, false
	}
	if c.now().Sub(env.StoredAt) > c.cfg.VolatileTTL {
		c.log.Debug("cache entry expired", "url", url, "stored_at", env.StoredAt)
		return nil, false
	}
	return env.Body, true
}

func (c *Client) storeResponse(url string, policy cachePolicy, body []byte) {
	if policy == cacheVolatile && c.cfg.VolatileTTL <= 0 {
		return
	}

	value := body
	if policy == cacheVolatile {
		env, err := json.Marshal(volatileEnvelope{StoredAt: c.now(), Body: body})
		if err != nil {
			c.log.Warn("cache envelope encode failed", "url", url, "error", err)
			return
		}
		value = env
	}

	if err := c.store.Put(policy.storeKey(url), value); err != nil {
		// A cache write failure degrades performance, not correctness.
		c.log.Warn("cache write failed", "url", url, "error", err)
	}
}
