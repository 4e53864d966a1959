// Package client provides the core Verso HTTP client with authentication,
// rate limiting, response caching, retries, and error classification.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/verso-data/verso-client-go/pkg/cache"
	"github.com/verso-data/verso-client-go/pkg/ratelimit"
)

// Prometheus metrics for API client operations.
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "verso_requests_total",
		Help: "Total Verso API requests by endpoint and status",
	}, []string{"endpoint", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "verso_request_duration_seconds",
		Help:    "Verso API request duration in seconds by endpoint",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	}, []string{"endpoint"})

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "verso_errors_total",
		Help: "Total Verso API errors by class",
	}, []string{"class"})
)

// Client is the Verso API transport. It performs authenticated JSON
// round trips; everything above it (managers, paging lists) delegates
// the network to this type.
type Client struct {
	httpClient  *http.Client
	config      Config
	retryConfig RetryConfig
	limiter     *ratelimit.Tracker
	cache       *cache.Manager
	logger      zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// BaseURL is the Verso API root, e.g. "https://api.verso.dev".
	BaseURL string

	// AccessKey is the user's access key, sent as a bearer token.
	AccessKey string

	// UserAgent identifies the SDK to the API.
	UserAgent string

	// Redis enables the response cache and shared rate-limit state.
	// Both features are disabled when nil.
	Redis *redis.Client

	// Timeout bounds one HTTP round trip.
	Timeout time.Duration

	// Retry
	MaxRetries     int
	InitialBackoff time.Duration
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig(baseURL, accessKey string) Config {
	return Config{
		BaseURL:        baseURL,
		AccessKey:      accessKey,
		UserAgent:      "verso-client-go/0.1.0",
		Timeout:        30 * time.Second,
		MaxRetries:     3,
		InitialBackoff: 1 * time.Second,
	}
}

// New creates a new Verso API client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if cfg.AccessKey == "" {
		return nil, fmt.Errorf("access key is required")
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "verso-client-go/0.1.0"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	logger := log.With().Str("component", "verso-client").Logger()

	retryConfig := DefaultRetryConfig()
	if cfg.MaxRetries > 0 {
		retryConfig.MaxAttempts = cfg.MaxRetries
	}
	if cfg.InitialBackoff > 0 {
		retryConfig.InitialBackoff = cfg.InitialBackoff
	}

	c := &Client{
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		config:      cfg,
		retryConfig: retryConfig,
		logger:      logger,
	}

	if cfg.Redis != nil {
		c.limiter = ratelimit.NewTracker(cfg.Redis, logger)
		c.cache = cache.NewManager(cfg.Redis)
	} else {
		logger.Debug().Msg("No redis client configured, response cache and rate limiter disabled")
	}

	return c, nil
}

// DoJSON performs one authenticated API request and decodes the JSON
// response body into out (skipped when out is nil). Non-2xx responses
// are returned as *APIError; transient failures are retried with backoff.
func (c *Client) DoJSON(ctx context.Context, method, path string, query url.Values, body, out any) error {
	start := time.Now()
	defer func() {
		requestDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
	}()

	if c.limiter != nil {
		allowed, err := c.limiter.ShouldAllowRequest(ctx)
		if err != nil {
			return fmt.Errorf("rate limit check: %w", err)
		}
		if !allowed {
			requestsTotal.WithLabelValues(path, "rate_limited").Inc()
			return &APIError{
				StatusCode: http.StatusTooManyRequests,
				Class:      ErrorClassRateLimit,
				Message:    "request blocked: rate limit critical",
			}
		}
	}

	endpoint := strings.TrimRight(c.config.BaseURL, "/") + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
	}

	// The cache only applies to GETs; mutations always go to the server.
	var cached *cache.Entry
	var key cache.Key
	useCache := c.cache != nil && method == http.MethodGet
	if useCache {
		key = cache.Key{Endpoint: path, QueryParams: query}
		entry, err := c.cache.Get(ctx, key)
		if err != nil && err != cache.ErrCacheMiss {
			c.logger.Warn().Err(err).Str("endpoint", path).Msg("Cache get error")
		}
		cached = entry
	}

	c.logger.Debug().
		Str("endpoint", path).
		Str("method", method).
		Msg("Executing API request")

	var data []byte
	attempt := func() (ErrorClass, error) {
		req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(payload))
		if err != nil {
			return "", fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+c.config.AccessKey)
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", c.config.UserAgent)
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if cached != nil && cache.ShouldMakeConditionalRequest(cached) {
			cache.AddConditionalHeaders(req, cached)
			cache.ConditionalRequestsSent.Inc()
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			errorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
			requestsTotal.WithLabelValues(path, "network_error").Inc()
			c.logger.Error().Err(err).Str("endpoint", path).Msg("HTTP request failed")
			return ErrorClassNetwork, &APIError{
				Class:   ErrorClassNetwork,
				Message: "request failed",
				Err:     err,
			}
		}
		defer resp.Body.Close()

		if c.limiter != nil {
			if err := c.limiter.UpdateFromHeaders(ctx, resp.Header); err != nil {
				c.logger.Warn().Err(err).Msg("Failed to update rate limit from headers")
			}
		}

		if resp.StatusCode == http.StatusNotModified && cached != nil {
			requestsTotal.WithLabelValues(path, "304").Inc()
			cache.NotModifiedResponses.Inc()
			c.logger.Debug().Str("endpoint", path).Msg("304 Not Modified - using cache")
			data = cached.Data
			return "", nil
		}

		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			errorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
			return ErrorClassNetwork, &APIError{
				Class:   ErrorClassNetwork,
				Message: "read response body",
				Err:     err,
			}
		}

		requestsTotal.WithLabelValues(path, strconv.Itoa(resp.StatusCode)).Inc()

		if resp.StatusCode >= 400 {
			apiErr := parseAPIError(resp.StatusCode, raw)
			errorsTotal.WithLabelValues(string(apiErr.Class)).Inc()
			c.logger.Warn().
				Str("endpoint", path).
				Int("status", resp.StatusCode).
				Str("error_class", string(apiErr.Class)).
				Msg("API request error")
			return apiErr.Class, apiErr
		}

		data = raw

		if useCache && resp.StatusCode == http.StatusOK {
			entry := cache.NewEntry(raw, resp)
			if entry.TTL() > 0 {
				if err := c.cache.Set(ctx, key, entry); err != nil {
					c.logger.Warn().Err(err).Msg("Failed to cache response")
				}
			}
		}
		return "", nil
	}

	if err := c.retryWithBackoff(ctx, attempt); err != nil {
		return err
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

// Close releases client resources. The redis client, if any, is owned by
// the caller and stays open.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}
