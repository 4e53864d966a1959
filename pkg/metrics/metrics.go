// Package metrics provides the Prometheus registry reference for the
// Verso client. All metrics are defined in their respective packages
// (client, cache, ratelimit, paging) to maintain modularity and avoid
// circular dependencies.
//
// This package provides documentation and reference for all available metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the Verso client.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Request Metrics (pkg/client):
//   - verso_requests_total{endpoint, status} (Counter): Requests by endpoint and HTTP status
//   - verso_request_duration_seconds{endpoint} (Histogram): Request duration by endpoint
//   - verso_errors_total{class} (Counter): Errors by class (not_found, validation,
//     auth, rate_limit, server, network)
//
// Retry Metrics (pkg/client):
//   - verso_retries_total{error_class} (Counter): Retry attempts by error class
//   - verso_retry_backoff_seconds{error_class} (Histogram): Backoff duration by error class
//   - verso_retry_exhausted_total{error_class} (Counter): Requests that exhausted max retries
//
// Cache Metrics (pkg/cache):
//   - verso_cache_hits_total{layer="redis"} (Counter): Cache hits by layer
//   - verso_cache_misses_total (Counter): Cache misses
//   - verso_cache_size_bytes{layer="redis"} (Gauge): Bytes written to the cache
//   - verso_304_responses_total (Counter): 304 Not Modified responses
//   - verso_conditional_requests_total (Counter): Conditional requests sent
//   - verso_cache_errors_total{operation} (Counter): Cache operation errors
//
// Rate Limit Metrics (pkg/ratelimit):
//   - verso_rate_limit_remaining (Gauge): Requests remaining in current window
//   - verso_rate_limit_blocks_total (Counter): Requests blocked at critical budget
//   - verso_rate_limit_throttles_total (Counter): Requests throttled at low budget
//
// Paging Metrics (pkg/paging):
//   - verso_paging_pages_fetched_total (Counter): Pages fetched by lazy paging lists
//   - verso_paging_items_fetched_total (Counter): Items fetched and cached
//
// Example Prometheus Queries:
//
//	# Cache Hit Rate
//	sum(rate(verso_cache_hits_total[5m])) /
//	(sum(rate(verso_cache_hits_total[5m])) + sum(rate(verso_cache_misses_total[5m])))
//
//	# Request Error Rate
//	rate(verso_errors_total[5m])
//
//	# P95 Request Latency
//	histogram_quantile(0.95, rate(verso_request_duration_seconds_bucket[5m]))
