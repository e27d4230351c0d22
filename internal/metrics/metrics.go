// Package metrics exposes Prometheus instrumentation for the client SDK.
// Collectors cover the two behaviors worth watching in a cache-fronted API
// client: how often the staleness policy short-circuits a network call, and
// how outgoing requests behave when it does not.
//
// Label cardinality is kept bounded:
//   - domain:    the state slice ("articles", "tags", "categories", "languages", "auth")
//   - outcome:   "hit" | "miss" for cache lookups; "ok" | "error" for requests
//   - operation: the service operation ("list", "get", "create", "update", "delete", ...)
//   - method:    HTTP verb for the duration histogram
//
// All collectors are safe for concurrent use.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// cacheLookups counts staleness-policy decisions per domain.
	cacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsclient_cache_lookups_total",
			Help: "Staleness policy decisions: hit means the cached collection was served without a fetch.",
		},
		[]string{"domain", "outcome"},
	)

	// apiRequests counts orchestrated API operations by domain and outcome.
	apiRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsclient_api_requests_total",
			Help: "Total orchestrated API operations.",
		},
		[]string{"domain", "operation", "outcome"},
	)

	// reqDuration records outgoing HTTP request duration in seconds by verb.
	// Status is intentionally omitted to keep histogram cardinality low.
	reqDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "newsclient_http_request_duration_seconds",
			Help:    "Duration of outgoing HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	// dispatches counts store dispatches by action name.
	dispatches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsclient_store_dispatches_total",
			Help: "Total actions dispatched to the state store.",
		},
		[]string{"action"},
	)
)

func init() {
	prometheus.MustRegister(cacheLookups, apiRequests, reqDuration, dispatches)
}

// CacheHit records a staleness check that served cached data.
func CacheHit(domain string) { cacheLookups.WithLabelValues(domain, "hit").Inc() }

// CacheMiss records a staleness check that triggered a fetch.
func CacheMiss(domain string) { cacheLookups.WithLabelValues(domain, "miss").Inc() }

// Operation records one orchestrated API operation. outcome is "ok" or "error".
func Operation(domain, operation, outcome string) {
	apiRequests.WithLabelValues(domain, operation, outcome).Inc()
}

// RequestDuration observes one outgoing HTTP request.
func RequestDuration(method string, d time.Duration) {
	reqDuration.WithLabelValues(method).Observe(d.Seconds())
}

// Dispatch records one store dispatch by action name.
func Dispatch(action string) { dispatches.WithLabelValues(action).Inc() }
