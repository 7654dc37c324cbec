// Package observability provides Prometheus metrics and OpenTelemetry tracing.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devconnector_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "devconnector_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// AuthAttempts counts registrations and logins by outcome.
	AuthAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devconnector_auth_attempts_total",
		Help: "Registration and login attempts by operation and result",
	}, []string{"op", "result"})

	// FeedMutations counts successful feed writes (post, delete, like, unlike, comment, uncomment).
	FeedMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devconnector_feed_mutations_total",
		Help: "Successful feed mutations by operation",
	}, []string{"op"})

	// ProfileMutations counts successful profile writes.
	ProfileMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devconnector_profile_mutations_total",
		Help: "Successful profile mutations by operation",
	}, []string{"op"})

	// CacheLookups counts cache-aside lookups by key family and result (hit, miss).
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devconnector_cache_lookups_total",
		Help: "Cache-aside lookups by key family and result",
	}, []string{"family", "result"})

	// RateLimitRejections counts requests rejected by the Redis rate limiter.
	RateLimitRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devconnector_rate_limit_rejections_total",
		Help: "Requests rejected by the rate limiter by resource",
	}, []string{"resource"})

	// GithubRequestDuration records outbound GitHub API latency by status class.
	GithubRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "devconnector_github_request_duration_seconds",
		Help:    "Outbound GitHub API request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"status"})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
