// Package metrics exposes the Prometheus collectors of the storefront service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// PriceCalculationsTotal counts discount calculations by outcome ("applied", "no_discount", "not_applicable").
	PriceCalculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "price_calculations_total",
			Help: "Total number of discount price calculations",
		},
		[]string{"outcome"},
	)

	PriceCalculationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "price_calculation_duration_seconds",
			Help:    "Discount price calculation duration in seconds",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
		},
	)

	// ListingPartitionsTotal counts product grid partitions, split by whether a price filter was given.
	ListingPartitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "listing_partitions_total",
			Help: "Total number of product listing partitions",
		},
		[]string{"filtered"},
	)

	ListingRevealedItemsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "listing_revealed_items_total",
			Help: "Total number of hidden listing items revealed by load-more",
		},
	)

	ListingSessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "listing_sessions_active",
			Help: "Number of listing sessions held in memory",
		},
	)

	// CatalogAPIRequestsTotal counts calls to the remote catalog API by operation and result.
	CatalogAPIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_api_requests_total",
			Help: "Total number of remote catalog API requests",
		},
		[]string{"operation", "result"},
	)

	CatalogAPIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_api_request_duration_seconds",
			Help:    "Remote catalog API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// CircuitBreakerState is 0 closed, 1 half-open, 2 open.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 half-open, 2 open)",
		},
		[]string{"name"},
	)

	// CacheOperationsTotal tracks cache operations.
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Total number of cache operations",
		},
		[]string{"cache", "operation", "result"},
	)

	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Current cache size",
		},
		[]string{"cache"},
	)

	CacheCapacity = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_capacity",
			Help: "Cache capacity",
		},
		[]string{"cache"},
	)

	AsyncLogEntriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "async_log_entries_total",
			Help: "Log entries handled by the async log writer",
		},
		[]string{"result"},
	)
)

// PrometheusMiddleware returns a Gin middleware that collects HTTP metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		c.Next()

		statusCode := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(time.Since(start).Seconds())
		HTTPRequestTotal.WithLabelValues(method, path, statusCode).Inc()
	}
}

// RecordPriceCalculation records one discount calculation.
func RecordPriceCalculation(duration time.Duration, outcome string) {
	PriceCalculationDuration.Observe(duration.Seconds())
	PriceCalculationsTotal.WithLabelValues(outcome).Inc()
}

// RecordListingPartition records one product grid partition.
func RecordListingPartition(filtered bool) {
	ListingPartitionsTotal.WithLabelValues(strconv.FormatBool(filtered)).Inc()
}

// RecordListingReveal adds n revealed items.
func RecordListingReveal(n int) {
	if n > 0 {
		ListingRevealedItemsTotal.Add(float64(n))
	}
}

// SetListingSessions sets the active listing session gauge.
func SetListingSessions(n int) {
	ListingSessionsActive.Set(float64(n))
}

// RecordCatalogRequest records a remote catalog API call.
func RecordCatalogRequest(operation, result string, duration time.Duration) {
	CatalogAPIRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
	CatalogAPIRequestsTotal.WithLabelValues(operation, result).Inc()
}

// SetCircuitBreakerState publishes the numeric state of a named breaker.
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// RecordCacheOperation records metrics for a cache operation.
func RecordCacheOperation(cache, operation, result string) {
	CacheOperationsTotal.WithLabelValues(cache, operation, result).Inc()
}

// UpdateCacheMetrics updates cache size and capacity metrics.
func UpdateCacheMetrics(cache string, size, capacity int) {
	CacheSize.WithLabelValues(cache).Set(float64(size))
	CacheCapacity.WithLabelValues(cache).Set(float64(capacity))
}

// RecordAsyncLog adds n log entries with result enqueued, dropped, written or failed.
func RecordAsyncLog(result string, n int) {
	if n > 0 {
		AsyncLogEntriesTotal.WithLabelValues(result).Add(float64(n))
	}
}
