// Package metrics provides Prometheus instrumentation for Vastra.
//
// It pre-defines the standard HTTP metrics plus catalog-specific ones
// (Mongo query latency, asset store operations, cache effectiveness).
//
// Wire it up once in internal/server:
//
//	r.Use(metrics.Middleware())
//	r.HandleFunc("/metrics", metrics.Handler())
//
// Then scrape http://localhost:8080/metrics from Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ─────────────────────────────────────────────
// Built-in metrics
// ─────────────────────────────────────────────

var (
	// RequestDuration tracks how long each HTTP request takes,
	// broken down by method, route path, and status code.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "vastra",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets, // .005 .01 .025 .05 .1 .25 .5 1 2.5 5 10
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts all HTTP requests.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vastra",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	// RequestInFlight tracks how many requests are currently being served.
	RequestInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "vastra",
		Subsystem: "http",
		Name:      "requests_in_flight",
		Help:      "Number of HTTP requests currently being served.",
	})

	// ResponseSize tracks the response body size in bytes.
	ResponseSize = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "vastra",
			Subsystem: "http",
			Name:      "response_size_bytes",
			Help:      "Response body sizes in bytes.",
			Buckets:   []float64{100, 1_000, 10_000, 100_000, 1_000_000},
		},
		[]string{"method", "path"},
	)

	// QueryDuration tracks MongoDB query latency per collection.
	QueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "vastra",
			Subsystem: "mongo",
			Name:      "query_duration_seconds",
			Help:      "Duration of MongoDB operations in seconds.",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .5, 1},
		},
		[]string{"collection", "operation"}, // "find" | "insert" | "update" | "delete" | "aggregate"
	)

	// AssetOps counts asset store operations by outcome. Failed deletes are
	// absorbed by the reconciler, so this counter is the only place they
	// remain visible.
	AssetOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vastra",
			Subsystem: "assets",
			Name:      "operations_total",
			Help:      "Total asset store operations.",
		},
		[]string{"operation", "status"}, // operation: "write" | "delete"; status: "ok" | "error"
	)

	// CacheHits / CacheMisses track cache effectiveness.
	CacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vastra",
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Total cache hits.",
		},
		[]string{"view"}, // "highlights" | "product"
	)
	CacheMisses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vastra",
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Total cache misses.",
		},
		[]string{"view"},
	)
)

// ─────────────────────────────────────────────
// Registry
// ─────────────────────────────────────────────

// DefaultRegistry holds every Vastra metric. A private registry keeps the
// scrape page free of whatever third-party packages register globally.
var DefaultRegistry = prometheus.NewRegistry()

func init() {
	// runtime (GC, goroutines, memory) and process (CPU, FDs) collectors
	DefaultRegistry.MustRegister(collectors.NewGoCollector())
	DefaultRegistry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	DefaultRegistry.MustRegister(
		RequestDuration,
		RequestTotal,
		RequestInFlight,
		ResponseSize,
		QueryDuration,
		AssetOps,
		CacheHits,
		CacheMisses,
	)
}

// Register adds a collector to the Vastra registry.
func Register(c prometheus.Collector) error {
	return DefaultRegistry.Register(c)
}

// MustRegister adds collectors to the Vastra registry, panicking on conflict.
func MustRegister(c ...prometheus.Collector) {
	DefaultRegistry.MustRegister(c...)
}

// ─────────────────────────────────────────────
// HTTP middleware
// ─────────────────────────────────────────────

// responseRecorder wraps http.ResponseWriter to capture status code and size.
type responseRecorder struct {
	http.ResponseWriter
	status int
	size   int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	n, err := r.ResponseWriter.Write(b)
	r.size += n
	return n, err
}

// Middleware records per-request metrics: duration histogram, total counter,
// in-flight gauge, and response size. The path label is the matched chi route
// pattern (e.g. /api/v1/get-product/{id}), so product ids never blow up
// label cardinality.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			RequestInFlight.Inc()
			defer RequestInFlight.Dec()

			rr := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rr, r)

			path := r.URL.Path
			if rc := chi.RouteContext(r.Context()); rc != nil {
				if pat := rc.RoutePattern(); pat != "" {
					path = pat
				}
			}

			status := strconv.Itoa(rr.status)
			RequestDuration.WithLabelValues(r.Method, path, status).Observe(time.Since(start).Seconds())
			RequestTotal.WithLabelValues(r.Method, path, status).Inc()
			ResponseSize.WithLabelValues(r.Method, path).Observe(float64(rr.size))
		})
	}
}

// ─────────────────────────────────────────────
// /metrics endpoint handler
// ─────────────────────────────────────────────

// Handler serves the scrape page for DefaultRegistry. Mounted on GET /metrics.
func Handler() http.HandlerFunc {
	h := promhttp.HandlerFor(DefaultRegistry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
	return h.ServeHTTP
}

// ─────────────────────────────────────────────
// Helpers for app code
// ─────────────────────────────────────────────

// ObserveQuery records a MongoDB operation duration with a simple timer:
//
//	defer metrics.ObserveQuery("products", "find", time.Now())
func ObserveQuery(collection, operation string, start time.Time) {
	QueryDuration.WithLabelValues(collection, operation).Observe(time.Since(start).Seconds())
}

// RecordAssetOp records an asset store operation result.
func RecordAssetOp(operation string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	AssetOps.WithLabelValues(operation, status).Inc()
}

// RecordCacheHit increments the hit counter for a cached view.
func RecordCacheHit(view string) {
	CacheHits.WithLabelValues(view).Inc()
}

// RecordCacheMiss increments the miss counter for a cached view.
func RecordCacheMiss(view string) {
	CacheMisses.WithLabelValues(view).Inc()
}
