package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const unmatchedRoute = "unmatched"

type Collector struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	InFlightGauge   prometheus.Gauge

	PatientsCreatedTotal prometheus.Counter
	PatientsUpdatedTotal prometheus.Counter
	PatientsDeletedTotal prometheus.Counter

	StorageOperationDuration *prometheus.HistogramVec
	LockWaitDuration         prometheus.Histogram
	SideEffectFailuresTotal  *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// NewCollector registers every metric on reg. Tests pass a fresh
// prometheus.NewRegistry() so collectors never clash.
func NewCollector(serviceName string, reg *prometheus.Registry) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, path, and status code.",
		}, []string{"method", "path", "status"}),

		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: serviceName,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency distribution.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"method", "path", "status"}),

		InFlightGauge: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: serviceName,
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),

		PatientsCreatedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "patients",
			Name:      "created_total",
			Help:      "Total number of patient records created.",
		}),

		PatientsUpdatedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "patients",
			Name:      "updated_total",
			Help:      "Total number of patient records updated.",
		}),

		PatientsDeletedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "patients",
			Name:      "deleted_total",
			Help:      "Total number of patient records deleted.",
		}),

		StorageOperationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: serviceName,
			Subsystem: "storage",
			Name:      "operation_duration_seconds",
			Help:      "Data file load and save latency distribution.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
		}, []string{"operation"}),

		LockWaitDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: serviceName,
			Subsystem: "lock",
			Name:      "wait_duration_seconds",
			Help:      "Time spent waiting for the collection lock.",
			Buckets:   []float64{0.001, 0.005, 0.025, 0.1, 0.5, 1.0, 5.0},
		}),

		SideEffectFailuresTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "patients",
			Name:      "side_effect_failures_total",
			Help:      "Event publish and snapshot upload failures. Alert if non-zero.",
		}, []string{"kind"}),

		gatherer: reg,
	}
}

func (c *Collector) MetricsHandler() http.Handler {
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}

// ObserveStorage records how long a data file operation took.
func (c *Collector) ObserveStorage(operation string, start time.Time) {
	c.StorageOperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// Middleware labels requests with the chi route pattern rather than the raw
// path so patient IDs do not explode label cardinality. Requests that match
// no route share one label.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.InFlightGauge.Inc()
		defer c.InFlightGauge.Dec()

		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		path := unmatchedRoute
		if routeContext := chi.RouteContext(r.Context()); routeContext != nil {
			if pattern := routeContext.RoutePattern(); pattern != "" {
				path = pattern
			}
		}

		labels := []string{r.Method, path, strconv.Itoa(status)}
		c.RequestsTotal.WithLabelValues(labels...).Inc()
		c.RequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
	})
}
