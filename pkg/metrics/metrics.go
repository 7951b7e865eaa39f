package metrics

import (
	"database/sql"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "clubos"

// Metrics bundles every Prometheus collector exported by the service.
// Collectors are registered on the default registry, so a single New call
// per process is expected.
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueriesTotal  *prometheus.CounterVec
	dbQueryDuration *prometheus.HistogramVec
	dbConnsOpen     *prometheus.GaugeVec
	dbConnsInUse    *prometheus.GaugeVec
	dbConnsIdle     *prometheus.GaugeVec

	draftsActive          *prometheus.GaugeVec
	availabilityDegraded  *prometheus.CounterVec
	reservationsCommitted *prometheus.CounterVec
}

// New creates and registers all collectors. serviceName becomes the value of
// the "service" label on every series.
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		httpRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "http_requests_total",
			Help:        "Total HTTP requests processed, by method, path and status code.",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		httpRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency in seconds.",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}, []string{"method", "path"}),

		dbQueriesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "db_queries_total",
			Help:        "Total database queries, by operation and outcome.",
			ConstLabels: constLabels,
		}, []string{"operation", "status"}),

		dbQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency in seconds.",
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			ConstLabels: constLabels,
		}, []string{"operation"}),

		dbConnsOpen: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "db_connections_open",
			Help:        "Open database connections.",
			ConstLabels: constLabels,
		}, nil),

		dbConnsInUse: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "db_connections_in_use",
			Help:        "Database connections currently in use.",
			ConstLabels: constLabels,
		}, nil),

		dbConnsIdle: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "db_connections_idle",
			Help:        "Idle database connections.",
			ConstLabels: constLabels,
		}, nil),

		draftsActive: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "drafts_active",
			Help:        "Draft reservations currently held in memory.",
			ConstLabels: constLabels,
		}, nil),

		availabilityDegraded: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "availability_checks_degraded_total",
			Help:        "Availability checks that failed open due to collaborator errors or timeouts.",
			ConstLabels: constLabels,
		}, nil),

		reservationsCommitted: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "reservations_committed_total",
			Help:        "Reservations committed to storage, by mode.",
			ConstLabels: constLabels,
		}, []string{"mode"}),
	}
}

// ObserveHTTPRequest records one finished HTTP request.
func (m *Metrics) ObserveHTTPRequest(method, path, status string, seconds float64) {
	m.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(seconds)
}

// ObserveDBQuery records one finished database query.
func (m *Metrics) ObserveDBQuery(operation string, err error, seconds float64) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.dbQueriesTotal.WithLabelValues(operation, status).Inc()
	m.dbQueryDuration.WithLabelValues(operation).Observe(seconds)
}

// SetDBPoolStats publishes connection pool gauges.
func (m *Metrics) SetDBPoolStats(stats sql.DBStats) {
	m.dbConnsOpen.WithLabelValues().Set(float64(stats.OpenConnections))
	m.dbConnsInUse.WithLabelValues().Set(float64(stats.InUse))
	m.dbConnsIdle.WithLabelValues().Set(float64(stats.Idle))
}

// SetActiveDrafts publishes the in-memory draft count.
func (m *Metrics) SetActiveDrafts(n int) {
	m.draftsActive.WithLabelValues().Set(float64(n))
}

// IncAvailabilityDegraded counts one fail-open availability check.
func (m *Metrics) IncAvailabilityDegraded() {
	m.availabilityDegraded.WithLabelValues().Inc()
}

// IncReservationsCommitted counts one committed reservation.
func (m *Metrics) IncReservationsCommitted(mode string) {
	m.reservationsCommitted.WithLabelValues(mode).Inc()
}
