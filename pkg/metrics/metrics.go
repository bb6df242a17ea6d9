package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор Prometheus коллекторов сервиса.
// Регистрируется в DefaultRegisterer, отдается через promhttp.
type Metrics struct {
	// HTTP слой
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Слой БД
	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec
	DBConnsOpen     prometheus.Gauge
	DBConnsIdle     prometheus.Gauge
	DBConnsInUse    prometheus.Gauge
	DBTxRetries     *prometheus.CounterVec
}

// New создает и регистрирует метрики сервиса serviceName
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests.",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency.",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		HTTPRequestsInFlight: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "http_requests_in_flight",
			Help:        "Number of HTTP requests currently being served.",
			ConstLabels: constLabels,
		}),

		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency.",
			ConstLabels: constLabels,
			Buckets:     []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"db", "operation"}),

		DBQueryErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Total number of failed database queries.",
			ConstLabels: constLabels,
		}, []string{"db", "operation"}),

		DBConnsOpen: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_connections_open",
			Help:        "Open connections in the pool.",
			ConstLabels: constLabels,
		}),

		DBConnsIdle: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_connections_idle",
			Help:        "Idle connections in the pool.",
			ConstLabels: constLabels,
		}),

		DBConnsInUse: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_connections_in_use",
			Help:        "Connections currently in use.",
			ConstLabels: constLabels,
		}),

		DBTxRetries: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_tx_retries_total",
			Help:        "Transaction retries after serialization failures.",
			ConstLabels: constLabels,
		}, []string{"db"}),
	}
}

// ObserveHTTPRequest фиксирует завершенный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, path, status string, seconds float64) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(seconds)
}

// ObserveDBQuery фиксирует выполненный SQL запрос
func (m *Metrics) ObserveDBQuery(db, operation string, seconds float64, err error) {
	m.DBQueryDuration.WithLabelValues(db, operation).Observe(seconds)
	if err != nil {
		m.DBQueryErrors.WithLabelValues(db, operation).Inc()
	}
}
