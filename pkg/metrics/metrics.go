package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics коллектор prometheus-метрик сервиса
// HTTP-метрики пишутся из middleware, DB-метрики из обёртки dbmetrics.
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration *prometheus.HistogramVec
	dbConnections   *prometheus.GaugeVec
}

// New регистрирует и возвращает коллектор метрик
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		httpRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		httpRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}, []string{"method", "path"}),

		dbQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			Buckets:     []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			ConstLabels: constLabels,
		}, []string{"operation"}),

		dbConnections: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections",
			Help:        "Database connection pool state",
			ConstLabels: constLabels,
		}, []string{"state"}),
	}
}

// ObserveHTTPRequest фиксирует завершённый HTTP-запрос
func (m *Metrics) ObserveHTTPRequest(method, path, status string, seconds float64) {
	m.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(seconds)
}

// ObserveDBQuery фиксирует длительность SQL-запроса
func (m *Metrics) ObserveDBQuery(operation string, seconds float64) {
	m.dbQueryDuration.WithLabelValues(operation).Observe(seconds)
}

// SetDBConnections обновляет gauge состояния пула соединений
func (m *Metrics) SetDBConnections(state string, value float64) {
	m.dbConnections.WithLabelValues(state).Set(value)
}
