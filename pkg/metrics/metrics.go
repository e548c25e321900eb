package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор прометеевских метрик сервиса
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Решения о допуске бронирований (accepted / slot_full / slot_conflict / ...)
	AdmissionsTotal *prometheus.CounterVec

	// База данных
	DBQueriesTotal  *prometheus.CounterVec
	DBQueryDuration *prometheus.HistogramVec
	DBConnsOpen     *prometheus.GaugeVec
	DBConnsInUse    *prometheus.GaugeVec
	DBConnsIdle     *prometheus.GaugeVec
}

// New создает и регистрирует метрики в default registry
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		AdmissionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_admissions_total",
			Help:        "Booking admission decisions by mode and outcome",
			ConstLabels: constLabels,
		}, []string{"mode", "outcome"}),

		DBQueriesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_queries_total",
			Help:        "Total number of database queries",
			ConstLabels: constLabels,
		}, []string{"operation"}),

		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"operation"}),

		DBConnsOpen: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections_open",
			Help:        "Number of open database connections",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBConnsInUse: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections_in_use",
			Help:        "Number of database connections currently in use",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBConnsIdle: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections_idle",
			Help:        "Number of idle database connections",
			ConstLabels: constLabels,
		}, []string{"db"}),
	}
}

// ObserveAdmission инкрементирует счётчик решений о допуске
func (m *Metrics) ObserveAdmission(mode, outcome string) {
	if m == nil {
		return
	}
	m.AdmissionsTotal.WithLabelValues(mode, outcome).Inc()
}
