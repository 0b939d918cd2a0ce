package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор Prometheus-метрик сервиса
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// База данных
	DBQueryDuration   *prometheus.HistogramVec
	DBQueryErrors     *prometheus.CounterVec
	DBConnectionsOpen *prometheus.GaugeVec
	DBConnectionsIdle *prometheus.GaugeVec

	// Бизнес-метрики движка бронирования
	HoldsPlacedTotal          prometheus.Counter
	HoldsReleasedTotal        prometheus.Counter
	BookingsConfirmedTotal    *prometheus.CounterVec
	ReservationConflictsTotal *prometheus.CounterVec
	TransactionRetriesTotal   *prometheus.CounterVec
	SweepRunsTotal            *prometheus.CounterVec
	SweepHoldsRemovedTotal    prometheus.Counter
}

// New создает и регистрирует метрики в дефолтном регистре
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

		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"operation"}),

		DBQueryErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Total number of database query errors",
			ConstLabels: constLabels,
		}, []string{"operation"}),

		DBConnectionsOpen: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections_open",
			Help:        "Number of open database connections",
			ConstLabels: constLabels,
		}, []string{"state"}),

		DBConnectionsIdle: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections_idle",
			Help:        "Number of idle database connections",
			ConstLabels: constLabels,
		}, []string{"state"}),

		HoldsPlacedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "reservation_holds_placed_total",
			Help:        "Total number of slot holds placed",
			ConstLabels: constLabels,
		}),

		HoldsReleasedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "reservation_holds_released_total",
			Help:        "Total number of slot holds released",
			ConstLabels: constLabels,
		}),

		BookingsConfirmedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "reservation_bookings_confirmed_total",
			Help:        "Total number of bookings committed to slot state",
			ConstLabels: constLabels,
		}, []string{"type"}),

		ReservationConflictsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "reservation_conflicts_total",
			Help:        "Total number of slot mutations rejected by conflict checks",
			ConstLabels: constLabels,
		}, []string{"reason"}),

		TransactionRetriesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "reservation_transaction_retries_total",
			Help:        "Total number of optimistic write retries on venue state",
			ConstLabels: constLabels,
		}, []string{"operation"}),

		SweepRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "sweeper_runs_total",
			Help:        "Total number of expired-hold sweep runs",
			ConstLabels: constLabels,
		}, []string{"trigger"}),

		SweepHoldsRemovedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "sweeper_holds_removed_total",
			Help:        "Total number of expired holds removed by the sweeper",
			ConstLabels: constLabels,
		}),
	}
}
