package monitoring

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"handler", "method", "status_code"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"handler", "method", "status_code"},
	)
)

var (
	SimulationAdvancesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "simulation_advances_total",
			Help: "Total number of committed inventory advances",
		},
		[]string{"trigger"},
	)

	SimulationDaysAdvancedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "simulation_days_advanced_total",
			Help: "Total number of simulated days applied to the inventory",
		},
	)

	SimulationAdvanceDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "simulation_advance_duration_seconds",
			Help:    "Duration of inventory advances in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"trigger"},
	)

	SimulationAdvanceFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "simulation_advance_failures_total",
			Help: "Total number of failed inventory advances",
		},
		[]string{"trigger", "reason"},
	)

	InventoryItems = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "inventory_items",
			Help: "Number of stored items per category",
		},
		[]string{"category"},
	)

	InventoryItemsExpired = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "inventory_items_expired",
			Help: "Number of stored items past their sell-by date",
		},
	)

	InventoryItemsWorthless = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "inventory_items_worthless",
			Help: "Number of stored items at quality 0",
		},
	)

	InventoryItemsRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_items_rejected_total",
			Help: "Total number of items rejected for invalid quality",
		},
		[]string{"category"},
	)
)

var (
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Duration of database queries in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"query_type", "table"},
	)

	DBConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Number of active database connections",
		},
	)

	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		},
	)
)

var (
	RedisCommandDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "redis_command_duration_seconds",
			Help:    "Duration of Redis commands in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"command"},
	)

	RedisCommandErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redis_command_errors_total",
			Help: "Total number of failed Redis commands, cache misses excluded",
		},
		[]string{"command"},
	)

	RedisLockAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redis_lock_attempts_total",
			Help: "Total number of distributed lock attempts",
		},
		[]string{"lock_type"},
	)

	RedisLockSuccessTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redis_lock_success_total",
			Help: "Total number of successful lock acquisitions",
		},
		[]string{"lock_type"},
	)

	RedisLockFailureTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redis_lock_failure_total",
			Help: "Total number of failed lock acquisitions",
		},
		[]string{"lock_type", "reason"},
	)

	RedisLockDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "redis_lock_duration_seconds",
			Help:    "Duration of lock hold time in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"lock_type"},
	)

	KafkaPublishTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_publish_total",
			Help: "Total number of published events",
		},
		[]string{"topic", "status"},
	)
)

func TimeDBQuery(queryType, table string) func() {
	start := time.Now()
	return func() {
		duration := time.Since(start).Seconds()
		DBQueryDuration.WithLabelValues(queryType, table).Observe(duration)
	}
}

func RecordPublish(topic string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	KafkaPublishTotal.WithLabelValues(topic, status).Inc()
}

// getLockType keeps lock label cardinality bounded to the key namespace.
func getLockType(lockKey string) string {
	if lockKey == "" {
		return "unknown"
	}
	namespace, _, _ := strings.Cut(lockKey, ":")
	switch namespace {
	case "simulation", "inventory":
		return namespace
	default:
		return "other"
	}
}
