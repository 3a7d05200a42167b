package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор метрик сервиса
// Все методы безопасны для nil-получателя: при выключенных метриках передается nil
type Metrics struct {
	serviceName string

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration   *prometheus.HistogramVec
	dbOpenConnections *prometheus.GaugeVec
	dbInUse           *prometheus.GaugeVec
	dbIdle            *prometheus.GaugeVec
	dbWaitCount       *prometheus.GaugeVec

	bookingsCreated *prometheus.CounterVec
	slotConflicts   *prometheus.CounterVec
	washTransitions *prometheus.CounterVec
	earlyArrival    *prometheus.CounterVec
}

// New создает метрики и регистрирует их в prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegisterer создает метрики в указанном реестре
func NewWithRegisterer(reg prometheus.Registerer, serviceName string) *Metrics {
	m := &Metrics{
		serviceName: serviceName,
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),
		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation"}),
		dbOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Number of established database connections",
		}, []string{"service"}),
		dbInUse: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Number of database connections currently in use",
		}, []string{"service"}),
		dbIdle: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Number of idle database connections",
		}, []string{"service"}),
		dbWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_wait_count",
			Help: "Total number of connections waited for",
		}, []string{"service"}),
		bookingsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "carwash_bookings_created_total",
			Help: "Number of created bookings",
		}, []string{"service"}),
		slotConflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "carwash_slot_conflicts_total",
			Help: "Number of booking attempts rejected because the slot was taken",
		}, []string{"service"}),
		washTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "carwash_wash_transitions_total",
			Help: "Number of booking status transitions",
		}, []string{"service", "transition"}),
		earlyArrival: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "carwash_early_arrival_notifications_total",
			Help: "Early-arrival notifications by result",
		}, []string{"service", "result"}),
	}

	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.dbQueryDuration,
		m.dbOpenConnections,
		m.dbInUse,
		m.dbIdle,
		m.dbWaitCount,
		m.bookingsCreated,
		m.slotConflicts,
		m.washTransitions,
		m.earlyArrival,
	)

	return m
}

// ObserveHTTPRequest фиксирует обработанный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(m.serviceName, method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(m.serviceName, method, path).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует длительность запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(m.serviceName, operation).Observe(duration.Seconds())
}

// SetDBPoolStats обновляет метрики пула соединений
func (m *Metrics) SetDBPoolStats(open, inUse, idle int, waitCount int64) {
	if m == nil {
		return
	}
	m.dbOpenConnections.WithLabelValues(m.serviceName).Set(float64(open))
	m.dbInUse.WithLabelValues(m.serviceName).Set(float64(inUse))
	m.dbIdle.WithLabelValues(m.serviceName).Set(float64(idle))
	m.dbWaitCount.WithLabelValues(m.serviceName).Set(float64(waitCount))
}

func (m *Metrics) IncBookingsCreated() {
	if m == nil {
		return
	}
	m.bookingsCreated.WithLabelValues(m.serviceName).Inc()
}

func (m *Metrics) IncSlotConflicts() {
	if m == nil {
		return
	}
	m.slotConflicts.WithLabelValues(m.serviceName).Inc()
}

// IncWashTransition transition: start, finish, reschedule, delete
func (m *Metrics) IncWashTransition(transition string) {
	if m == nil {
		return
	}
	m.washTransitions.WithLabelValues(m.serviceName, transition).Inc()
}

// IncEarlyArrival result: scheduled, sent, skipped, failed
func (m *Metrics) IncEarlyArrival(result string) {
	if m == nil {
		return
	}
	m.earlyArrival.WithLabelValues(m.serviceName, result).Inc()
}
