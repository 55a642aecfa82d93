package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics метрики сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration   *prometheus.HistogramVec
	DBOpenConnections *prometheus.GaugeVec
	DBInUse           *prometheus.GaugeVec
	DBIdle            *prometheus.GaugeVec

	AppointmentsCreated    *prometheus.CounterVec
	AppointmentConflicts   *prometheus.CounterVec
	AppointmentTransitions *prometheus.CounterVec
}

// New регистрирует все метрики в registry по умолчанию
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer регистрирует все метрики в reg, тесты передают новый registry
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),

		DBOpenConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBInUse: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBIdle: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}, []string{"db"}),

		AppointmentsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "appointments_created_total",
			Help:        "Appointments created, by initiating role",
			ConstLabels: constLabels,
		}, []string{"role"}),

		AppointmentConflicts: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "appointment_conflicts_total",
			Help:        "Create or update attempts rejected because the slot was taken",
			ConstLabels: constLabels,
		}, []string{"operation"}),

		AppointmentTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "appointment_transitions_total",
			Help:        "Successful appointment status transitions",
			ConstLabels: constLabels,
		}, []string{"to"}),
	}
}

// IncAppointmentsCreated безопасен для nil, можно работать без метрик
func (m *Metrics) IncAppointmentsCreated(role string) {
	if m == nil {
		return
	}
	m.AppointmentsCreated.WithLabelValues(role).Inc()
}

// IncAppointmentConflicts безопасен для nil
func (m *Metrics) IncAppointmentConflicts(operation string) {
	if m == nil {
		return
	}
	m.AppointmentConflicts.WithLabelValues(operation).Inc()
}

// IncAppointmentTransitions безопасен для nil
func (m *Metrics) IncAppointmentTransitions(to string) {
	if m == nil {
		return
	}
	m.AppointmentTransitions.WithLabelValues(to).Inc()
}
