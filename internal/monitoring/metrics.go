// Package monitoring exposes the service's Prometheus metrics.
package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles the collectors the core reports into. A nil *Metrics is
// valid and records nothing, so wiring metrics stays optional.
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	ordersCreated   prometheus.Counter
	ordersDelivered prometheus.Counter
	orderFailures   *prometheus.CounterVec
	phaseDuration   *prometheus.HistogramVec
	sessionAppends  prometheus.Counter
}

// NewMetrics creates and registers the collectors on reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tandoor_requests_total",
			Help: "Handled requests by classified intent and outcome.",
		}, []string{"intent", "outcome"}),
		ordersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tandoor_orders_created_total",
			Help: "Orders that passed the entry gate and were persisted.",
		}),
		ordersDelivered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tandoor_orders_delivered_total",
			Help: "Orders handed to customers.",
		}),
		orderFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tandoor_order_failures_total",
			Help: "Order placement failures by reason.",
		}, []string{"reason"}),
		phaseDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tandoor_phase_duration_seconds",
			Help:    "Observed duration of each cooking phase.",
			Buckets: prometheus.ExponentialBuckets(0.1, 3, 8),
		}, []string{"phase"}),
		sessionAppends: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tandoor_session_appends_total",
			Help: "Messages appended to session memory.",
		}),
	}
	reg.MustRegister(
		m.requestsTotal,
		m.ordersCreated,
		m.ordersDelivered,
		m.orderFailures,
		m.phaseDuration,
		m.sessionAppends,
	)
	return m
}

// RequestHandled counts one handled request
func (m *Metrics) RequestHandled(intent string, success bool) {
	if m == nil {
		return
	}
	outcome := "ok"
	if !success {
		outcome = "failed"
	}
	m.requestsTotal.WithLabelValues(intent, outcome).Inc()
}

// OrderCreated counts one persisted order
func (m *Metrics) OrderCreated() {
	if m == nil {
		return
	}
	m.ordersCreated.Inc()
}

// OrderDelivered counts one delivered order
func (m *Metrics) OrderDelivered() {
	if m == nil {
		return
	}
	m.ordersDelivered.Inc()
}

// OrderFailed counts one placement failure by reason
func (m *Metrics) OrderFailed(reason string) {
	if m == nil {
		return
	}
	m.orderFailures.WithLabelValues(reason).Inc()
}

// PhaseCompleted records the duration of one finished cooking phase
func (m *Metrics) PhaseCompleted(phase string, d time.Duration) {
	if m == nil {
		return
	}
	m.phaseDuration.WithLabelValues(phase).Observe(d.Seconds())
}

// SessionAppended counts one transcript append
func (m *Metrics) SessionAppended() {
	if m == nil {
		return
	}
	m.sessionAppends.Inc()
}
