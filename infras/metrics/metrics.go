package metrics

import (
	"hotelres/config"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	defaultNamespace = "hotelres"

	OutcomeConfirmed = "confirmed"
	OutcomeDeclined  = "declined"
	OutcomeTimeout   = "timeout"
)

// Metrics owns its registry so several instances can live in one process.
// Every method is safe on a nil *Metrics, which is what a disabled
// configuration hands out.
type Metrics struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	transitions     *prometheus.CounterVec
	payments        *prometheus.CounterVec
	activeCheckouts prometheus.Gauge
}

// Provide returns nil when metrics are disabled.
func Provide(cfg *config.Config) *Metrics {
	if !cfg.App.Metrics.Enable {
		return nil
	}

	return New(cfg.App.Metrics.Namespace)
}

func New(namespace string) *Metrics {
	if namespace == "" {
		namespace = defaultNamespace
	}

	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_transitions_total",
			Help:      "Accepted checkout transitions.",
		}, []string{"from", "to", "event"}),
		payments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_payments_total",
			Help:      "Payment attempts by method and outcome.",
		}, []string{"method", "outcome"}),
		activeCheckouts: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "checkouts_active",
			Help:      "Checkouts currently held in memory.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.requestDuration,
		m.transitions,
		m.payments,
		m.activeCheckouts,
	)

	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}

	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}

	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) CountTransition(from, to, event string) {
	if m == nil {
		return
	}

	m.transitions.WithLabelValues(from, to, event).Inc()
}

func (m *Metrics) CountPayment(method, outcome string) {
	if m == nil {
		return
	}

	m.payments.WithLabelValues(method, outcome).Inc()
}

func (m *Metrics) SetActiveCheckouts(count int) {
	if m == nil {
		return
	}

	m.activeCheckouts.Set(float64(count))
}
