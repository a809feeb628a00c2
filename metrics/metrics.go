package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds every collector the service records to.
type Metrics struct {
	HTTPRequests       *prometheus.CounterVec
	HTTPDuration       *prometheus.HistogramVec
	OrdersPlaced       *prometheus.CounterVec
	PaymentIntents     *prometheus.CounterVec
	EventPublishFailed *prometheus.CounterVec
}

// New registers the collectors on reg. Passing a fresh prometheus.NewRegistry()
// keeps tests isolated from the default registry.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		OrdersPlaced: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "orders_placed_total",
			Help: "Order placement attempts by outcome.",
		}, []string{"outcome"}),
		PaymentIntents: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "payment_intents_total",
			Help: "Payment intent creations by outcome.",
		}, []string{"outcome"}),
		EventPublishFailed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "event_publish_failed_total",
			Help: "Count of domain event publish failures.",
		}, []string{"event"}),
	}
}

// ObserveHTTP records one finished request.
func (m *Metrics) ObserveHTTP(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, status).Inc()
	m.HTTPDuration.WithLabelValues(method, route, status).Observe(seconds)
}

func (m *Metrics) OrderOutcome(outcome string) {
	if m == nil {
		return
	}
	m.OrdersPlaced.WithLabelValues(outcome).Inc()
}

func (m *Metrics) PaymentIntentOutcome(outcome string) {
	if m == nil {
		return
	}
	m.PaymentIntents.WithLabelValues(outcome).Inc()
}

func (m *Metrics) PublishFailed(event string) {
	if m == nil {
		return
	}
	m.EventPublishFailed.WithLabelValues(event).Inc()
}
