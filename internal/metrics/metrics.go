package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeNetwork  = "network_error"
)

var (
	once sync.Once

	backendRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "coworking",
			Name:      "backend_requests_total",
			Help:      "Backend REST calls by endpoint and outcome.",
		},
		[]string{"endpoint", "outcome"},
	)

	payments = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "coworking",
			Name:      "payments_total",
			Help:      "Simulated payments by method.",
		},
		[]string{"method"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(backendRequests, payments)
	})
}

// IncRequest increments the backend request counter.
func IncRequest(endpoint, outcome string) {
	backendRequests.WithLabelValues(endpoint, outcome).Inc()
}

// IncPayment increments the payment counter for a method label.
func IncPayment(method string) {
	payments.WithLabelValues(method).Inc()
}
