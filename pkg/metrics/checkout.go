package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics records the outcome of order submissions.
type CheckoutMetrics struct {
	duration  *prometheus.HistogramVec
	submitted prometheus.Counter
	failed    *prometheus.CounterVec
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "checkout_submit_duration_seconds",
		Help:    "Duration of checkout submissions in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	submitted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_orders_submitted",
		Help: "Orders submitted successfully.",
	})
	failed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_submit_failures",
		Help: "Checkout submissions failed, by pipeline step.",
	}, []string{"step"})
	reg.MustRegister(duration, submitted, failed)
	return &CheckoutMetrics{
		duration:  duration,
		submitted: submitted,
		failed:    failed,
	}
}

// ObserveDuration records how long a submission took for the given outcome.
func (c *CheckoutMetrics) ObserveDuration(outcome string, duration time.Duration) {
	if c == nil || c.duration == nil {
		return
	}
	c.duration.WithLabelValues(normalizeLabel(outcome)).Observe(duration.Seconds())
}

// IncSubmitted increments the successful submission counter.
func (c *CheckoutMetrics) IncSubmitted() {
	if c == nil || c.submitted == nil {
		return
	}
	c.submitted.Inc()
}

// IncFailed increments the failure counter for the named pipeline step.
func (c *CheckoutMetrics) IncFailed(step string) {
	if c == nil || c.failed == nil {
		return
	}
	c.failed.WithLabelValues(normalizeLabel(step)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
