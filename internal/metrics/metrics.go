// Package for Prometheus collectors around Spotify calls

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "spotify"

type Metrics struct {
	Requests *prometheus.CounterVec
	Failures *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

// Creates the collectors and registers them on reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Spotify Web API calls by method and response status.",
		}, []string{"method", "status"}),
		Failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "request_failures_total",
			Help:      "Failed Spotify Web API calls by status and reason.",
		}, []string{"status", "reason"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Latency of Spotify Web API calls, retries included.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}
	if reg != nil {
		reg.MustRegister(m.Requests, m.Failures, m.Duration)
	}
	return m
}

// Records a completed call. status is 0 when no response arrived.
func (m *Metrics) ObserveRequest(method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(method, statusLabel(status, status != 0)).Inc()
	m.Duration.WithLabelValues(method).Observe(elapsed.Seconds())
}

// Records a failure. Absent status or reason is labelled "none".
func (m *Metrics) ObserveFailure(status int, hasStatus bool, reason string, hasReason bool) {
	if m == nil {
		return
	}
	if !hasReason {
		reason = "none"
	}
	m.Failures.WithLabelValues(statusLabel(status, hasStatus), reason).Inc()
}

func statusLabel(status int, ok bool) string {
	if !ok {
		return "none"
	}
	return strconv.Itoa(status)
}
