package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveRequest(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveRequest("GET", 200, 10*time.Millisecond)
	m.ObserveRequest("GET", 200, 10*time.Millisecond)
	m.ObserveRequest("GET", 0, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Requests.WithLabelValues("GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("GET", "none")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.Duration))
}

func TestObserveFailure(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveFailure(429, true, "", false)
	m.ObserveFailure(0, false, "", false)
	m.ObserveFailure(404, true, "NO_ACTIVE_DEVICE", true)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Failures.WithLabelValues("429", "none")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Failures.WithLabelValues("none", "none")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Failures.WithLabelValues("404", "NO_ACTIVE_DEVICE")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRequest("GET", 200, time.Second)
		m.ObserveFailure(500, true, "", false)
	})
}

func TestSeriesNames(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.ObserveRequest("GET", 200, time.Millisecond)
	m.ObserveFailure(503, true, "", false)

	families, err := reg.Gather()
	assert.NoError(t, err)
	var names []string
	for _, family := range families {
		names = append(names, family.GetName())
	}
	assert.ElementsMatch(t, []string{
		"spotify_requests_total",
		"spotify_request_failures_total",
		"spotify_request_duration_seconds",
	}, names)
}
