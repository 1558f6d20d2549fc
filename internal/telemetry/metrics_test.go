package telemetry

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveCall(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)

	m.ObserveCall("pinecone.chat", "Pinecone", 20*time.Millisecond, 10, 5, nil)
	m.ObserveCall("pinecone.chat", "Pinecone", 30*time.Millisecond, 0, 0, errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("pinecone.chat", "Pinecone", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("pinecone.chat", "Pinecone", "error")))
	assert.Equal(t, 10.0, testutil.ToFloat64(m.tokens.WithLabelValues("pinecone.chat", "Pinecone", "prompt")))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.tokens.WithLabelValues("pinecone.chat", "Pinecone", "completion")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.latency))
}

func TestNewMetricsSharedRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewMetrics(reg)
	require.NoError(t, err)
	second, err := NewMetrics(reg)
	require.NoError(t, err)

	first.ObserveCall("pinecone.embedding", "e5", time.Millisecond, 0, 0, nil)
	second.ObserveCall("pinecone.embedding", "e5", time.Millisecond, 0, 0, nil)
	assert.Equal(t, 2.0, testutil.ToFloat64(first.requests.WithLabelValues("pinecone.embedding", "e5", "ok")))
}

func TestNewMetricsConflictingRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "pinecone_requests_total",
		Help: "conflicting type",
	}))
	_, err := NewMetrics(reg)
	assert.Error(t, err)
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveCall("p", "m", time.Second, 1, 1, nil)
	})
}
