package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveComparison(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry())

	m.ObserveComparison("cli", 5*time.Millisecond, 0.78, 6)
	m.ObserveComparison("cli", time.Millisecond, 1, 4)
	m.ObserveComparison("http", time.Millisecond, 0, 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ComparisonsTotal.WithLabelValues("cli")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ComparisonsTotal.WithLabelValues("http")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.ComparisonDuration))
}

func TestObserveComparison_NilReceiver(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveComparison("cli", time.Millisecond, 0.5, 3)
	})
}
