package providers

import (
	"io"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"

	"wsd/internal/models"
	"wsd/internal/structures"
)

// --- minimal mocks for the gauge callbacks ---

type metricsTestService struct{}

func (m *metricsTestService) RecordToday() (*models.RecordResult, error) { return nil, nil }
func (m *metricsTestService) GetAll() (map[string]int, int)              { return nil, 0 }
func (m *metricsTestService) ClearAll() error                            { return nil }
func (m *metricsTestService) Restore() error                             { return nil }
func (m *metricsTestService) Persist() error                             { return nil }
func (m *metricsTestService) Snapshot() error                            { return nil }
func (m *metricsTestService) PutLedger(_ map[string]int)                 {}
func (m *metricsTestService) WriteSnapshotTo(_ io.Writer) error          { return nil }
func (m *metricsTestService) ActiveDays() int                            { return 7 }
func (m *metricsTestService) CurrentStreak() int                         { return 3 }
func (m *metricsTestService) TotalXP() int                               { return 700 }

type metricsTestSessions struct{}

func (m *metricsTestSessions) SessionCount() int { return 2 }

func swapRegistry() func() {
	reg := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg
	return func() {
		prometheus.DefaultRegisterer = prometheus.NewRegistry()
		prometheus.DefaultGatherer = prometheus.DefaultRegisterer.(prometheus.Gatherer)
	}
}

func TestNoopMetrics_WhenDisabled(t *testing.T) {
	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: false},
	}
	m := NewMetricsProvider(conf, &metricsTestService{}, &metricsTestSessions{})
	_, ok := m.(*noopMetrics)
	assert.True(t, ok, "should return noopMetrics when disabled")

	// Ensure no-op methods don't panic
	m.IncRequestsTotal("/map", 200)
	m.ObserveRequestDuration("/map", time.Millisecond)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.ObservePersistenceDuration(time.Millisecond)
}

func TestMetricsProvider_WhenEnabled(t *testing.T) {
	defer swapRegistry()()

	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	m := NewMetricsProvider(conf, &metricsTestService{}, &metricsTestSessions{})
	_, ok := m.(*MetricsProvider)
	assert.True(t, ok, "should return MetricsProvider when enabled")
}

func TestMetricsProvider_IncrementCounters(t *testing.T) {
	defer swapRegistry()()

	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	m := NewMetricsProvider(conf, &metricsTestService{}, &metricsTestSessions{})

	// These should not panic
	m.IncRequestsTotal("/map", 200)
	m.IncRequestsTotal("/map", 404)
	m.ObserveRequestDuration("/map", 5*time.Millisecond)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.ObservePersistenceDuration(100 * time.Millisecond)
}

func TestMetricsProvider_GaugesReadFromService(t *testing.T) {
	defer swapRegistry()()

	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	NewMetricsProvider(conf, &metricsTestService{}, &metricsTestSessions{})

	families, err := prometheus.DefaultGatherer.Gather()
	assert.NoError(t, err)

	values := make(map[string]float64)
	for _, mf := range families {
		if len(mf.GetMetric()) == 1 && mf.GetMetric()[0].GetGauge() != nil {
			values[mf.GetName()] = mf.GetMetric()[0].GetGauge().GetValue()
		}
	}
	assert.Equal(t, 7.0, values["wsd_active_days"])
	assert.Equal(t, 3.0, values["wsd_current_streak_days"])
	assert.Equal(t, 700.0, values["wsd_total_xp"])
	assert.Equal(t, 2.0, values["wsd_watch_sessions"])
}

func TestHttpStatusBucket(t *testing.T) {
	tests := []struct {
		code     int
		expected string
	}{
		{100, "1xx"},
		{200, "2xx"},
		{202, "2xx"},
		{301, "3xx"},
		{400, "4xx"},
		{404, "4xx"},
		{500, "5xx"},
		{503, "5xx"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, httpStatusBucket(tt.code))
	}
}
