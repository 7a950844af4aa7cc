package providers

import (
	"emojicounter/internal/structures"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type metricsTestGuilds struct {
	n int
}

func (g *metricsTestGuilds) GuildCount() int { return g.n }

func useTestRegistry(t *testing.T) *prometheus.Registry {
	t.Helper()
	reg := prometheus.NewRegistry()
	prevReg, prevGath := prometheus.DefaultRegisterer, prometheus.DefaultGatherer
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg
	t.Cleanup(func() {
		prometheus.DefaultRegisterer = prevReg
		prometheus.DefaultGatherer = prevGath
	})
	return reg
}

func TestNoopMetrics_WhenDisabled(t *testing.T) {
	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: false},
	}
	m := NewMetricsProvider(conf)
	_, ok := m.(*noopMetrics)
	assert.True(t, ok, "should return noopMetrics when disabled")

	m.IncRequestsTotal("/ranking", 200)
	m.ObserveRequestDuration("/ranking", time.Millisecond)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.ObservePersistenceDuration(time.Millisecond)
	m.IncPersistenceFailures()
	m.IncEmojiEvents("message", 3)
}

func TestMetricsProvider_WhenEnabled(t *testing.T) {
	useTestRegistry(t)

	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	m := NewMetricsProvider(conf)
	_, ok := m.(*MetricsProvider)
	assert.True(t, ok, "should return MetricsProvider when enabled")
}

func TestMetricsProvider_Counters(t *testing.T) {
	useTestRegistry(t)

	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	m := NewMetricsProvider(conf).(*MetricsProvider)

	m.IncRequestsTotal("/ranking", 200)
	m.IncRequestsTotal("/ranking", 201)
	m.IncRequestsTotal("/ranking", 404)
	m.ObserveRequestDuration("/ranking", 5*time.Millisecond)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.IncCacheMisses()
	m.ObservePersistenceDuration(10 * time.Millisecond)
	m.IncPersistenceFailures()

	assert.Equal(t, 2.0, promtest.ToFloat64(m.requestsTotal.WithLabelValues("/ranking", "2xx")))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.requestsTotal.WithLabelValues("/ranking", "4xx")))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.cacheHits))
	assert.Equal(t, 2.0, promtest.ToFloat64(m.cacheMisses))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.persistenceFailures))
}

func TestMetricsProvider_EmojiEventsIgnoresNonPositive(t *testing.T) {
	useTestRegistry(t)

	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	m := NewMetricsProvider(conf).(*MetricsProvider)

	m.IncEmojiEvents("message", 3)
	m.IncEmojiEvents("message", 0)
	m.IncEmojiEvents("reaction_add", 1)
	m.IncEmojiEvents("reaction_add", -1)

	assert.Equal(t, 3.0, promtest.ToFloat64(m.emojiEvents.WithLabelValues("message")))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.emojiEvents.WithLabelValues("reaction_add")))
}

func TestRegisterGuildGauge(t *testing.T) {
	reg := useTestRegistry(t)
	guilds := &metricsTestGuilds{n: 2}

	RegisterGuildGauge(&structures.Config{Metrics: structures.MetricsConfig{Enabled: true}}, guilds)
	guilds.n = 5

	n, err := promtest.GatherAndCount(reg, "emojicounter_guilds_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	families, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, families, 1)
	assert.Equal(t, 5.0, families[0].GetMetric()[0].GetGauge().GetValue())
}

func TestRegisterGuildGauge_Disabled(t *testing.T) {
	reg := useTestRegistry(t)

	RegisterGuildGauge(&structures.Config{}, &metricsTestGuilds{n: 1})

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Empty(t, families)
}

func TestHttpStatusBucket(t *testing.T) {
	tests := []struct {
		code     int
		expected string
	}{
		{100, "1xx"},
		{200, "2xx"},
		{201, "2xx"},
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
