package providers

import (
	"emojicounter/internal/structures"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"time"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObservePersistenceDuration(duration time.Duration)
	IncPersistenceFailures()
	IncEmojiEvents(kind string, n int)
}

// GuildCounter reports how many guilds currently hold a counter.
type GuildCounter interface {
	GuildCount() int
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	persistenceDuration prometheus.Histogram
	persistenceFailures prometheus.Counter
	emojiEvents         *prometheus.CounterVec
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) IncPersistenceFailures() {
	m.persistenceFailures.Inc()
}

func (m *MetricsProvider) IncEmojiEvents(kind string, n int) {
	if n <= 0 {
		return
	}
	m.emojiEvents.WithLabelValues(kind).Add(float64(n))
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "emojicounter_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "emojicounter_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "emojicounter_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "emojicounter_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "emojicounter_snapshot_write_duration_seconds",
			Help:    "Duration of guild snapshot writes in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		persistenceFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "emojicounter_snapshot_write_failures_total",
			Help: "Total number of failed guild snapshot writes",
		}),

		emojiEvents: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "emojicounter_emoji_events_total",
			Help: "Emoji counted, by source event",
		}, []string{"kind"}),
	}
}

// RegisterGuildGauge exposes the number of tracked guilds. It is a no-op
// when metrics are disabled.
func RegisterGuildGauge(conf *structures.Config, guilds GuildCounter) {
	if !conf.Metrics.Enabled {
		return
	}
	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "emojicounter_guilds_total",
		Help: "Total number of guilds with a counter",
	}, func() float64 {
		return float64(guilds.GuildCount())
	})
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (n *noopMetrics) IncPersistenceFailures()                          {}
func (n *noopMetrics) IncEmojiEvents(_ string, _ int)                   {}
