package testutil

import (
	"emojicounter/internal/models"
	"emojicounter/internal/providers"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu     sync.Mutex
	Logs   []LogEntry
	Closed bool
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
}

// Count returns how many entries were logged at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, l := range m.Logs {
		if l.Level == level {
			n++
		}
	}
	return n
}

// MockSnapshotWriter implements services.SnapshotWriter and keeps the last
// entries saved per guild.
type MockSnapshotWriter struct {
	mu    sync.Mutex
	Err   error
	Calls int
	Saved map[models.GuildID][]models.Entry
}

func NewMockSnapshotWriter() *MockSnapshotWriter {
	return &MockSnapshotWriter{Saved: make(map[models.GuildID][]models.Entry)}
}

func (m *MockSnapshotWriter) Save(guildID models.GuildID, entries []models.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	if m.Err != nil {
		return m.Err
	}
	m.Saved[guildID] = entries
	return nil
}

func (m *MockSnapshotWriter) Last(guildID models.GuildID) []models.Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Saved[guildID]
}

// MockMetrics implements providers.MetricsProviderInterface.
type MockMetrics struct {
	mu                  sync.Mutex
	EmojiEvents         map[string]int
	PersistenceCalls    int
	PersistenceFailures int
	CacheHits           int
	CacheMisses         int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{EmojiEvents: make(map[string]int)}
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}
func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}
func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PersistenceCalls++
}
func (m *MockMetrics) IncPersistenceFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PersistenceFailures++
}
func (m *MockMetrics) IncEmojiEvents(kind string, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EmojiEvents[kind] += n
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

