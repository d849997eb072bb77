package testutil

import (
	"bytes"
	"io"
	"sync"
	"time"

	"wsd/internal/messages"
	"wsd/internal/models"
	"wsd/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
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
func (m *MockLogger) Close() {}

// Entries returns a copy of the recorded log entries.
func (m *MockLogger) Entries() []LogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]LogEntry, len(m.Logs))
	copy(out, m.Logs)
	return out
}

// MockLedgerStore implements interfaces.LedgerStoreInterface with injectable
// load data and an optional save failure.
type MockLedgerStore struct {
	mu            sync.Mutex
	LoadData      map[string]int
	LoadXP        int
	LoadErr       error
	SaveErr       error
	SaveCalls     []SaveCall
	SnapshotCalls int
}

type SaveCall struct {
	Data    map[string]int
	TotalXP int
}

func (m *MockLedgerStore) Load() (map[string]int, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, 0, m.LoadErr
	}
	data := make(map[string]int, len(m.LoadData))
	for k, v := range m.LoadData {
		data[k] = v
	}
	return data, m.LoadXP, nil
}

func (m *MockLedgerStore) Save(data map[string]int, totalXP int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	saved := make(map[string]int, len(data))
	for k, v := range data {
		saved[k] = v
	}
	m.SaveCalls = append(m.SaveCalls, SaveCall{Data: saved, TotalXP: totalXP})
	return nil
}

func (m *MockLedgerStore) SaveSnapshot(data map[string]int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SnapshotCalls++
	return nil
}

func (m *MockLedgerStore) Close() {}

// LastSave returns the most recent Save call, or nil if none happened.
func (m *MockLedgerStore) LastSave() *SaveCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.SaveCalls) == 0 {
		return nil
	}
	call := m.SaveCalls[len(m.SaveCalls)-1]
	return &call
}

// MockRecordService implements services.RecordServiceInterface.
type MockRecordService struct {
	mu            sync.Mutex
	RecordResult  *models.RecordResult
	RecordErr     error
	RecordCalls   int
	MapData       map[string]int
	XP            int
	ClearErr      error
	ClearCalls    int
	RestoreCalls  int
	PersistCalls  int
	SnapshotCalls int
	SnapshotBody  []byte
	Days          int
	Streak        int
}

func (m *MockRecordService) RecordToday() (*models.RecordResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RecordCalls++
	if m.RecordErr != nil {
		return nil, m.RecordErr
	}
	if m.RecordResult != nil {
		return m.RecordResult, nil
	}
	return &models.RecordResult{Key: models.TodayKey(0), Count: 1, Gained: models.XPPerView, TotalXP: models.XPPerView}, nil
}

func (m *MockRecordService) GetAll() (map[string]int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data := make(map[string]int, len(m.MapData))
	for k, v := range m.MapData {
		data[k] = v
	}
	return data, m.XP
}

func (m *MockRecordService) ClearAll() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearCalls++
	if m.ClearErr != nil {
		return m.ClearErr
	}
	m.MapData = nil
	m.XP = 0
	return nil
}

func (m *MockRecordService) Restore() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RestoreCalls++
	return nil
}

func (m *MockRecordService) Persist() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PersistCalls++
	return nil
}

func (m *MockRecordService) Snapshot() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SnapshotCalls++
	return nil
}

func (m *MockRecordService) PutLedger(data map[string]int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MapData = data
}

func (m *MockRecordService) WriteSnapshotTo(w io.Writer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, err := io.Copy(w, bytes.NewReader(m.SnapshotBody))
	return err
}

func (m *MockRecordService) ActiveDays() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Days
}

func (m *MockRecordService) CurrentStreak() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Streak
}

func (m *MockRecordService) TotalXP() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.XP
}

// MockDispatcher implements messages.DispatcherInterface with an injectable
// handler. The default handler answers like an empty service.
type MockDispatcher struct {
	mu       sync.Mutex
	SendFn   func(req messages.Request) (messages.Response, error)
	Requests []messages.Request
	Started  bool
	Stopped  bool
}

func (m *MockDispatcher) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Started = true
}

func (m *MockDispatcher) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Stopped = true
}

func (m *MockDispatcher) Send(req messages.Request) (messages.Response, error) {
	m.mu.Lock()
	m.Requests = append(m.Requests, req)
	fn := m.SendFn
	m.mu.Unlock()
	if fn != nil {
		return fn(req)
	}
	switch req.Action {
	case messages.ActionRecordToday:
		return messages.RecordResponse{OK: true, Key: models.TodayKey(0), Count: 1, Gained: models.XPPerView, TotalXP: models.XPPerView}, nil
	case messages.ActionGetMap, messages.ActionGetAll:
		return messages.MapResponse{Map: map[string]int{}}, nil
	case messages.ActionClearAll:
		return messages.ClearResponse{OK: true}, nil
	}
	return nil, messages.ErrMalformedMessage
}

// Sent returns a copy of the requests seen so far.
func (m *MockDispatcher) Sent() []messages.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]messages.Request, len(m.Requests))
	copy(out, m.Requests)
	return out
}

// MockGuard implements watch.GuardInterface.
type MockGuard struct {
	mu        sync.Mutex
	Recorded  bool
	MarkErr   error
	MarkCalls int
}

func (m *MockGuard) HasRecordedToday() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Recorded
}

func (m *MockGuard) MarkRecordedToday() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MarkCalls++
	if m.MarkErr != nil {
		return m.MarkErr
	}
	m.Recorded = true
	return nil
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

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu           sync.Mutex
	Requests     map[string]int
	Durations    int
	CacheHits    int
	CacheMisses  int
	Persistences int
}

func (m *MockMetrics) IncRequestsTotal(endpoint string, status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Requests == nil {
		m.Requests = make(map[string]int)
	}
	m.Requests[endpoint]++
}

func (m *MockMetrics) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Durations++
}

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

func (m *MockMetrics) ObservePersistenceDuration(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Persistences++
}
