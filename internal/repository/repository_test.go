package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/sitecrew-dev/attendance-tracker/backend/internal/config"
	"github.com/sitecrew-dev/attendance-tracker/backend/internal/domain"
	"github.com/stretchr/testify/require"
)

type memKV struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemKV() *memKV {
	return &memKV{data: map[string]string{}}
}

func (kv *memKV) Get(_ context.Context, key string) (string, bool, error) {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	value, found := kv.data[key]
	return value, found, nil
}

func (kv *memKV) Set(_ context.Context, key string, value string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	kv.data[key] = value
	return nil
}

func (kv *memKV) Del(_ context.Context, keys ...string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	for _, key := range keys {
		delete(kv.data, key)
	}
	return nil
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Redis.OperationTimeout = 5
	return cfg
}

func TestLoadDefaultsToEmptyWhenMissing(t *testing.T) {
	repo := NewRepository(testConfig(), newMemKV())

	workers, records := repo.Load(context.Background())
	require.NotNil(t, workers)
	require.NotNil(t, records)
	require.Empty(t, workers)
	require.Empty(t, records)
}

func TestLoadToleratesCorruptValue(t *testing.T) {
	kv := newMemKV()
	kv.data[WorkersKey] = "{definitely not json"
	kv.data[RecordsKey] = `[{"workerId":"1","workerName":"Alice","monday":true}]`

	repo := NewRepository(testConfig(), kv)
	workers, records := repo.Load(context.Background())

	// the corrupt collection falls back to empty, the good one still loads
	require.Empty(t, workers)
	require.Len(t, records, 1)
	require.Equal(t, "Alice", records[0].WorkerName)
	require.True(t, records[0].Monday)
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	kv := newMemKV()
	repo := NewRepository(testConfig(), kv)

	workers := []domain.Worker{
		{ID: "01J0000000000000000000001", Name: "Alice"},
		{ID: "01J0000000000000000000002", Name: "Bob"},
	}
	records := []domain.AttendanceRecord{
		{WorkerID: workers[0].ID, WorkerName: "Alice", Monday: true, Wednesday: true},
		{WorkerID: workers[1].ID, WorkerName: "Bob"},
	}

	repo.SaveWorkers(workers)
	repo.SaveRecords(records)
	repo.Flush()

	loadedWorkers, loadedRecords := repo.Load(context.Background())
	require.Equal(t, workers, loadedWorkers)
	require.Equal(t, records, loadedRecords)
}

func TestClearRemovesBothKeys(t *testing.T) {
	kv := newMemKV()
	repo := NewRepository(testConfig(), kv)

	repo.SaveWorkers([]domain.Worker{{ID: "1", Name: "Alice"}})
	repo.SaveRecords([]domain.AttendanceRecord{{WorkerID: "1", WorkerName: "Alice"}})
	repo.Flush()

	require.NoError(t, repo.Clear(context.Background()))

	_, found, _ := kv.Get(context.Background(), WorkersKey)
	require.False(t, found)
	_, found, _ = kv.Get(context.Background(), RecordsKey)
	require.False(t, found)
}

func TestSaveSnapshotsBeforeDetaching(t *testing.T) {
	kv := newMemKV()
	repo := NewRepository(testConfig(), kv)

	workers := []domain.Worker{{ID: "1", Name: "Alice"}}
	repo.SaveWorkers(workers)
	workers[0].Name = "Mallory" // mutate after the call, before the write may land
	repo.Flush()

	loaded, _ := repo.Load(context.Background())
	require.Equal(t, "Alice", loaded[0].Name)
}
