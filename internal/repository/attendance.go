package repository

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/sitecrew-dev/attendance-tracker/backend/internal/domain"
)

const (
	WorkersKey = "attendance_workers"
	RecordsKey = "attendance_records"
)

// Load reads both collections. A missing key or a value that fails to parse
// yields an empty collection for that key; failures are logged and never
// returned so a broken store cannot break startup.
func (r *Repository) Load(ctx context.Context) ([]domain.Worker, []domain.AttendanceRecord) {
	workers := make([]domain.Worker, 0)
	records := make([]domain.AttendanceRecord, 0)

	r.loadJSON(ctx, WorkersKey, &workers)
	r.loadJSON(ctx, RecordsKey, &records)

	return workers, records
}

func (r *Repository) loadJSON(ctx context.Context, key string, v any) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Redis.OperationTimeout)*time.Second)
	defer cancel()

	value, found, err := r.kv.Get(ctx, key)
	if err != nil {
		slog.Error("failed to read collection from store", "key", key, "error", err)
		return
	}
	if !found {
		return
	}

	if err := json.Unmarshal([]byte(value), v); err != nil {
		slog.Error("failed to parse stored collection", "key", key, "error", err)
	}
}

func (r *Repository) SaveWorkers(workers []domain.Worker) {
	r.saveJSON(WorkersKey, workers)
}

func (r *Repository) SaveRecords(records []domain.AttendanceRecord) {
	r.saveJSON(RecordsKey, records)
}

// saveJSON serializes synchronously, so the caller's collection is captured
// before it can change, then writes detached. A failed write is logged and
// not retried; the in-memory state stays authoritative.
func (r *Repository) saveJSON(key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("failed to serialize collection", "key", key, "error", err)
		return
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Redis.OperationTimeout)*time.Second)
		defer cancel()

		if err := r.kv.Set(ctx, key, string(data)); err != nil {
			slog.Error("failed to save collection", "key", key, "error", err)
		}
	}()
}

// Flush waits for all detached writes. Tests use it instead of sleeping;
// the api calls it once on shutdown.
func (r *Repository) Flush() {
	r.wg.Wait()
}

func (r *Repository) Clear(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Redis.OperationTimeout)*time.Second)
	defer cancel()

	return r.kv.Del(ctx, WorkersKey, RecordsKey)
}
