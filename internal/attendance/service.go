package attendance

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/oklog/ulid/v2"
	"github.com/sitecrew-dev/attendance-tracker/backend/internal/domain"
	"github.com/sitecrew-dev/attendance-tracker/backend/internal/repository"
)

var ErrNameTooShort = errors.New("worker name must be at least 2 characters")

// Service owns the worker and attendance collections. Every mutation keeps
// the two in step (one record per worker, no orphans) and persists the
// affected collection(s) through the repository's detached writes.
//
// Checking name uniqueness is deliberately not its job; that belongs to the
// orchestration layer, which can see both the request and the collection.
type Service struct {
	mu      sync.Mutex
	workers []domain.Worker
	records []domain.AttendanceRecord
	repo    *repository.Repository
}

func NewService(repo *repository.Repository) *Service {
	return &Service{
		workers: make([]domain.Worker, 0),
		records: make([]domain.AttendanceRecord, 0),
		repo:    repo,
	}
}

// Load replaces the in-memory state with whatever the store holds.
func (s *Service) Load(ctx context.Context) {
	workers, records := s.repo.Load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.workers = workers
	s.records = records
}

// AddWorker creates a worker with a fresh ULID and the trimmed name, plus an
// attendance record with all seven days absent. The name must be at least
// 2 characters after trimming.
func (s *Service) AddWorker(name string) (domain.Worker, error) {
	trimmed := strings.TrimSpace(name)
	if utf8.RuneCountInString(trimmed) < 2 {
		return domain.Worker{}, ErrNameTooShort
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	worker := domain.Worker{
		ID:   ulid.Make().String(),
		Name: trimmed,
	}
	record := domain.AttendanceRecord{
		WorkerID:   worker.ID,
		WorkerName: worker.Name,
	}

	s.workers = append(s.workers, worker)
	s.records = append(s.records, record)

	s.repo.SaveWorkers(s.workers)
	s.repo.SaveRecords(s.records)

	return worker, nil
}

// RemoveWorker deletes the worker and its record. An unknown id is a no-op.
func (s *Service) RemoveWorker(workerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	workers := s.workers[:0]
	for _, worker := range s.workers {
		if worker.ID != workerID {
			workers = append(workers, worker)
		}
	}
	s.workers = workers

	records := s.records[:0]
	for _, record := range s.records {
		if record.WorkerID != workerID {
			records = append(records, record)
		}
	}
	s.records = records

	s.repo.SaveWorkers(s.workers)
	s.repo.SaveRecords(s.records)
}

// ToggleAttendance flips one day on the matching record. An unknown id is a
// no-op. Toggling twice restores the original value.
func (s *Service) ToggleAttendance(workerID string, day domain.Weekday) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.records {
		if s.records[i].WorkerID == workerID {
			s.records[i].Toggle(day)
			s.repo.SaveRecords(s.records)
			return
		}
	}
}

// ClearAllData empties both collections and removes their persisted entries.
func (s *Service) ClearAllData(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.workers = make([]domain.Worker, 0)
	s.records = make([]domain.AttendanceRecord, 0)

	if err := s.repo.Clear(ctx); err != nil {
		// best effort, same as a failed save: memory wins
		slog.Error("failed to clear persisted collections", "error", err)
	}
}

// Workers returns a snapshot copy of the worker collection.
func (s *Service) Workers() []domain.Worker {
	s.mu.Lock()
	defer s.mu.Unlock()

	workers := make([]domain.Worker, len(s.workers))
	copy(workers, s.workers)
	return workers
}

// Records returns a snapshot copy of the attendance collection.
func (s *Service) Records() []domain.AttendanceRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]domain.AttendanceRecord, len(s.records))
	copy(records, s.records)
	return records
}

// NameExists reports whether a worker with the given name already exists,
// compared case-insensitively after trimming.
func (s *Service) NameExists(name string) bool {
	trimmed := strings.TrimSpace(name)

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, worker := range s.workers {
		if strings.EqualFold(worker.Name, trimmed) {
			return true
		}
	}
	return false
}

// TotalPresentDays sums the present-day counts across all records.
func (s *Service) TotalPresentDays() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for i := range s.records {
		total += s.records[i].PresentDays()
	}
	return total
}
