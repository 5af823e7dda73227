package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sitecrew-dev/attendance-tracker/backend/internal/config"
)

const reportBusyKey = "attendance_report_busy"

// ReportLimiter is the busy flag guarding report generation: one report job
// in flight at a time. The TTL clears the flag on its own if the worker dies
// before releasing it.
type ReportLimiter struct {
	cfg *config.Config
	rdb *redis.Client
}

func NewReportLimiter(cfg *config.Config, rdb *redis.Client) *ReportLimiter {
	return &ReportLimiter{
		cfg: cfg,
		rdb: rdb,
	}
}

func (l *ReportLimiter) TryAcquire(ctx context.Context) (bool, error) {
	expiration := time.Duration(l.cfg.Report.BusyExpiration) * time.Second
	return l.rdb.SetNX(ctx, reportBusyKey, "1", expiration).Result()
}

func (l *ReportLimiter) Release(ctx context.Context) error {
	return l.rdb.Del(ctx, reportBusyKey).Err()
}
