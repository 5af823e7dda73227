package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sitecrew-dev/attendance-tracker/backend/internal/attendance"
	"github.com/sitecrew-dev/attendance-tracker/backend/internal/config"
	"github.com/sitecrew-dev/attendance-tracker/backend/internal/repository"
	"github.com/sitecrew-dev/attendance-tracker/backend/internal/utils"
)

func main() {
	var n int
	flag.IntVar(&n, "n", 5, "number of sample workers to insert")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// connect to redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Redis.ConnectTimeout)*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}

	repo := repository.NewRepository(cfg, repository.RedisKV{Client: rdb})
	service := attendance.NewService(repo)

	// start from a clean slate
	service.ClearAllData(context.Background())

	inserted := 0
	for inserted < n {
		name := utils.GenerateRandomWorkerName()
		if service.NameExists(name) {
			continue
		}

		worker, err := service.AddWorker(name)
		if err != nil {
			logger.Error("failed to add worker", "name", name, "error", err)
			os.Exit(1)
		}

		for _, day := range utils.GenerateRandomPresentDays() {
			service.ToggleAttendance(worker.ID, day)
		}

		logger.Info("inserted worker", "id", worker.ID, "name", worker.Name)
		inserted++
	}

	repo.Flush()
	logger.Info("seed finished", "workers", inserted)
}
