package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/sitecrew-dev/attendance-tracker/backend/internal/config"
)

// KV is the string key-value contract the store persists through. The found
// flag distinguishes a missing key from an empty value.
type KV interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key string, value string) error
	Del(ctx context.Context, keys ...string) error
}

type RedisKV struct {
	Client *redis.Client
}

func (kv RedisKV) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := kv.Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (kv RedisKV) Set(ctx context.Context, key string, value string) error {
	return kv.Client.Set(ctx, key, value, 0).Err()
}

func (kv RedisKV) Del(ctx context.Context, keys ...string) error {
	return kv.Client.Del(ctx, keys...).Err()
}

type Repository struct {
	cfg *config.Config
	kv  KV
	wg  sync.WaitGroup
}

func NewRepository(cfg *config.Config, kv KV) *Repository {
	return &Repository{
		cfg: cfg,
		kv:  kv,
	}
}
