package services

import (
	"context"
	"time"

	"gocab/pkg/cache"
)

// CacheService is the application-facing slice of the redis cache. Services
// and repositories depend on this, never on the redis client directly.
type CacheService interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
	Increment(ctx context.Context, key string) (int64, error)
	SetExpire(ctx context.Context, key string, expiration time.Duration) error
	GetTTL(ctx context.Context, key string) (time.Duration, error)
}

type cacheService struct {
	redis *cache.RedisCache
}

func NewCacheService(redis *cache.RedisCache) CacheService {
	return &cacheService{redis: redis}
}

func (s *cacheService) Get(ctx context.Context, key string, dest interface{}) error {
	return s.redis.Get(ctx, key, dest)
}

func (s *cacheService) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return s.redis.Set(ctx, key, value, expiration)
}

func (s *cacheService) Delete(ctx context.Context, keys ...string) error {
	return s.redis.Delete(ctx, keys...)
}

func (s *cacheService) Exists(ctx context.Context, key string) (bool, error) {
	return s.redis.Exists(ctx, key)
}

func (s *cacheService) Increment(ctx context.Context, key string) (int64, error) {
	return s.redis.Increment(ctx, key)
}

func (s *cacheService) SetExpire(ctx context.Context, key string, expiration time.Duration) error {
	return s.redis.SetExpire(ctx, key, expiration)
}

func (s *cacheService) GetTTL(ctx context.Context, key string) (time.Duration, error) {
	return s.redis.GetTTL(ctx, key)
}
