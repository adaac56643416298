package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	goredis "github.com/redis/go-redis/v9"

	"go-kiezmap/logger"
)

// Store keeps JSON-encoded values by key.
type Store interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any) error
	Close() error
}

type memoryStore struct {
	c *gocache.Cache
}

// NewMemoryStore keeps entries for the process lifetime.
func NewMemoryStore() Store {
	return &memoryStore{c: gocache.New(gocache.NoExpiration, 0)}
}

func (s *memoryStore) Get(_ context.Context, key string, dst any) (bool, error) {
	raw, ok := s.c.Get(key)
	if !ok {
		return false, nil
	}
	b, ok := raw.([]byte)
	if !ok {
		return false, fmt.Errorf("cache entry %q has type %T", key, raw)
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return false, fmt.Errorf("decode cache entry %q: %w", key, err)
	}
	return true, nil
}

func (s *memoryStore) Set(_ context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode cache entry %q: %w", key, err)
	}
	s.c.Set(key, b, gocache.NoExpiration)
	return nil
}

func (s *memoryStore) Close() error { return nil }

type redisStore struct {
	rdb    *goredis.Client
	prefix string
}

// NewRedisStore shares memoized values between instances. Entries never expire.
func NewRedisStore(addr string, log *logger.Logger) (Store, error) {
	if addr == "" {
		return nil, fmt.Errorf("missing redis address")
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	log.Info("memo store connected", "backend", "redis", "addr", addr)
	return &redisStore{rdb: rdb, prefix: "kiezmap:"}, nil
}

func (s *redisStore) Get(ctx context.Context, key string, dst any) (bool, error) {
	b, err := s.rdb.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get %q: %w", key, err)
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return false, fmt.Errorf("decode cache entry %q: %w", key, err)
	}
	return true, nil
}

func (s *redisStore) Set(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode cache entry %q: %w", key, err)
	}
	return s.rdb.Set(ctx, s.prefix+key, b, 0).Err()
}

func (s *redisStore) Close() error { return s.rdb.Close() }
