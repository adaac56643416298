package cache

import (
	"context"

	"golang.org/x/sync/singleflight"

	"go-kiezmap/logger"
)

// Memo memoizes expensive lookups in a Store. Concurrent misses for one key share a single fetch.
type Memo struct {
	store Store
	group singleflight.Group
	log   *logger.Logger
}

func NewMemo(store Store, log *logger.Logger) *Memo {
	if log == nil {
		log = logger.Nop()
	}
	return &Memo{store: store, log: log.With("component", "Memo")}
}

// Put overwrites the entry for key.
func (m *Memo) Put(ctx context.Context, key string, v any) {
	if err := m.store.Set(ctx, key, v); err != nil {
		m.log.Warn("memo write failed", "key", key, "error", err)
	}
}

// Remember returns the cached value for key or calls fetch. The fetched value is stored only
// when fetch reports it as cacheable; store failures degrade to an uncached fetch.
func Remember[T any](ctx context.Context, m *Memo, key string, fetch func(context.Context) (T, bool)) T {
	var cached T
	found, err := m.store.Get(ctx, key, &cached)
	if err != nil {
		m.log.Warn("memo read failed", "key", key, "error", err)
	}
	if found {
		return cached
	}

	v, _, _ := m.group.Do(key, func() (any, error) {
		val, ok := fetch(ctx)
		if ok {
			m.Put(ctx, key, val)
		}
		return val, nil
	})
	return v.(T)
}
