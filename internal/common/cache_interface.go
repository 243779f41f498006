package common

import (
	"context"
	"time"
)

// CacheInterface is implemented by the in-memory and the Redis cache.
// Values are stored as JSON so both backends behave the same way.
type CacheInterface interface {
	// Get decodes the cached value into dest. It reports false on a miss.
	Get(ctx context.Context, key string, dest any) (bool, error)

	Set(ctx context.Context, key string, value any, ttl time.Duration) error

	Delete(ctx context.Context, keys ...string) error

	// DeletePrefix removes every key starting with prefix.
	DeletePrefix(ctx context.Context, prefix string) error

	Ping(ctx context.Context) error

	// Name labels the backend in metrics and health output.
	Name() string

	Close() error
}

// GetOrLoad returns the cached value for key or loads, stores and returns it.
// The second return value reports a cache hit.
func GetOrLoad[T any](
	ctx context.Context,
	cache CacheInterface,
	key string,
	ttl time.Duration,
	loader func(context.Context) (T, error),
) (T, bool, error) {
	var cached T
	if found, err := cache.Get(ctx, key, &cached); err == nil && found {
		return cached, true, nil
	}

	val, err := loader(ctx)
	if err != nil {
		var zero T
		return zero, false, err
	}

	// A failed write only costs the next request a reload.
	_ = cache.Set(ctx, key, val, ttl)
	return val, false, nil
}
