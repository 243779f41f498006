package common

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

// CacheService is the in-memory cache, used when Redis is not configured.
type CacheService struct {
	cache *cache.Cache
}

var _ CacheInterface = (*CacheService)(nil)

func NewCacheService(defaultExpirationSeconds, cleanUpIntervalSeconds int) *CacheService {
	defaultExpiration := time.Duration(defaultExpirationSeconds) * time.Second
	cleanUpInterval := time.Duration(cleanUpIntervalSeconds) * time.Second
	return &CacheService{cache: cache.New(defaultExpiration, cleanUpInterval)}
}

func (cs *CacheService) Get(_ context.Context, key string, dest any) (bool, error) {
	val, found := cs.cache.Get(key)
	if !found {
		return false, nil
	}
	data, ok := val.([]byte)
	if !ok {
		return false, fmt.Errorf("cache entry %s has unexpected type %T", key, val)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("decode cache entry %s: %w", key, err)
	}
	return true, nil
}

func (cs *CacheService) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cache entry %s: %w", key, err)
	}
	cs.cache.Set(key, data, ttl)
	return nil
}

func (cs *CacheService) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		cs.cache.Delete(key)
	}
	return nil
}

func (cs *CacheService) DeletePrefix(_ context.Context, prefix string) error {
	for key := range cs.cache.Items() {
		if strings.HasPrefix(key, prefix) {
			cs.cache.Delete(key)
		}
	}
	return nil
}

func (cs *CacheService) Ping(context.Context) error { return nil }

func (cs *CacheService) Name() string { return "memory" }

// Close is a no-op for the in-memory cache
func (cs *CacheService) Close() error {
	return nil
}
