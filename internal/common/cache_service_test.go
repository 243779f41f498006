package common

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedThing struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestCacheService_SetGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := NewCacheService(60, 120)

	require.NoError(t, c.Set(ctx, "k", cachedThing{Name: "home", Count: 2}, time.Minute))

	var got cachedThing
	found, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, cachedThing{Name: "home", Count: 2}, got)

	found, err = c.Get(ctx, "missing", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCacheService_DeletePrefix(t *testing.T) {
	ctx := context.Background()
	c := NewCacheService(60, 120)

	_ = c.Set(ctx, "COMPAT_1_10203", 1, time.Minute)
	_ = c.Set(ctx, "COMPAT_1_10204", 2, time.Minute)
	_ = c.Set(ctx, "COMPAT_2_10203", 3, time.Minute)

	require.NoError(t, c.DeletePrefix(ctx, "COMPAT_1_"))

	var v int
	found, _ := c.Get(ctx, "COMPAT_1_10203", &v)
	assert.False(t, found)
	found, _ = c.Get(ctx, "COMPAT_2_10203", &v)
	assert.True(t, found)
	assert.Equal(t, 3, v)
}

func TestGetOrLoad(t *testing.T) {
	ctx := context.Background()
	c := NewCacheService(60, 120)
	calls := 0
	loader := func(context.Context) (cachedThing, error) {
		calls++
		return cachedThing{Name: "loaded", Count: calls}, nil
	}

	first, hit, err := GetOrLoad(ctx, c, "thing", time.Minute, loader)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 1, first.Count)

	second, hit, err := GetOrLoad(ctx, c, "thing", time.Minute, loader)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestGetOrLoad_LoaderErrorNotCached(t *testing.T) {
	ctx := context.Background()
	c := NewCacheService(60, 120)
	boom := errors.New("boom")

	_, _, err := GetOrLoad(ctx, c, "thing", time.Minute, func(context.Context) (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)

	var v int
	found, _ := c.Get(ctx, "thing", &v)
	assert.False(t, found)
}
