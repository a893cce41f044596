package redis_a_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redis_a "github.com/ammerola/stock-ledger/internal/adapters/redis_adapter"
	"github.com/ammerola/stock-ledger/test/helpers"
)

func newTestCache(t *testing.T) (*redis_a.Cache, *helpers.TestRedis) {
	t.Helper()
	tr := helpers.SetupTestRedis(t)
	return redis_a.NewCache(tr.Client, 5*time.Minute, helpers.TestLogger()), tr
}

func TestCache_SetAndGet(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestCache(t)

	type snapshot struct {
		ID    int64  `json:"id"`
		Stock int    `json:"stock"`
		Code  string `json:"code"`
	}

	require.NoError(t, cache.Set(ctx, "product:1", snapshot{ID: 1, Stock: 7, Code: "SKU-1"}))

	var got snapshot
	require.NoError(t, cache.Get(ctx, "product:1", &got))
	assert.Equal(t, snapshot{ID: 1, Stock: 7, Code: "SKU-1"}, got)
}

func TestCache_Get_Miss(t *testing.T) {
	cache, _ := newTestCache(t)

	var s string
	err := cache.Get(context.Background(), "absent", &s)
	assert.ErrorIs(t, err, redis_a.ErrCacheMiss)
}

func TestCache_SetWithTTL(t *testing.T) {
	ctx := context.Background()
	cache, tr := newTestCache(t)

	require.NoError(t, cache.SetWithTTL(ctx, "short", "v", time.Second))
	assert.True(t, tr.Server.Exists("short"))

	tr.Server.FastForward(2 * time.Second)
	assert.False(t, tr.Server.Exists("short"))
}

func TestCache_DeletePattern(t *testing.T) {
	ctx := context.Background()
	cache, tr := newTestCache(t)

	for _, k := range []string{"product:1", "product:2", "stats:today"} {
		require.NoError(t, cache.Set(ctx, k, 1))
	}

	require.NoError(t, cache.DeletePattern(ctx, "product:*"))

	assert.False(t, tr.Server.Exists("product:1"))
	assert.False(t, tr.Server.Exists("product:2"))
	assert.True(t, tr.Server.Exists("stats:today"))
}

func TestCache_GetOrSet(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestCache(t)
	calls := 0
	fetch := func() (interface{}, error) {
		calls++
		return map[string]int{"stock": 3}, nil
	}

	for i := 0; i < 3; i++ {
		var got map[string]int
		require.NoError(t, cache.GetOrSet(ctx, "k", &got, fetch, time.Minute))
		assert.Equal(t, 3, got["stock"])
	}
	assert.Equal(t, 1, calls)
}

func TestCache_GetOrSet_FetchError(t *testing.T) {
	cache, tr := newTestCache(t)
	boom := errors.New("db down")

	var got map[string]int
	err := cache.GetOrSet(context.Background(), "k", &got, func() (interface{}, error) {
		return nil, boom
	}, time.Minute)

	assert.ErrorIs(t, err, boom)
	assert.False(t, tr.Server.Exists("k"))
}

func TestCache_SetNX(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestCache(t)

	ok, err := cache.SetNX(ctx, "lock:job-1", "worker-a", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = cache.SetNX(ctx, "lock:job-1", "worker-b", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_BuildKey(t *testing.T) {
	tests := []struct {
		name   string
		prefix redis_a.CacheKeyPrefix
		parts  []string
		want   string
	}{
		{name: "prefix_only", prefix: redis_a.PrefixSupplier, want: "supplier"},
		{name: "one_part", prefix: redis_a.PrefixProduct, parts: []string{"42"}, want: "product:42"},
		{name: "many_parts", prefix: redis_a.PrefixLock, parts: []string{"import", "job-1"}, want: "lock:import:job-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, redis_a.BuildKey(tt.prefix, tt.parts...))
		})
	}
}
