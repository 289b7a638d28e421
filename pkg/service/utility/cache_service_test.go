package utility

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiniRedisClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestCacheServices(t *testing.T) {
	_, client := newMiniRedisClient(t)

	services := []struct {
		name string
		svc  CacheService
	}{
		{"Redis缓存", NewCacheService(client)},
		{"内存缓存", NewMemoryCacheService()},
	}

	for _, tt := range services {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()

			got, err := tt.svc.Get(ctx, "missing")
			require.NoError(t, err)
			assert.Equal(t, "", got, "不存在的键返回空字符串")

			require.NoError(t, tt.svc.Set(ctx, "essay:1", `{"id":1}`, time.Minute))
			got, err = tt.svc.Get(ctx, "essay:1")
			require.NoError(t, err)
			assert.Equal(t, `{"id":1}`, got)

			require.NoError(t, tt.svc.Delete(ctx, "essay:1"))
			got, err = tt.svc.Get(ctx, "essay:1")
			require.NoError(t, err)
			assert.Equal(t, "", got)
		})
	}
}

func TestRedisCacheExpiry(t *testing.T) {
	mr, client := newMiniRedisClient(t)
	svc := NewCacheService(client)
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, "blog:7", "payload", 10*time.Second))
	mr.FastForward(11 * time.Second)

	got, err := svc.Get(ctx, "blog:7")
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestMemoryCacheExpiry(t *testing.T) {
	now := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	svc := newMemoryCache(clock, time.Hour)
	defer svc.Stop()
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, "k", "v", time.Minute))
	require.NoError(t, svc.Set(ctx, "forever", 42, 0))

	got, err := svc.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	now = now.Add(2 * time.Minute)
	got, err = svc.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "", got, "过期后读取视为未命中")

	got, _ = svc.Get(ctx, "forever")
	assert.Equal(t, "42", got)
	assert.Equal(t, 1, svc.Len(), "过期键在读取时被淘汰")
}

func TestMemoryCacheSweep(t *testing.T) {
	now := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	svc := newMemoryCache(func() time.Time { return now }, time.Hour)
	defer svc.Stop()
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, "a", "1", time.Second))
	require.NoError(t, svc.Set(ctx, "b", "2", time.Hour))
	now = now.Add(time.Minute)
	svc.sweep()

	assert.Equal(t, 1, svc.Len())
}

func TestCacheFactoryFallback(t *testing.T) {
	_, client := newMiniRedisClient(t)

	assert.Equal(t, CacheTypeRedis, GetCacheServiceType(NewCacheServiceWithFallback(client)))
	assert.Equal(t, CacheTypeMemory, GetCacheServiceType(NewCacheServiceWithFallback(nil)))

	assert.Nil(t, NewRedisClient(context.Background(), RedisOptions{}), "未配置地址时返回 nil")
}

func TestJSONHelpers(t *testing.T) {
	_, client := newMiniRedisClient(t)
	svc := NewCacheService(client)
	ctx := context.Background()

	type payload struct {
		ID    uint   `json:"id"`
		Title string `json:"title"`
	}

	var out payload
	hit, err := GetJSON(ctx, svc, "missing", &out)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, SetJSON(ctx, svc, "blog:1", payload{ID: 1, Title: "开始之前"}, time.Minute))
	hit, err = GetJSON(ctx, svc, "blog:1", &out)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, payload{ID: 1, Title: "开始之前"}, out)

	require.NoError(t, svc.Set(ctx, "blog:2", "{broken", time.Minute))
	hit, err = GetJSON(ctx, svc, "blog:2", &out)
	assert.Error(t, err)
	assert.False(t, hit)
}
