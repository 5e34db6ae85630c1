package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *RedisCache) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewRedisCache(client, "discovery:")
}

func TestRedisCache_SetAndGet(t *testing.T) {
	mr, c := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "tree", []byte("payload"), time.Minute))

	got, err := c.Get(ctx, "tree")
	require.NoError(t, err)
	assert.Equal(t, "payload", string(got))
	assert.True(t, mr.Exists("discovery:tree"))
}

func TestRedisCache_MissAndExpiry(t *testing.T) {
	mr, c := newTestRedis(t)
	ctx := context.Background()

	_, err := c.Get(ctx, "tree")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, c.Set(ctx, "tree", []byte("payload"), time.Second))
	mr.FastForward(2 * time.Second)

	_, err = c.Get(ctx, "tree")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCache_Delete(t *testing.T) {
	_, c := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "tree", []byte("payload"), time.Minute))
	require.NoError(t, c.Delete(ctx, "tree"))

	_, err := c.Get(ctx, "tree")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCache_ServerDown(t *testing.T) {
	mr, c := newTestRedis(t)
	mr.Close()

	_, err := c.Get(context.Background(), "tree")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}

func TestConnectRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := ConnectRedis(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	_ = client.Close()

	_, err = ConnectRedis(context.Background(), "not a url")
	assert.Error(t, err)
}
