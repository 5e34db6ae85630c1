package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/discovery-service/internal/pkg/clock"
)

func newTestCache() (*MemoryCache, *clock.MockClock) {
	clk := clock.NewMockClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	return NewMemoryCache(clk), clk
}

func TestMemoryCache_SetAndGet(t *testing.T) {
	c, _ := newTestCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "tree", []byte(`[{"uid":"1"}]`), time.Minute))

	got, err := c.Get(ctx, "tree")
	require.NoError(t, err)
	assert.Equal(t, `[{"uid":"1"}]`, string(got))
}

func TestMemoryCache_Miss(t *testing.T) {
	c, _ := newTestCache()

	_, err := c.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCache_Expiry(t *testing.T) {
	c, clk := newTestCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "tree", []byte("v"), time.Minute))

	clk.Advance(59 * time.Second)
	_, err := c.Get(ctx, "tree")
	require.NoError(t, err)

	clk.Advance(time.Second)
	_, err = c.Get(ctx, "tree")
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Equal(t, 0, c.Len())
}

func TestMemoryCache_NonPositiveTTLRemoves(t *testing.T) {
	c, _ := newTestCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	require.NoError(t, c.Set(ctx, "k", []byte("v2"), 0))

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCache_ValuesAreCopied(t *testing.T) {
	c, _ := newTestCache()
	ctx := context.Background()

	value := []byte("abc")
	require.NoError(t, c.Set(ctx, "k", value, time.Minute))
	value[0] = 'x'

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))

	got[1] = 'y'
	again, _ := c.Get(ctx, "k")
	assert.Equal(t, "abc", string(again))
}

func TestMemoryCache_DeleteAndPurge(t *testing.T) {
	c, clk := newTestCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "short", []byte("1"), time.Second))
	require.NoError(t, c.Set(ctx, "long", []byte("2"), time.Hour))
	require.NoError(t, c.Set(ctx, "gone", []byte("3"), time.Hour))

	require.NoError(t, c.Delete(ctx, "gone"))
	require.NoError(t, c.Delete(ctx, "never-set"))

	clk.Advance(time.Minute)
	assert.Equal(t, 1, c.Purge())
	assert.Equal(t, 1, c.Len())

	_, err := c.Get(ctx, "long")
	assert.NoError(t, err)
}

func TestMemoryCache_ConcurrentAccess(t *testing.T) {
	c, clk := newTestCache()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = c.Set(ctx, "k", []byte("v"), time.Second)
				_, _ = c.Get(ctx, "k")
				clk.Advance(time.Millisecond)
			}
		}()
	}
	wg.Wait()
}
