package utils

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestCacheRoundTrip(t *testing.T) {
	mr, rdb := newRedis(t)
	ctx := context.Background()

	type item struct {
		Name string `json:"name"`
	}

	var got item
	found, err := GetCache(ctx, rdb, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetCache(ctx, rdb, "k", item{Name: "x"}, time.Minute))
	found, err = GetCache(ctx, rdb, "k", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "x", got.Name)

	mr.FastForward(2 * time.Minute)
	found, err = GetCache(ctx, rdb, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDeleteCache(t *testing.T) {
	mr, rdb := newRedis(t)
	ctx := context.Background()

	require.NoError(t, SetCache(ctx, rdb, "a", 1, time.Minute))
	require.NoError(t, SetCache(ctx, rdb, "b", 2, time.Minute))
	require.NoError(t, DeleteCache(ctx, rdb, "a", "b", "missing"))
	assert.False(t, mr.Exists("a"))
	assert.False(t, mr.Exists("b"))
}

func TestGeneration(t *testing.T) {
	_, rdb := newRedis(t)
	ctx := context.Background()

	gen, err := GetGeneration(ctx, rdb, "gen")
	require.NoError(t, err)
	assert.Equal(t, int64(0), gen)

	next, err := BumpGeneration(ctx, rdb, "gen")
	require.NoError(t, err)
	assert.Equal(t, int64(1), next)

	gen, err = GetGeneration(ctx, rdb, "gen")
	require.NoError(t, err)
	assert.Equal(t, int64(1), gen)

	require.NoError(t, rdb.Set(ctx, "gen", "garbage", 0).Err())
	_, err = GetGeneration(ctx, rdb, "gen")
	assert.Error(t, err)
}
