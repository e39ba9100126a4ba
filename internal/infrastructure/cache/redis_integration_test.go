//go:build integration

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func TestIdempotencyStore_Redis(t *testing.T) {
	ctx := context.Background()

	rdC, err := tcRedis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	url, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	rdb, err := NewRedis(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	store := NewIdempotencyStore(rdb, time.Hour)

	_, claimed, err := store.Claim(ctx, "k1", "t1")
	require.NoError(t, err)
	assert.True(t, claimed)

	id, claimed, err := store.Claim(ctx, "k1", "t2")
	require.NoError(t, err)
	assert.False(t, claimed)
	assert.Empty(t, id)

	pending, err := rdb.TTL(ctx, keyPrefix+"k1").Result()
	require.NoError(t, err)
	assert.LessOrEqual(t, pending, maxPendingTTL)

	assert.Error(t, store.Complete(ctx, "k1", "t2", "op-2"))
	require.NoError(t, store.Complete(ctx, "k1", "t1", "op-1"))
	require.NoError(t, store.Release(ctx, "k1", "t1"))

	id, claimed, err = store.Claim(ctx, "k1", "t3")
	require.NoError(t, err)
	assert.False(t, claimed)
	assert.Equal(t, "op-1", id)

	ttl, err := rdb.TTL(ctx, keyPrefix+"k1").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, maxPendingTTL)

	_, claimed, err = store.Claim(ctx, "k2", "t1")
	require.NoError(t, err)
	require.True(t, claimed)
	require.NoError(t, store.Release(ctx, "k2", "t1"))
	_, claimed, err = store.Claim(ctx, "k2", "t4")
	require.NoError(t, err)
	assert.True(t, claimed)

	assert.NoError(t, store.Ping(ctx))
}
