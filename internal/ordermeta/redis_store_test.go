package ordermeta

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { client.Close() })

	return NewRedisStore(client), mr
}

func TestRedisStore_PutGet(t *testing.T) {
	sut, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, sut.Put(ctx, pendingOrder("ORDER-1")))

	// Written with the 30-minute TTL.
	assert.Equal(t, OrderMetaTTL, mr.TTL(metaKey("ORDER-1")))

	got, err := sut.Get(ctx, "ORDER-1")
	require.NoError(t, err)
	assert.Equal(t, "ORDER-1", got.OrderID)
	assert.Equal(t, "PHP", got.Currency)
	assert.Len(t, got.Items, 1)
}

func TestRedisStore_GetMissing(t *testing.T) {
	sut, _ := setupTestRedis(t)

	_, err := sut.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_GetCorruptPayload(t *testing.T) {
	sut, mr := setupTestRedis(t)

	mr.Set(metaKey("ORDER-1"), "not json")
	_, err := sut.Get(context.Background(), "ORDER-1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_ExpiryAfterTTL(t *testing.T) {
	sut, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, sut.Put(ctx, pendingOrder("ORDER-1")))

	mr.FastForward(OrderMetaTTL + time.Second)

	_, err := sut.Get(ctx, "ORDER-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_Delete(t *testing.T) {
	sut, mr := setupTestRedis(t)
	ctx := context.Background()

	order := pendingOrder("ORDER-1")
	data, _ := json.Marshal(order)
	mr.Set(metaKey("ORDER-1"), string(data))

	require.NoError(t, sut.Delete(ctx, "ORDER-1"))
	assert.False(t, mr.Exists(metaKey("ORDER-1")))
}
