package ordermeta

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Ashira-hub/online-ordering-system/internal/domain"
)

// RedisStore implements Store on redis, delegating expiry to redis TTL.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Put(ctx context.Context, order *domain.PendingOrder) error {
	data, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("marshal pending order: %w", err)
	}
	if err := s.client.Set(ctx, metaKey(order.OrderID), data, OrderMetaTTL).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, orderID string) (*domain.PendingOrder, error) {
	data, err := s.client.Get(ctx, metaKey(orderID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var order domain.PendingOrder
	if err := json.Unmarshal(data, &order); err != nil {
		return nil, fmt.Errorf("unmarshal pending order: %w", err)
	}
	return &order, nil
}

func (s *RedisStore) Delete(ctx context.Context, orderID string) error {
	if err := s.client.Del(ctx, metaKey(orderID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return nil
}

func metaKey(orderID string) string {
	return fmt.Sprintf("order_meta:%s", orderID)
}
