package stock

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey is the set holding unavailable SKUs
const DefaultRedisKey = "drive:oos"

// RedisStore shares the set between server instances through a Redis set
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore connects to Redis and verifies the connection
func NewRedisStore(ctx context.Context, addr, password string, db int, key string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return NewRedisStoreWithClient(client, key), nil
}

// NewRedisStoreWithClient wraps an existing client
func NewRedisStoreWithClient(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{
		client: client,
		key:    key,
	}
}

// MarkUnavailable adds sku to the shared set
func (r *RedisStore) MarkUnavailable(ctx context.Context, sku string) ([]string, error) {
	sku = Normalize(sku)
	if sku == "" {
		return nil, ErrEmptySKU
	}
	if err := r.client.SAdd(ctx, r.key, sku).Err(); err != nil {
		return nil, fmt.Errorf("failed to mark %s unavailable: %w", sku, err)
	}
	return r.sorted(ctx)
}

// MarkAvailable removes sku from the shared set
func (r *RedisStore) MarkAvailable(ctx context.Context, sku string) ([]string, error) {
	sku = Normalize(sku)
	if sku == "" {
		return nil, ErrEmptySKU
	}
	if err := r.client.SRem(ctx, r.key, sku).Err(); err != nil {
		return nil, fmt.Errorf("failed to mark %s available: %w", sku, err)
	}
	return r.sorted(ctx)
}

// Snapshot reads the whole set
func (r *RedisStore) Snapshot(ctx context.Context) (Set, error) {
	members, err := r.client.SMembers(ctx, r.key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read out-of-stock set: %w", err)
	}
	return NewSet(members...), nil
}

// Close releases the underlying connection pool
func (r *RedisStore) Close() error {
	return r.client.Close()
}

func (r *RedisStore) sorted(ctx context.Context) ([]string, error) {
	snap, err := r.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Sorted(), nil
}
