package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisSlotStore keeps slots in Redis, refreshing the TTL on every save
type RedisSlotStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSlotStore wraps an existing client. A zero ttl keeps slots forever.
func NewRedisSlotStore(client *redis.Client, ttl time.Duration) *RedisSlotStore {
	return &RedisSlotStore{client: client, ttl: ttl}
}

// NewRedisClient creates a client for addr
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
}

func (r *RedisSlotStore) Load(ctx context.Context, sessionID, slot string) ([]byte, error) {
	v, err := r.client.Get(ctx, slotKey(sessionID, slot)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", slot, err)
	}
	return v, nil
}

func (r *RedisSlotStore) Save(ctx context.Context, sessionID, slot string, value []byte) error {
	if err := r.client.Set(ctx, slotKey(sessionID, slot), value, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", slot, err)
	}
	return nil
}

func (r *RedisSlotStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisSlotStore) Close() error {
	return r.client.Close()
}
