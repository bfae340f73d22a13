package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisDocuments stores each document as a string key prefix+name.
type RedisDocuments struct {
	client *redis.Client
	prefix string
}

// NewRedis connects to redis with short timeouts.
func NewRedis(addr, prefix string) *RedisDocuments {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  1 * time.Second,
		WriteTimeout: 1 * time.Second,
	})
	return NewRedisWithClient(client, prefix)
}

// NewRedisWithClient wraps an existing client.
func NewRedisWithClient(client *redis.Client, prefix string) *RedisDocuments {
	if prefix == "" {
		prefix = "scms:"
	}
	return &RedisDocuments{client: client, prefix: prefix}
}

func (r *RedisDocuments) key(name string) string { return r.prefix + name }

// Load decodes the key's value into v, or leaves v alone when the key is absent.
func (r *RedisDocuments) Load(ctx context.Context, name string, v any) error {
	data, err := r.client.Get(ctx, r.key(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("store: read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("store: decode %s: %w", name, err)
	}
	return nil
}

// Save overwrites the key with the encoded document. No expiry.
func (r *RedisDocuments) Save(ctx context.Context, name string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", name, err)
	}
	if err := r.client.Set(ctx, r.key(name), data, 0).Err(); err != nil {
		return fmt.Errorf("store: write %s: %w", name, err)
	}
	return nil
}

// Ping verifies redis connectivity.
func (r *RedisDocuments) Ping(ctx context.Context) error {
	if r == nil || r.client == nil {
		return errors.New("store: redis not configured")
	}
	return r.client.Ping(ctx).Err()
}

func (r *RedisDocuments) Close() error {
	return r.client.Close()
}
