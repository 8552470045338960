package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
)

const redisKeyPrefix = "rideshare:collection:"

// RedisStore keeps one string key per collection. SetMany is a MULTI/EXEC
// pipeline.
type RedisStore struct {
	client *redis.Client
	owned  bool
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, collection string) ([]byte, error) {
	blob, err := s.client.Get(ctx, redisKeyPrefix+collection).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", collection, err)
	}
	return blob, nil
}

func (s *RedisStore) Set(ctx context.Context, collection string, blob []byte) error {
	if err := s.client.Set(ctx, redisKeyPrefix+collection, blob, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", collection, err)
	}
	return nil
}

func (s *RedisStore) SetMany(ctx context.Context, blobs map[string][]byte) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for name, blob := range blobs {
			pipe.Set(ctx, redisKeyPrefix+name, blob, 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis multi set: %w", err)
	}
	return nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close(context.Context) error {
	if !s.owned {
		return nil
	}
	return s.client.Close()
}
