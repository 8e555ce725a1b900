package storage

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	redisclient "github.com/clinova/shift-scheduler/internal/infrastructure/clients/redis"
	apperrors "github.com/clinova/shift-scheduler/pkg/errors"
)

// redisKeyPrefix namespaces collection blobs within a shared Redis instance
const redisKeyPrefix = "collections:"

// RedisStore keeps each collection as one JSON blob under collections:<name>
type RedisStore struct {
	client *redisclient.Client
}

// NewRedisStore creates a Redis-backed collection store
func NewRedisStore(client *redisclient.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Read returns the collection's raw JSON, or nil when the key does not exist
func (s *RedisStore) Read(ctx context.Context, collection string) ([]byte, error) {
	data, err := s.client.Client().Get(ctx, redisKeyPrefix+collection).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to read collection %q from redis", collection), err)
	}
	return data, nil
}

// Write replaces the collection blob. Collections live indefinitely, so no TTL.
func (s *RedisStore) Write(ctx context.Context, collection string, data []byte) error {
	if err := s.client.Client().Set(ctx, redisKeyPrefix+collection, data, 0).Err(); err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to write collection %q to redis", collection), err)
	}
	return nil
}
