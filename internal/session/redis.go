package session

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "session:"

type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Save(ctx context.Context, sid string, accountID uint, ttl time.Duration) error {
	return s.rdb.Set(ctx, keyPrefix+sid, accountID, ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, sid string) (uint, error) {
	val, err := s.rdb.Get(ctx, keyPrefix+sid).Result()
	if err == redis.Nil {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("session get: %w", err)
	}

	id, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, ErrNotFound
	}
	return uint(id), nil
}

func (s *RedisStore) Delete(ctx context.Context, sid string) error {
	return s.rdb.Del(ctx, keyPrefix+sid).Err()
}

var _ Store = (*RedisStore)(nil)
var _ Store = (*MemoryStore)(nil)
