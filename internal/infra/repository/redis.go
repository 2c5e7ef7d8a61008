package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"chat-connector/internal/domain/entities"
	"chat-connector/internal/infra/logger"

	goredis "github.com/redis/go-redis/v9"
)

// RedisContextStore keeps contexts as JSON values with the context TTL
// applied natively, so expiry needs no sweeper.
type RedisContextStore struct {
	rdb *goredis.Client
	ttl time.Duration
	log *logger.Logger
}

func NewRedisContextStore(rdb *goredis.Client, ttl time.Duration, log *logger.Logger) *RedisContextStore {
	return &RedisContextStore{rdb: rdb, ttl: ttl, log: log}
}

func contextKey(userID string) string {
	return "chat:context:" + userID
}

func (s *RedisContextStore) Get(ctx context.Context, userID string) (entities.Context, bool, error) {
	raw, err := s.rdb.Get(ctx, contextKey(userID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return entities.Context{}, false, nil
	}
	if err != nil {
		return entities.Context{}, false, err
	}

	var entity entities.Context
	if err := json.Unmarshal(raw, &entity); err != nil {
		// a record we cannot read is the same as no record
		s.log.Warn("Discarding malformed context record for " + userID)
		return entities.Context{}, false, nil
	}
	return entity, true, nil
}

func (s *RedisContextStore) Put(ctx context.Context, userID string, entity entities.Context) error {
	raw, err := json.Marshal(entity)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, contextKey(userID), raw, s.ttl).Err()
}

func (s *RedisContextStore) Delete(ctx context.Context, userID string) error {
	return s.rdb.Del(ctx, contextKey(userID)).Err()
}
