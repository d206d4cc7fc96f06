package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dentassist/backend/internal/models"
)

const redisKeyPrefix = "dentassist:session:"

// RedisStore persists sessions in Redis with a TTL, so abandoned
// conversations expire on their own.
type RedisStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisStore{Client: client, TTL: ttl}
}

func (s *RedisStore) Load(ctx context.Context, id string) (*models.ConversationContext, error) {
	payload, err := s.Client.Get(ctx, redisKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var cctx models.ConversationContext
	if err := json.Unmarshal(payload, &cctx); err != nil {
		return nil, err
	}
	return &cctx, nil
}

func (s *RedisStore) Save(ctx context.Context, cctx *models.ConversationContext) error {
	payload, err := json.Marshal(cctx)
	if err != nil {
		return err
	}
	return s.Client.Set(ctx, redisKeyPrefix+cctx.SessionID, payload, s.TTL).Err()
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.Client.Del(ctx, redisKeyPrefix+id).Err()
}
