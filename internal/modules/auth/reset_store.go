package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const resetKeyPrefix = "freelahub:password-reset:"

// ErrResetTokenNotFound is returned by Consume for unknown or expired tokens.
var ErrResetTokenNotFound = errors.New("reset token not found")

// RedisResetStore stores reset tokens as expiring keys.
type RedisResetStore struct {
	client *redis.Client
}

func NewRedisResetStore(client *redis.Client) *RedisResetStore {
	return &RedisResetStore{client: client}
}

func (s *RedisResetStore) Save(ctx context.Context, tokenHash string, userID int64, ttl time.Duration) error {
	if err := s.client.Set(ctx, resetKeyPrefix+tokenHash, userID, ttl).Err(); err != nil {
		return fmt.Errorf("save reset token: %w", err)
	}
	return nil
}

// Consume uses GETDEL so a token can be redeemed at most once even under
// concurrent requests.
func (s *RedisResetStore) Consume(ctx context.Context, tokenHash string) (int64, error) {
	raw, err := s.client.GetDel(ctx, resetKeyPrefix+tokenHash).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrResetTokenNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("consume reset token: %w", err)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt reset token value %q: %w", raw, err)
	}
	return id, nil
}
