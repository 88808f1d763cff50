// Copyright (c) 2026 marsAI. All rights reserved.

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/marsai/festival/internal/platform/apperr"
	"github.com/marsai/festival/internal/platform/constants"
	"github.com/marsai/festival/internal/platform/sec"
)

// RedisResetTokenRepository implements [ResetTokenRepository] using Redis.
// Keys hold the token hash, never the token itself.
type RedisResetTokenRepository struct {
	client redis.UniversalClient
}

// NewResetTokenRepository creates a new Redis-backed [ResetTokenRepository].
func NewResetTokenRepository(client redis.UniversalClient) *RedisResetTokenRepository {
	return &RedisResetTokenRepository{client: client}
}

func resetKey(token string) string {
	return constants.RedisPrefixResetToken + sec.HashToken(token)
}

func (repository *RedisResetTokenRepository) Set(context context.Context, token string, userID string, ttl time.Duration) error {
	if err := repository.client.Set(context, resetKey(token), userID, ttl).Err(); err != nil {
		return fmt.Errorf("redis_reset_token_set_failed: %w", err)
	}
	return nil
}

func (repository *RedisResetTokenRepository) Get(context context.Context, token string) (string, error) {
	userID, err := repository.client.Get(context, resetKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound("Reset token")
		}
		return "", fmt.Errorf("redis_reset_token_get_failed: %w", err)
	}
	return userID, nil
}

func (repository *RedisResetTokenRepository) Delete(context context.Context, token string) error {
	if err := repository.client.Del(context, resetKey(token)).Err(); err != nil {
		return fmt.Errorf("redis_reset_token_delete_failed: %w", err)
	}
	return nil
}
