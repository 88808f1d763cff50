// Copyright (c) 2026 marsAI. All rights reserved.

package gallery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/marsai/festival/internal/platform/constants"
)

// RedisCache implements [Cache] with one JSON array per festival.
type RedisCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisCache creates a catalogue cache whose entries expire after ttl.
func NewRedisCache(client redis.UniversalClient, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func catalogueKey(festivalID string) string {
	return constants.RedisPrefixGalleryFilms + festivalID
}

func (cache *RedisCache) Get(context context.Context, festivalID string) ([]Film, bool, error) {
	payload, err := cache.client.Get(context, catalogueKey(festivalID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis_gallery_get_failed: %w", err)
	}

	var films []Film
	if err := json.Unmarshal(payload, &films); err != nil {
		return nil, false, fmt.Errorf("redis_gallery_unmarshal_failed: %w", err)
	}
	return films, true, nil
}

func (cache *RedisCache) Set(context context.Context, festivalID string, films []Film) error {
	payload, err := json.Marshal(films)
	if err != nil {
		return fmt.Errorf("redis_gallery_marshal_failed: %w", err)
	}
	if err := cache.client.Set(context, catalogueKey(festivalID), payload, cache.ttl).Err(); err != nil {
		return fmt.Errorf("redis_gallery_set_failed: %w", err)
	}
	return nil
}

func (cache *RedisCache) Invalidate(context context.Context, festivalID string) error {
	if err := cache.client.Del(context, catalogueKey(festivalID)).Err(); err != nil {
		return fmt.Errorf("redis_gallery_delete_failed: %w", err)
	}
	return nil
}
