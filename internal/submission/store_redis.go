// Copyright (c) 2026 marsAI. All rights reserved.

package submission

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/marsai/festival/internal/platform/apperr"
	"github.com/marsai/festival/internal/platform/constants"
)

// RedisDraftStore implements [DraftStore] with one JSON value per draft and
// a sliding expiry.
type RedisDraftStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisDraftStore creates a draft store whose keys expire after ttl of inactivity.
func NewRedisDraftStore(client redis.UniversalClient, ttl time.Duration) *RedisDraftStore {
	return &RedisDraftStore{client: client, ttl: ttl}
}

func draftKey(id string) string {
	return constants.RedisPrefixDraft + id
}

/*
Save stores the draft and resets its TTL.

Parameters:
  - context: context.Context
  - draft: *Draft

Returns:
  - error: Serialization or connectivity errors
*/
func (store *RedisDraftStore) Save(context context.Context, draft *Draft) error {
	payload, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("redis_draft_marshal_failed: %w", err)
	}

	if err := store.client.Set(context, draftKey(draft.ID), payload, store.ttl).Err(); err != nil {
		return fmt.Errorf("redis_draft_set_failed: %w", err)
	}
	return nil
}

/*
Load retrieves a draft and extends its TTL in the same round trip (GETEX).

Returns:
  - *Draft: The stored draft
  - error: apperr.NotFound if the draft expired or never existed
*/
func (store *RedisDraftStore) Load(context context.Context, id string) (*Draft, error) {
	payload, err := store.client.GetEx(context, draftKey(id), store.ttl).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Draft")
		}
		return nil, fmt.Errorf("redis_draft_get_failed: %w", err)
	}

	draft := &Draft{}
	if err := json.Unmarshal(payload, draft); err != nil {
		return nil, fmt.Errorf("redis_draft_unmarshal_failed: %w", err)
	}
	return draft, nil
}

// Delete removes a draft. Deleting a missing draft is not an error.
func (store *RedisDraftStore) Delete(context context.Context, id string) error {
	if err := store.client.Del(context, draftKey(id)).Err(); err != nil {
		return fmt.Errorf("redis_draft_delete_failed: %w", err)
	}
	return nil
}
