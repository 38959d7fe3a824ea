package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/well2nest/hospital-system/internal/core/domain"
)

const sessionTTL = 24 * time.Hour

// TokenStore is the shared session registry backed by Redis.
// Key format: session:<token>, value: the JSON session record.
type TokenStore struct {
	client *redis.Client
}

// NewTokenStore creates a TokenStore wrapping the given Redis client.
func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{client: client}
}

// Put publishes a session record under its token. Entries expire after
// sessionTTL; a login refreshes its own entry.
func (s *TokenStore) Put(ctx context.Context, rec domain.SessionRecord) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode session record: %w", err)
	}
	if err := s.client.Set(ctx, s.key(rec.Token), raw, sessionTTL).Err(); err != nil {
		return fmt.Errorf("store session record: %w", err)
	}
	return nil
}

// Get resolves a token to its session record, or (nil, nil) for a token
// that is unknown or expired.
func (s *TokenStore) Get(ctx context.Context, token string) (*domain.SessionRecord, error) {
	raw, err := s.client.Get(ctx, s.key(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session record: %w", err)
	}
	var rec domain.SessionRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode session record: %w", err)
	}
	return &rec, nil
}

// Delete revokes a token. Unknown tokens are not an error.
func (s *TokenStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, s.key(token)).Err()
}

func (s *TokenStore) key(token string) string {
	return fmt.Sprintf("session:%s", token)
}
