package idempotency

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store remembers request keys in redis so a retried checkout cannot place
// the same order twice.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

// Key namespaces a client-supplied Idempotency-Key per operation and user.
func (s *Store) Key(operation string, userID int, clientKey string) string {
	return fmt.Sprintf("idem:%s:%d:%s", operation, userID, clientKey)
}

// Seen marks the key and reports whether it had been marked before. The
// first caller wins; everyone else sees true.
func (s *Store) Seen(ctx context.Context, key string) (bool, error) {
	ok, err := s.rdb.SetNX(ctx, key, "1", s.ttl).Result()
	if err != nil {
		return false, err
	}

	return !ok, nil
}

// Release forgets a key. Callers use it when the guarded operation fails,
// so the client can retry with the same key.
func (s *Store) Release(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}
