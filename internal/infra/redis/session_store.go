package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"quiz-league-service/internal/app"
	"github.com/redis/go-redis/v9"
)

// SessionStore keeps attempt entries in Redis, leaning on Redis' own per-key
// TTL for expiry. Each entry is written once at start and read/deleted once at
// finish, so no read-modify-write is needed on a key.
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func (s *SessionStore) Set(ctx context.Context, key app.AttemptKey, budget int, ttl time.Duration) error {
	return s.client.Set(ctx, s.key(key), budget, ttl).Err()
}

func (s *SessionStore) Get(ctx context.Context, key app.AttemptKey) (int, bool, error) {
	val, err := s.client.Get(ctx, s.key(key)).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	budget, err := strconv.Atoi(val)
	if err != nil {
		return 0, false, fmt.Errorf("corrupt attempt entry %q: %w", val, err)
	}
	return budget, true, nil
}

func (s *SessionStore) Exists(ctx context.Context, key app.AttemptKey) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(key)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *SessionStore) Delete(ctx context.Context, key app.AttemptKey) error {
	return s.client.Del(ctx, s.key(key)).Err()
}

func (s *SessionStore) key(key app.AttemptKey) string {
	return "attempt:" + key.PlayerID + ":" + key.QuizID
}
