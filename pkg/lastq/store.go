// Package lastq remembers the most recent successfully answered question per user.
package lastq

import (
	"context"
	"errors"
	"sync"
	"time"

	"pocketbot/pkg/cache"
)

type Store interface {
	// Get reports the user's last question and whether one was recorded.
	Get(userID string) (string, bool, error)
	Set(userID, question string) error
}

// MemoryStore lives as long as the process; nothing survives a restart.
type MemoryStore struct {
	mu        sync.RWMutex
	questions map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{questions: make(map[string]string)}
}

func (m *MemoryStore) Get(userID string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	q, ok := m.questions[userID]
	return q, ok, nil
}

func (m *MemoryStore) Set(userID, question string) error {
	m.mu.Lock()
	m.questions[userID] = question
	m.mu.Unlock()
	return nil
}

// kv is the subset of cache.Cache used by RedisStore.
type kv interface {
	Key(parts ...string) string
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

// RedisStore keeps last questions in Redis so they outlive the process.
type RedisStore struct {
	cache kv
}

func NewRedisStore(c kv) *RedisStore {
	return &RedisStore{cache: c}
}

func (r *RedisStore) Get(userID string) (string, bool, error) {
	q, err := r.cache.Get(context.Background(), r.cache.Key("last_question", userID))
	if errors.Is(err, cache.ErrMiss) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return q, true, nil
}

func (r *RedisStore) Set(userID, question string) error {
	return r.cache.Set(context.Background(), r.cache.Key("last_question", userID), question, 0)
}
