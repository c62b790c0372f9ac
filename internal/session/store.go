package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// RedisStore keeps sessions in Redis with a sliding TTL.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Data, error) {
	raw, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session load failed: %w", err)
	}
	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		// A corrupt session is treated as absent rather than fatal.
		return nil, nil
	}
	return &data, nil
}

func (s *RedisStore) Set(ctx context.Context, id string, data *Data, ttl time.Duration) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("session encode failed: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+id, raw, ttl).Err(); err != nil {
		return fmt.Errorf("session save failed: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, keyPrefix+id).Err()
}

// MemoryStore is an in-process Store used by tests and redis-less
// development runs.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]entry
}

type entry struct {
	data      Data
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]entry)}
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Data, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[id]
	if !ok || time.Now().After(e.expiresAt) {
		delete(s.sessions, id)
		return nil, nil
	}
	data := e.data
	return &data, nil
}

func (s *MemoryStore) Set(ctx context.Context, id string, data *Data, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = entry{data: *data, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}
