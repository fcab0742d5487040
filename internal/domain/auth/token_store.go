package auth

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const refreshKeyPrefix = "refresh:"

// TokenStore keeps hashed refresh tokens until they are rotated or expire.
type TokenStore interface {
	Save(ctx context.Context, tokenHash string, userID uuid.UUID, ttl time.Duration) error
	Lookup(ctx context.Context, tokenHash string) (uuid.UUID, error)
	Delete(ctx context.Context, tokenHash string) error
}

// NewTokenStore returns a Redis-backed store, or an in-memory one when Redis
// is not configured. The in-memory store is per-instance; deployments with
// more than one API instance need Redis for refresh to work across them.
func NewTokenStore(redisClient *redis.Client) TokenStore {
	if redisClient == nil {
		return newMemoryTokenStore()
	}
	return &redisTokenStore{redis: redisClient}
}

type redisTokenStore struct {
	redis *redis.Client
}

func (s *redisTokenStore) Save(ctx context.Context, tokenHash string, userID uuid.UUID, ttl time.Duration) error {
	return s.redis.Set(ctx, refreshKeyPrefix+tokenHash, userID.String(), ttl).Err()
}

func (s *redisTokenStore) Lookup(ctx context.Context, tokenHash string) (uuid.UUID, error) {
	val, err := s.redis.Get(ctx, refreshKeyPrefix+tokenHash).Result()
	if err != nil {
		return uuid.Nil, ErrInvalidRefreshToken
	}
	return uuid.Parse(val)
}

func (s *redisTokenStore) Delete(ctx context.Context, tokenHash string) error {
	return s.redis.Del(ctx, refreshKeyPrefix+tokenHash).Err()
}

type memoryEntry struct {
	userID    uuid.UUID
	expiresAt time.Time
}

type memoryTokenStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

func newMemoryTokenStore() *memoryTokenStore {
	return &memoryTokenStore{entries: make(map[string]memoryEntry)}
}

func (s *memoryTokenStore) Save(_ context.Context, tokenHash string, userID uuid.UUID, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[tokenHash] = memoryEntry{userID: userID, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *memoryTokenStore) Lookup(_ context.Context, tokenHash string) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[tokenHash]
	if !ok {
		return uuid.Nil, ErrInvalidRefreshToken
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.entries, tokenHash)
		return uuid.Nil, ErrInvalidRefreshToken
	}
	return entry.userID, nil
}

func (s *memoryTokenStore) Delete(_ context.Context, tokenHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, tokenHash)
	return nil
}
