package auth

import (
	"context"
	"sync"
	"time"

	"campusnotes/internal/cache"
)

const revokedKeyPrefix = "revoked:token:"

// RevocationList records exact token strings invalidated before their natural
// expiry. It is consulted on every bearer-token request.
type RevocationList interface {
	// Add marks the token revoked. Idempotent.
	Add(ctx context.Context, token string) error
	// Contains reports whether the token has been revoked.
	Contains(ctx context.Context, token string) (bool, error)
}

// MemoryRevocationList is the process-local default. Entries are never pruned
// and do not survive a restart: a restart un-revokes logged-out tokens for
// whatever remains of their lifetime. Both are accepted trade-offs for a
// single-instance deployment with a bounded token TTL.
type MemoryRevocationList struct {
	mu     sync.RWMutex
	tokens map[string]struct{}
}

// NewMemoryRevocationList creates an empty in-memory list.
func NewMemoryRevocationList() *MemoryRevocationList {
	return &MemoryRevocationList{tokens: make(map[string]struct{})}
}

func (l *MemoryRevocationList) Add(_ context.Context, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tokens[token] = struct{}{}
	return nil
}

func (l *MemoryRevocationList) Contains(_ context.Context, token string) (bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.tokens[token]
	return ok, nil
}

// RedisRevocationList keeps revocations in redis so they survive restarts and
// can be shared between instances. Entries expire with the token lifetime, so
// the set stays bounded.
type RedisRevocationList struct {
	cache *cache.Client
	ttl   time.Duration
}

// NewRedisRevocationList creates a redis-backed list whose entries live for ttl.
func NewRedisRevocationList(c *cache.Client, ttl time.Duration) *RedisRevocationList {
	return &RedisRevocationList{cache: c, ttl: ttl}
}

func (l *RedisRevocationList) Add(ctx context.Context, token string) error {
	return l.cache.Set(ctx, revokedKeyPrefix+token, []byte("1"), l.ttl)
}

func (l *RedisRevocationList) Contains(ctx context.Context, token string) (bool, error) {
	return l.cache.Exists(ctx, revokedKeyPrefix+token)
}
