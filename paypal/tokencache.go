package paypal

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

type TokenCache interface {
	// Get returns false when there is no usable token stored under key.
	Get(ctx context.Context, key string) (AccessToken, bool, error)
	Set(ctx context.Context, key string, token AccessToken) error
	// Delete drops a token PayPal stopped accepting. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

var _ TokenCache = &MemoryTokenCache{}

// MemoryTokenCache keeps tokens for the lifetime of the process.
type MemoryTokenCache struct {
	mu     sync.Mutex
	tokens map[string]AccessToken
	now    func() time.Time
}

func NewMemoryTokenCache() *MemoryTokenCache {
	return &MemoryTokenCache{
		tokens: map[string]AccessToken{},
		now:    time.Now,
	}
}

func (m *MemoryTokenCache) Get(ctx context.Context, key string) (AccessToken, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	token, ok := m.tokens[key]
	if !ok {
		return AccessToken{}, false, nil
	}

	if !token.validAt(m.now()) {
		delete(m.tokens, key)
		return AccessToken{}, false, nil
	}

	return token, true, nil
}

func (m *MemoryTokenCache) Set(ctx context.Context, key string, token AccessToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tokens[key] = token

	return nil
}

func (m *MemoryTokenCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.tokens, key)

	return nil
}

var _ TokenCache = &RedisTokenCache{}

// RedisTokenCache shares tokens between every instance of the service.
type RedisTokenCache struct {
	rdb redis.Cmdable
	now func() time.Time
}

func NewRedisTokenCache(rdb redis.Cmdable) *RedisTokenCache {
	return &RedisTokenCache{
		rdb: rdb,
		now: time.Now,
	}
}

func (r *RedisTokenCache) Get(ctx context.Context, key string) (AccessToken, bool, error) {
	data, err := r.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return AccessToken{}, false, nil
		}
		return AccessToken{}, false, NewTokenCacheError("Failed to read token from redis", err)
	}

	var token AccessToken
	err = json.Unmarshal(data, &token)
	if err != nil {
		return AccessToken{}, false, NewTokenCacheError("Failed to decode cached token", err)
	}

	if !token.validAt(r.now()) {
		return AccessToken{}, false, nil
	}

	return token, true, nil
}

func (r *RedisTokenCache) Set(ctx context.Context, key string, token AccessToken) error {
	ttl := token.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		return nil
	}

	data, err := json.Marshal(token)
	if err != nil {
		return NewTokenCacheError("Failed to encode token", err)
	}

	err = r.rdb.Set(ctx, key, data, ttl).Err()
	if err != nil {
		return NewTokenCacheError("Failed to write token to redis", err)
	}

	return nil
}

func (r *RedisTokenCache) Delete(ctx context.Context, key string) error {
	err := r.rdb.Del(ctx, key).Err()
	if err != nil {
		return NewTokenCacheError("Failed to delete token from redis", err)
	}

	return nil
}
