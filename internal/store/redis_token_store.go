package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"moola/internal/domain"
)

// ErrRedisUnavailable wraps transport failures from the redis backend.
var ErrRedisUnavailable = errors.New("redis unavailable")

// RedisTokenStore keeps the pair as two string keys in redis.
//
// Writes and deletes go through MULTI/EXEC so both keys change together.
type RedisTokenStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewRedisTokenStore returns a store using keys "<prefix>:accessToken" and
// "<prefix>:refreshToken". A zero ttl keeps the keys until cleared.
func NewRedisTokenStore(client redis.UniversalClient, prefix string, ttl time.Duration) *RedisTokenStore {
	prefix = strings.TrimSuffix(strings.TrimSpace(prefix), ":")
	if prefix == "" {
		prefix = "moola"
	}
	return &RedisTokenStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisTokenStore) keys() (access, refresh string) {
	return s.prefix + ":" + AccessTokenKey, s.prefix + ":" + RefreshTokenKey
}

// Save writes both tokens in one transaction.
func (s *RedisTokenStore) Save(ctx context.Context, pair domain.TokenPair) error {
	if !pair.Complete() {
		return ErrIncompleteTokenPair
	}
	ak, rk := s.keys()
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, ak, pair.AccessToken, s.ttl)
		p.Set(ctx, rk, pair.RefreshToken, s.ttl)
		return nil
	})
	if err != nil {
		return errors.Join(ErrRedisUnavailable, err)
	}
	return nil
}

// Get reads both tokens; a missing key yields ok=false.
func (s *RedisTokenStore) Get(ctx context.Context) (domain.TokenPair, bool, error) {
	ak, rk := s.keys()
	vals, err := s.client.MGet(ctx, ak, rk).Result()
	if err != nil {
		return domain.TokenPair{}, false, errors.Join(ErrRedisUnavailable, err)
	}
	access, _ := vals[0].(string)
	refresh, _ := vals[1].(string)
	return pairFromEntries(access, refresh)
}

// Clear deletes both keys in one transaction.
func (s *RedisTokenStore) Clear(ctx context.Context) error {
	ak, rk := s.keys()
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, ak, rk)
		return nil
	})
	if err != nil {
		return errors.Join(ErrRedisUnavailable, err)
	}
	return nil
}

// Compile-time assertion that RedisTokenStore implements domain.TokenStore.
var _ domain.TokenStore = (*RedisTokenStore)(nil)
