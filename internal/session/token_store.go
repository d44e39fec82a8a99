// Package session keeps the backend bearer token server-side, keyed by the
// browser's sid cookie. The token itself never reaches the browser.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrNoSession = errors.New("session: not found")

type TokenStore interface {
	Save(ctx context.Context, sid, token string) error
	Get(ctx context.Context, sid string) (string, error)
	Delete(ctx context.Context, sid string) error
}

type RedisTokenStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisTokenStore(rdb *redis.Client, ttl time.Duration) *RedisTokenStore {
	return &RedisTokenStore{rdb: rdb, ttl: ttl}
}

func key(sid string) string { return "sarpras:token:" + sid }

func (s *RedisTokenStore) Save(ctx context.Context, sid, token string) error {
	return s.rdb.Set(ctx, key(sid), token, s.ttl).Err()
}

func (s *RedisTokenStore) Get(ctx context.Context, sid string) (string, error) {
	tok, err := s.rdb.Get(ctx, key(sid)).Result()
	if err == redis.Nil {
		return "", ErrNoSession
	}
	if err != nil {
		return "", err
	}
	return tok, nil
}

func (s *RedisTokenStore) Delete(ctx context.Context, sid string) error {
	return s.rdb.Del(ctx, key(sid)).Err()
}
