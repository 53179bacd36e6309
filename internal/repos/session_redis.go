package repos

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"

	"snapbook/internal/apperr"
	"snapbook/internal/domain"
)

const (
	sessionKeyPrefix = "snapbook:session:"
	userKeyPrefix    = "snapbook:user-sessions:"
)

// RedisSessionStore keeps sessions as JSON values that expire after TTL. Each
// username also maps to a set of its session ids.
type RedisSessionStore struct {
	Client *redis.Client
	TTL    time.Duration
}

// NewRedisSessionStore parses a redis:// URL and checks the server answers.
func NewRedisSessionStore(ctx context.Context, url string, ttl time.Duration) (*RedisSessionStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return &RedisSessionStore{Client: client, TTL: ttl}, nil
}

func sessionKey(id string) string { return sessionKeyPrefix + id }

func userKey(username string) string { return userKeyPrefix + username }

func (s *RedisSessionStore) Put(ctx context.Context, sess *domain.Session) error {
	b, err := json.Marshal(sess)
	if err != nil {
		return apperr.Store("session", err)
	}
	pipe := s.Client.TxPipeline()
	pipe.Set(ctx, sessionKey(sess.ID), b, s.TTL)
	pipe.SAdd(ctx, userKey(sess.Username), sess.ID)
	if s.TTL > 0 {
		pipe.Expire(ctx, userKey(sess.Username), s.TTL)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return apperr.Store("session", err)
	}
	return nil
}

func (s *RedisSessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	b, err := s.Client.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, apperr.NotFound("session")
	}
	if err != nil {
		return nil, apperr.Store("session", err)
	}
	var sess domain.Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return nil, apperr.Store("session", err)
	}
	return &sess, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	n, err := s.Client.Del(ctx, sessionKey(id)).Result()
	if err != nil {
		return apperr.Store("session", err)
	}
	if n == 0 {
		return apperr.NotFound("session")
	}
	return nil
}

// DeleteByUsername drops every session in the user's set. Ids whose keys
// already expired are harmless to delete.
func (s *RedisSessionStore) DeleteByUsername(ctx context.Context, username string) error {
	ids, err := s.Client.SMembers(ctx, userKey(username)).Result()
	if err != nil {
		return apperr.Store("session", err)
	}
	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, sessionKey(id))
	}
	keys = append(keys, userKey(username))
	if err := s.Client.Del(ctx, keys...).Err(); err != nil {
		return apperr.Store("session", err)
	}
	return nil
}

func (s *RedisSessionStore) Close() error { return s.Client.Close() }
