package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{
		client: client,
		ttl:    ttl,
	}
}

// Load refreshes the expiry of a stored session, so reading keeps it alive as well.
func (r *RedisSessionStore) Load(c context.Context, sessionUID string) (Session, error) {
	data, err := r.client.GetEx(c, sessionKey(sessionUID), r.ttl).Bytes()
	if errors.Is(err, redis.Nil) {
		return NewSession(sessionUID), nil
	}
	if err != nil {
		return Session{}, fmt.Errorf("redis getex failed: %w", err)
	}

	record := sessionRecord{}
	err = json.Unmarshal(data, &record)
	if err != nil {
		return Session{}, fmt.Errorf("unmarshal session failed: %w", err)
	}

	return fromRecord(record)
}

// Save refreshes the expiry of the session on every write.
func (r *RedisSessionStore) Save(c context.Context, session Session) error {
	data, err := json.Marshal(toRecord(session))
	if err != nil {
		return fmt.Errorf("marshal session failed: %w", err)
	}

	err = r.client.Set(c, sessionKey(session.UID), data, r.ttl).Err()
	if err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func sessionKey(sessionUID string) string {
	return fmt.Sprintf("session:%s", sessionUID)
}
