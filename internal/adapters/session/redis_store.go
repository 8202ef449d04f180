package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/JUST9N1/Security-Backend/internal/core/domain"
	"github.com/JUST9N1/Security-Backend/internal/pkg/password"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultTTL is how long a first-party session lives
const DefaultTTL = 24 * time.Hour

var (
	// ErrSessionNotFound is returned for unknown or expired session ids
	ErrSessionNotFound = errors.New("session not found")

	// ErrRedisUnavailable wraps transport failures
	ErrRedisUnavailable = errors.New("redis unavailable")
)

// Session is the server-side record behind a session cookie
type Session struct {
	AccountID string      `json:"accountId"`
	Role      domain.Role `json:"role"`
	CreatedAt int64       `json:"createdAt"`
}

// Store keeps sessions in Redis. Keys are derived from a hash of the
// session id so raw ids never reach the server.
type Store struct {
	redis  redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewStore creates a session store
func NewStore(rdb redis.UniversalClient, prefix string, ttl time.Duration) *Store {
	if prefix == "" {
		prefix = "sess"
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{redis: rdb, prefix: prefix, ttl: ttl}
}

// TTL returns the session lifetime
func (s *Store) TTL() time.Duration {
	return s.ttl
}

func (s *Store) key(sessionID string) string {
	return s.prefix + ":" + password.HashToken(sessionID)
}

func (s *Store) accountKey(accountID string) string {
	return s.prefix + "acct:" + accountID
}

// Create stores a new session and returns its id
func (s *Store) Create(ctx context.Context, accountID string, role domain.Role) (string, error) {
	sessionID := uuid.New().String()
	data, err := json.Marshal(&Session{
		AccountID: accountID,
		Role:      role,
		CreatedAt: time.Now().Unix(),
	})
	if err != nil {
		return "", err
	}

	key := s.key(sessionID)
	accountKey := s.accountKey(accountID)
	_, err = s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, key, data, s.ttl)
		pipe.SAdd(ctx, accountKey, key)
		pipe.Expire(ctx, accountKey, s.ttl)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return sessionID, nil
}

// Get loads a session by id
func (s *Store) Get(ctx context.Context, sessionID string) (*Session, error) {
	if sessionID == "" {
		return nil, ErrSessionNotFound
	}

	data, err := s.redis.Get(ctx, s.key(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil || sess.AccountID == "" {
		return nil, ErrSessionNotFound
	}
	return &sess, nil
}

// Delete removes one session. Deleting an unknown session is not an error.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	sess, err := s.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil
		}
		return err
	}

	key := s.key(sessionID)
	_, err = s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.SRem(ctx, s.accountKey(sess.AccountID), key)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// DeleteAllForAccount removes every session of an account
func (s *Store) DeleteAllForAccount(ctx context.Context, accountID string) error {
	accountKey := s.accountKey(accountID)
	keys, err := s.redis.SMembers(ctx, accountKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	_, err = s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if len(keys) > 0 {
			pipe.Del(ctx, keys...)
		}
		pipe.Del(ctx, accountKey)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}
