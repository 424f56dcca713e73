// Package session holds the portal's authentication context: the bearer
// token, user id and role obtained at login.  Sessions live in Redis so
// they survive portal restarts; when no Redis server is reachable the
// store degrades to a process-local map.
package session

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"

	"github.com/expohall/stall-reservation-portal/internal/model"
)

// ErrNoSession is returned by Load when the token is unknown, expired
// or already cleared.
var ErrNoSession = errors.New("session: not found")

const keyPrefix = "session:"

// Store persists sessions keyed by bearer token.  Each session is a
// Redis hash with the fields token, userId and userRole, expiring with
// the token itself.  Logout removes the whole entry.
type Store struct {
	rdb *redis.Client // nil when Redis is unavailable
	ttl time.Duration // fallback lifetime when the token carries no expiry

	mu  sync.RWMutex
	mem map[string]model.Session // in-process fallback
}

// NewStore builds a Store backed by rdb.  rdb may be nil, in which case
// sessions are held in memory only and do not survive a restart.
func NewStore(rdb *redis.Client, fallbackTTL time.Duration) *Store {
	return &Store{rdb: rdb, ttl: fallbackTTL, mem: make(map[string]model.Session)}
}

// Save stores sess under its token.  The entry's lifetime is derived
// from the token's exp claim when present, otherwise the configured
// fallback applies.
func (s *Store) Save(ctx context.Context, sess model.Session) error {
	if !sess.Authenticated() {
		return errors.New("session: refusing to save empty session")
	}
	if s.rdb == nil {
		s.mu.Lock()
		s.mem[sess.Token] = sess
		s.mu.Unlock()
		return nil
	}
	key := keyPrefix + sess.Token
	if err := s.rdb.HSet(ctx, key,
		"token", sess.Token,
		"userId", sess.UserID,
		"userRole", sess.Role,
	).Err(); err != nil {
		return err
	}
	return s.rdb.Expire(ctx, key, TokenTTL(sess.Token, s.ttl)).Err()
}

// Load returns the session stored under token, or ErrNoSession.
func (s *Store) Load(ctx context.Context, token string) (model.Session, error) {
	if token == "" {
		return model.Session{}, ErrNoSession
	}
	if s.rdb == nil {
		s.mu.RLock()
		sess, ok := s.mem[token]
		s.mu.RUnlock()
		if !ok {
			return model.Session{}, ErrNoSession
		}
		return sess, nil
	}
	vals, err := s.rdb.HGetAll(ctx, keyPrefix+token).Result()
	if err != nil {
		return model.Session{}, err
	}
	if len(vals) == 0 {
		return model.Session{}, ErrNoSession
	}
	sess := model.Session{Token: vals["token"], Role: vals["userRole"]}
	if id, err := strconv.ParseInt(vals["userId"], 10, 64); err == nil {
		sess.UserID = id
	}
	return sess, nil
}

// Clear removes the session stored under token.  Clearing an unknown
// token is not an error: logout must always succeed.
func (s *Store) Clear(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if s.rdb == nil {
		s.mu.Lock()
		delete(s.mem, token)
		s.mu.Unlock()
		return nil
	}
	return s.rdb.Del(ctx, keyPrefix+token).Err()
}

// TokenTTL derives a session lifetime from the bearer token's exp claim.
// The token is issued and verified by the remote auth service; the
// portal only reads the expiry, so an unverified parse is sufficient.
// When the token is not a JWT or carries no expiry, fallback applies.
func TokenTTL(token string, fallback time.Duration) time.Duration {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return fallback
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return fallback
	}
	ttl := time.Until(exp.Time)
	if ttl <= 0 {
		return fallback
	}
	return ttl
}
