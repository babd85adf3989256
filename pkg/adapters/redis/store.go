package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/Chinh13571113/careermate-web-sub001/pkg/domain"
	"github.com/Chinh13571113/careermate-web-sub001/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// saveScript performs the revision-checked write atomically:
// KEYS[1] payload, KEYS[2] revision counter, KEYS[3] index ZSET.
// ARGV[1] payload, ARGV[2] expected revision, ARGV[3] new revision,
// ARGV[4] index score, ARGV[5] session ID, ARGV[6] TTL millis (0 = none).
const saveScript = `
	local cur = redis.call("GET", KEYS[2])
	if cur then
		if cur ~= ARGV[2] then return 0 end
	else
		if ARGV[2] ~= "0" then return 0 end
	end
	redis.call("SET", KEYS[1], ARGV[1])
	redis.call("SET", KEYS[2], ARGV[3])
	redis.call("ZADD", KEYS[3], ARGV[4], ARGV[5])
	if tonumber(ARGV[6]) > 0 then
		redis.call("PEXPIRE", KEYS[1], ARGV[6])
		redis.call("PEXPIRE", KEYS[2], ARGV[6])
	end
	return 1
`

// Store implements ports.SessionStore using Redis.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for sessions.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for sessions.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "careermate:session:",
		ttl:    0, // No expiration by default
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) key(sessionID string) string {
	return s.prefix + sessionID
}

func (s *Store) revKey(sessionID string) string {
	return s.prefix + sessionID + ":rev"
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save persists the session with an atomic compare-and-swap on its
// revision; a stale revision fails with domain.ErrConflict.
func (s *Store) Save(ctx context.Context, session *domain.Session) error {
	if session.ID == "" {
		return fmt.Errorf("session ID cannot be empty")
	}

	next := session.Clone()
	next.Revision++
	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ok, err := s.client.Eval(ctx, saveScript,
		[]string{s.key(session.ID), s.revKey(session.ID), s.indexKey()},
		string(data),
		strconv.FormatInt(session.Revision, 10),
		strconv.FormatInt(next.Revision, 10),
		float64(next.CreatedAt.Unix()),
		session.ID,
		s.ttl.Milliseconds(),
	).Int()
	if err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	if ok != 1 {
		return fmt.Errorf("%w: session %s", domain.ErrConflict, session.ID)
	}

	session.Revision = next.Revision
	return nil
}

// Load retrieves the session from Redis.
func (s *Store) Load(ctx context.Context, sessionID string) (*domain.Session, error) {
	val, err := s.client.Get(ctx, s.key(sessionID)).Result()
	if err != nil {
		if err == backend.Nil {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

// Delete removes the session and its index entry.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(sessionID), s.revKey(sessionID))
	pipe.ZRem(ctx, s.indexKey(), sessionID)
	_, err := pipe.Exec(ctx)
	return err
}

// List returns sessions matching the filter, oldest first (index score
// is the creation time). Sessions expired by TTL are pruned lazily.
func (s *Store) List(ctx context.Context, filter ports.ListFilter) ([]*domain.Session, error) {
	ids, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	sessions := make([]*domain.Session, 0, len(ids))
	for _, id := range ids {
		session, err := s.Load(ctx, id)
		if err == domain.ErrSessionNotFound {
			// Payload expired; drop the stale index entry.
			_ = s.client.ZRem(ctx, s.indexKey(), id).Err()
			continue
		}
		if err != nil {
			return nil, err
		}
		if filter.OwnerID != "" && session.OwnerID != filter.OwnerID {
			continue
		}
		if filter.Status != "" && session.Status != filter.Status {
			continue
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
