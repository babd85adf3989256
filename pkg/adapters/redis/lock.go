package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Chinh13571113/careermate-web-sub001/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// unlockScript releases the lock only if this holder still owns it.
const unlockScript = `
	if redis.call("get", KEYS[1]) == ARGV[1] then
		return redis.call("del", KEYS[1])
	else
		return 0
	end
`

// Locker implements ports.SessionLocker using Redis SET NX PX.
type Locker struct {
	client *backend.Client
	prefix string
}

// NewLocker creates a new Redis locker.
func NewLocker(client *backend.Client, prefix string) *Locker {
	return &Locker{
		client: client,
		prefix: prefix,
	}
}

// TryLock makes a single non-blocking acquisition attempt. The lock
// value is random so only the holder's unlock releases it; the TTL
// reclaims locks from dead holders.
func (l *Locker) TryLock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, bool, error) {
	lockKey := l.prefix + "lock:" + key
	val := uuid.NewString()

	acquired, err := l.client.SetNX(ctx, lockKey, val, ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("redis error acquiring lock: %w", err)
	}
	if !acquired {
		return nil, false, nil
	}

	return func(ctx context.Context) error {
		return l.client.Eval(ctx, unlockScript, []string{lockKey}, val).Err()
	}, true, nil
}
