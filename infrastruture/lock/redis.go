// Package lock implements the training lock used to serialize training calls.
package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-qlearn/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

const (
	defaultTTL = 2 * time.Minute
	lockKeyFmt = "%s:lock"
)

var _ i.Locker = &RedisLocker{}

// RedisLocker is a redsync mutex shared by every process using the same Redis.
type RedisLocker struct {
	locker *redsync.Redsync
	ttl    time.Duration
}

// NewRedisLocker creates a RedisLocker. Locks expire after ttl even if never released.
func NewRedisLocker(client *redis.Client, ttl time.Duration) (*RedisLocker, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	pool := goredis.NewPool(client)
	return &RedisLocker{
		locker: redsync.New(pool),
		ttl:    ttl,
	}, nil
}

// Lock implements i.Locker. It makes a single attempt.
func (rl *RedisLocker) Lock(ctx context.Context, name string) (func() error, error) {
	mutex := rl.locker.NewMutex(fmt.Sprintf(lockKeyFmt, name), redsync.WithExpiry(rl.ttl), redsync.WithTries(1))
	if err := mutex.LockContext(ctx); err != nil {
		var taken *redsync.ErrTaken
		if errors.Is(err, redsync.ErrFailed) || errors.As(err, &taken) {
			return nil, i.ErrLocked
		}
		return nil, err
	}

	return func() error {
		ok, err := mutex.Unlock()
		if err != nil {
			return err
		}
		if !ok {
			return errors.New("redis eval func returned 0 while releasing")
		}
		return nil
	}, nil
}
