package i

import (
	"context"
	"errors"
)

// Locker provides mutual exclusion across training calls sharing one store.
type Locker interface {
	// Lock acquires the named lock without waiting and returns its release function.
	// It fails when the lock is already held.
	Lock(ctx context.Context, name string) (func() error, error)
}

// ErrLocked is returned by Lock when another holder owns the lock.
var ErrLocked = errors.New("lock is held by another caller")
