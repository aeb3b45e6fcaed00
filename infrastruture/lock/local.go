package lock

import (
	"context"
	"sync"

	"github.com/beka-birhanu/vinom-qlearn/service/i"
)

var _ i.Locker = &LocalLocker{}

// LocalLocker serializes training within one process.
type LocalLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewLocalLocker creates a LocalLocker.
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{locks: make(map[string]*sync.Mutex)}
}

// Lock implements i.Locker.
func (l *LocalLocker) Lock(_ context.Context, name string) (func() error, error) {
	l.mu.Lock()
	m, ok := l.locks[name]
	if !ok {
		m = &sync.Mutex{}
		l.locks[name] = m
	}
	l.mu.Unlock()

	if !m.TryLock() {
		return nil, i.ErrLocked
	}
	var once sync.Once
	return func() error {
		once.Do(m.Unlock)
		return nil
	}, nil
}
