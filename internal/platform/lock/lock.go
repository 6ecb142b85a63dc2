package lock

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrLocked is returned when another holder owns the key.
var ErrLocked = errors.New("lock is held by another worker")

// Release gives the key back. Releasing twice is a no-op.
type Release func(ctx context.Context) error

// Locker hands out exclusive, non-blocking leases on keys.
type Locker interface {
	TryAcquire(ctx context.Context, key string, ttl time.Duration) (Release, error)
}

// LocalLocker guards keys within one process. ttl is ignored: a key stays held
// until it is released.
type LocalLocker struct {
	mu   sync.Mutex
	held map[string]uint64
	seq  uint64
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{held: make(map[string]uint64)}
}

func (l *LocalLocker) TryAcquire(_ context.Context, key string, _ time.Duration) (Release, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.held[key]; ok {
		return nil, ErrLocked
	}
	l.seq++
	token := l.seq
	l.held[key] = token

	var once sync.Once
	return func(context.Context) error {
		once.Do(func() {
			l.mu.Lock()
			if l.held[key] == token {
				delete(l.held, key)
			}
			l.mu.Unlock()
		})
		return nil
	}, nil
}
