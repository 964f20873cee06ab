package updater

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/Jorgecuenca1/market-stock/pkg/logger"
)

// ErrAlreadyRunning is returned when an update domain is busy, either in
// this process or in another one holding the shared lock
var ErrAlreadyRunning = errors.New("update already running")

// DomainLock is a cross-process lease on one update domain
type DomainLock interface {
	TryAcquire(ctx context.Context) (bool, error)
	Release(ctx context.Context)
}

// LockFactory creates a cross-process lock for a domain. Nil disables
// cross-process locking and the guard falls back to in-process only.
type LockFactory func(domain string) DomainLock

// Guard enforces single-flight per update domain. Overlapping triggers
// (scheduler tick plus manual API call) are rejected, never queued.
type Guard struct {
	mu    sync.Mutex
	busy  map[string]bool
	locks LockFactory
}

// NewGuard creates new run guard
func NewGuard(locks LockFactory) *Guard {
	return &Guard{
		busy:  make(map[string]bool),
		locks: locks,
	}
}

// Acquire takes the domain. The returned release function must be called
// exactly once when the run finishes.
func (g *Guard) Acquire(ctx context.Context, domain string) (func(), error) {
	g.mu.Lock()
	if g.busy[domain] {
		g.mu.Unlock()
		return nil, ErrAlreadyRunning
	}
	g.busy[domain] = true
	g.mu.Unlock()

	var lock DomainLock
	if g.locks != nil {
		lock = g.locks(domain)

		ok, err := lock.TryAcquire(ctx)
		if err != nil || !ok {
			g.mu.Lock()
			delete(g.busy, domain)
			g.mu.Unlock()

			if err != nil {
				return nil, err
			}

			logger.Debug("domain locked by another process",
				zap.String("domain", domain),
			)
			return nil, ErrAlreadyRunning
		}
	}

	release := func() {
		if lock != nil {
			lock.Release(context.Background())
		}

		g.mu.Lock()
		delete(g.busy, domain)
		g.mu.Unlock()
	}

	return release, nil
}
