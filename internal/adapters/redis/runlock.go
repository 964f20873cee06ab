package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/amyangfei/redlock-go/v3/redlock"
	"go.uber.org/zap"

	"github.com/Jorgecuenca1/market-stock/pkg/logger"
)

// runLockTTL must outlive the slowest full update cycle. Runs are
// bounded by the symbol list, so no renewal is needed; an expired lock
// after a crash simply frees the domain.
const runLockTTL = 10 * time.Minute

// RunLock guards one update domain against overlapping runs across
// processes using the Redlock algorithm
type RunLock struct {
	lockManager *redlock.RedLock
	domain      string
	lockName    string
	locked      bool
}

func newRunLock(lockManager *redlock.RedLock, domain string) *RunLock {
	return &RunLock{
		lockManager: lockManager,
		domain:      domain,
		lockName:    fmt.Sprintf("update:lock:%s", domain),
	}
}

// TryAcquire attempts to take the domain lock. Returns false when
// another process is already running this domain.
func (rl *RunLock) TryAcquire(ctx context.Context) (bool, error) {
	expiry, err := rl.lockManager.Lock(ctx, rl.lockName, runLockTTL)
	if err != nil {
		logger.Debug("run lock already held",
			zap.String("domain", rl.domain),
			zap.String("lock_name", rl.lockName),
		)
		return false, nil
	}

	if expiry <= 0 {
		return false, fmt.Errorf("failed to acquire lock: invalid expiry %v", expiry)
	}

	rl.locked = true

	logger.Debug("run lock acquired",
		zap.String("domain", rl.domain),
		zap.Duration("expiry", expiry),
	)

	return true, nil
}

// Release frees the domain lock. An already-expired lock is not an
// error.
func (rl *RunLock) Release(ctx context.Context) {
	if !rl.locked {
		return
	}

	if err := rl.lockManager.UnLock(ctx, rl.lockName); err != nil {
		logger.Warn("failed to release run lock (may have expired)",
			zap.String("domain", rl.domain),
			zap.Error(err),
		)
	}

	rl.locked = false
}
