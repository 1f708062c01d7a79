package locker

import (
	"context"
	"errors"
	"patient-record-service/internal/app/contracts"
	"patient-record-service/internal/pkg/constvars"
	"patient-record-service/internal/pkg/exceptions"
	"patient-record-service/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
)

type Options struct {
	// Expiration bounds how long a crashed holder can keep the lock.
	Expiration time.Duration
	// RetryInterval is the pause between acquisition attempts.
	RetryInterval time.Duration
	// WaitTimeout caps the total acquisition time; zero waits for ctx only.
	WaitTimeout time.Duration
}

var DefaultOptions = Options{
	Expiration:    30 * time.Second,
	RetryInterval: 25 * time.Millisecond,
	WaitTimeout:   5 * time.Second,
}

// WithLock runs fn while holding key. The lock is released even when fn
// fails, using a context that outlives cancellation of ctx.
func WithLock(ctx context.Context, lockerService contracts.LockerService, key string, options Options, logger *zap.Logger, fn func(ctx context.Context) error) error {
	lockValue, err := acquire(ctx, lockerService, key, options)
	if err != nil {
		return err
	}

	defer func() {
		unlockCtx := context.WithoutCancel(ctx)
		if unlockErr := lockerService.Unlock(unlockCtx, key, lockValue); unlockErr != nil {
			logger.Error("locker.WithLock failed to release lock",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
				zap.String(constvars.LoggingLockKey, key),
				zap.Error(unlockErr),
			)
		}
	}()

	return fn(ctx)
}

func acquire(ctx context.Context, lockerService contracts.LockerService, key string, options Options) (string, error) {
	waitCtx := ctx
	if options.WaitTimeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, options.WaitTimeout)
		defer cancel()
	}

	retryInterval := options.RetryInterval
	if retryInterval <= 0 {
		retryInterval = DefaultOptions.RetryInterval
	}
	ticker := time.NewTicker(retryInterval)
	defer ticker.Stop()

	for {
		acquired, lockValue, err := lockerService.TryLock(waitCtx, key, options.Expiration)
		if err != nil && !isContextError(err) {
			return "", err
		}
		if acquired {
			return lockValue, nil
		}

		select {
		case <-waitCtx.Done():
			return "", exceptions.ErrLockTimeout(waitCtx.Err(), key)
		case <-ticker.C:
		}
	}
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
