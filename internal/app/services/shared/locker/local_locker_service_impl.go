package locker

import (
	"context"
	"fmt"
	"patient-record-service/internal/app/contracts"
	"patient-record-service/internal/pkg/exceptions"
	"patient-record-service/internal/pkg/utils"
	"sync"
	"time"
)

type localLock struct {
	value     string
	expiresAt time.Time
}

func (l localLock) expired(now time.Time) bool {
	return !l.expiresAt.IsZero() && now.After(l.expiresAt)
}

// localLockService is an in-process keyed lock with the same contract as the
// redis locker. A zero expiration never expires.
type localLockService struct {
	mu    sync.Mutex
	locks map[string]localLock
	now   func() time.Time
}

func NewLocalLockService() contracts.LockerService {
	return &localLockService{
		locks: make(map[string]localLock),
		now:   time.Now,
	}
}

func (s *localLockService) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	if err := ctx.Err(); err != nil {
		return false, "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if current, held := s.locks[key]; held && !current.expired(now) {
		return false, "", nil
	}

	lock := localLock{value: utils.GenerateLockValue()}
	if expiration > 0 {
		lock.expiresAt = now.Add(expiration)
	}
	s.locks[key] = lock
	return true, lock.value, nil
}

func (s *localLockService) Unlock(ctx context.Context, key, lockValue string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, held := s.locks[key]
	if !held {
		return nil
	}
	if current.value != lockValue {
		return exceptions.ErrLockNotOwned(fmt.Errorf("lock held by %s", current.value), key)
	}
	delete(s.locks, key)
	return nil
}
