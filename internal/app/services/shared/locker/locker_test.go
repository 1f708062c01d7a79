package locker

import (
	"context"
	"errors"
	"patient-record-service/internal/pkg/constvars"
	"patient-record-service/internal/pkg/exceptions"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeRedisRepository mimics the redis repository: values are stored JSON
// encoded, exactly as SETNX would receive them.
type fakeRedisRepository struct {
	mu     sync.Mutex
	values map[string]string
	setErr error
}

func newFakeRedisRepository() *fakeRedisRepository {
	return &fakeRedisRepository{values: make(map[string]string)}
}

func (f *fakeRedisRepository) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[key], nil
}

func (f *fakeRedisRepository) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return false, f.setErr
	}
	if _, exists := f.values[key]; exists {
		return false, nil
	}
	encoded, _ := json.Marshal(value)
	f.values[key] = string(encoded)
	return true, nil
}

func (f *fakeRedisRepository) DeleteIfEqual(ctx context.Context, key string, value interface{}) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	encoded, _ := json.Marshal(value)
	if f.values[key] != string(encoded) {
		return false, nil
	}
	delete(f.values, key)
	return true, nil
}

func TestLockService(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRedisRepository()
	service := NewLockService(repo, zap.NewNop())

	acquired, lockValue, err := service.TryLock(ctx, "lock:test", time.Second)
	require.NoError(t, err)
	require.True(t, acquired)

	t.Run("second acquisition fails", func(t *testing.T) {
		acquired, _, err := service.TryLock(ctx, "lock:test", time.Second)
		require.NoError(t, err)
		assert.False(t, acquired)
	})

	t.Run("unlock by stranger", func(t *testing.T) {
		err := service.Unlock(ctx, "lock:test", "someone-else")
		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, constvars.StatusInternalServerError, customErr.StatusCode)
	})

	t.Run("unlock by owner", func(t *testing.T) {
		require.NoError(t, service.Unlock(ctx, "lock:test", lockValue))

		stored, _ := repo.Get(ctx, "lock:test")
		assert.Empty(t, stored)
	})

	t.Run("unlock released lock", func(t *testing.T) {
		assert.NoError(t, service.Unlock(ctx, "lock:test", lockValue))
	})

	t.Run("redis failure surfaces", func(t *testing.T) {
		failing := newFakeRedisRepository()
		failing.setErr = errors.New("connection refused")

		_, _, err := NewLockService(failing, zap.NewNop()).TryLock(ctx, "lock:test", time.Second)
		assert.Error(t, err)
	})
}

func TestLocalLockService(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	service := &localLockService{
		locks: make(map[string]localLock),
		now:   func() time.Time { return now },
	}

	acquired, lockValue, err := service.TryLock(ctx, "lock:test", time.Second)
	require.NoError(t, err)
	require.True(t, acquired)

	t.Run("held lock blocks", func(t *testing.T) {
		acquired, _, err := service.TryLock(ctx, "lock:test", time.Second)
		require.NoError(t, err)
		assert.False(t, acquired)
	})

	t.Run("wrong owner cannot unlock", func(t *testing.T) {
		assert.Error(t, service.Unlock(ctx, "lock:test", "someone-else"))
	})

	t.Run("expired lock can be taken over", func(t *testing.T) {
		now = now.Add(2 * time.Second)

		acquired, newValue, err := service.TryLock(ctx, "lock:test", 0)
		require.NoError(t, err)
		assert.True(t, acquired)
		assert.NotEqual(t, lockValue, newValue)
		assert.Error(t, service.Unlock(ctx, "lock:test", lockValue), "previous owner lost the lock")

		now = now.Add(time.Hour)
		acquired, _, err = service.TryLock(ctx, "lock:test", time.Second)
		require.NoError(t, err)
		assert.False(t, acquired, "zero expiration never expires")

		assert.NoError(t, service.Unlock(ctx, "lock:test", newValue))
	})

	t.Run("cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, _, err := service.TryLock(cancelled, "lock:other", time.Second)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestWithLock(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()
	options := Options{Expiration: time.Second, RetryInterval: time.Millisecond, WaitTimeout: 50 * time.Millisecond}

	t.Run("releases after success and failure", func(t *testing.T) {
		service := NewLocalLockService()

		require.NoError(t, WithLock(ctx, service, "lock:test", options, logger, func(ctx context.Context) error { return nil }))

		boom := errors.New("boom")
		err := WithLock(ctx, service, "lock:test", options, logger, func(ctx context.Context) error { return boom })
		assert.ErrorIs(t, err, boom)

		acquired, _, err := service.TryLock(ctx, "lock:test", time.Second)
		require.NoError(t, err)
		assert.True(t, acquired)
	})

	t.Run("times out when held", func(t *testing.T) {
		service := NewLocalLockService()
		_, _, err := service.TryLock(ctx, "lock:test", 0)
		require.NoError(t, err)

		called := false
		err = WithLock(ctx, service, "lock:test", options, logger, func(ctx context.Context) error {
			called = true
			return nil
		})

		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, constvars.StatusServiceUnavailable, customErr.StatusCode)
		assert.False(t, called)
	})

	t.Run("serializes critical sections", func(t *testing.T) {
		service := NewLocalLockService()
		waitForever := Options{Expiration: time.Minute, RetryInterval: time.Millisecond}

		var (
			wg      sync.WaitGroup
			inside  int
			maxSeen int
			mu      sync.Mutex
		)
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := WithLock(ctx, service, "lock:test", waitForever, logger, func(ctx context.Context) error {
					mu.Lock()
					inside++
					if inside > maxSeen {
						maxSeen = inside
					}
					mu.Unlock()

					time.Sleep(2 * time.Millisecond)

					mu.Lock()
					inside--
					mu.Unlock()
					return nil
				})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, maxSeen)
	})
}
