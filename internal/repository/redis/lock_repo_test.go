package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/millionaire-api/internal/domain/repository"
)

func TestNewLocker_NilClient(t *testing.T) {
	_, err := NewLocker(nil)

	assert.Error(t, err)
}

func TestLocker_AcquireBusyKey(t *testing.T) {
	client := newTestClient(t)
	locker, err := NewLocker(client)
	require.NoError(t, err)
	ctx := context.Background()

	first, err := locker.Acquire(ctx, "lock:game:1", 5*time.Second)
	require.NoError(t, err)

	_, err = locker.Acquire(ctx, "lock:game:1", 5*time.Second)
	assert.ErrorIs(t, err, repository.ErrLockNotAcquired, "Вторая блокировка той же игры не выдаётся")

	other, err := locker.Acquire(ctx, "lock:game:2", 5*time.Second)
	require.NoError(t, err, "Блокировки разных игр независимы")
	require.NoError(t, other.Release(ctx))

	require.NoError(t, first.Release(ctx))
	again, err := locker.Acquire(ctx, "lock:game:1", 5*time.Second)
	require.NoError(t, err, "После освобождения блокировку можно захватить снова")
	require.NoError(t, again.Release(ctx))
}

func TestLocker_SetsTTL(t *testing.T) {
	client := newTestClient(t)
	locker, err := NewLocker(client)
	require.NoError(t, err)
	ctx := context.Background()

	lock, err := locker.Acquire(ctx, "lock:game:3", 5*time.Second)
	require.NoError(t, err)
	defer lock.Release(ctx)

	ttl, err := client.PTTL(ctx, "lock:game:3").Result()
	require.NoError(t, err)
	assert.True(t, ttl > 0 && ttl <= 5*time.Second, "ttl=%v", ttl)
}

func TestLocker_ExpiredLockIsFreed(t *testing.T) {
	client := newTestClient(t)
	locker, err := NewLocker(client)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = locker.Acquire(ctx, "lock:game:4", 100*time.Millisecond)
	require.NoError(t, err)

	time.Sleep(300 * time.Millisecond)

	lock, err := locker.Acquire(ctx, "lock:game:4", 5*time.Second)
	require.NoError(t, err, "Истёкшая блокировка не мешает следующему ходу")
	require.NoError(t, lock.Release(ctx))
}

func TestLocker_StaleReleaseKeepsNewOwner(t *testing.T) {
	client := newTestClient(t)
	locker, err := NewLocker(client)
	require.NoError(t, err)
	ctx := context.Background()

	stale, err := locker.Acquire(ctx, "lock:game:5", 100*time.Millisecond)
	require.NoError(t, err)
	time.Sleep(300 * time.Millisecond)

	owner, err := locker.Acquire(ctx, "lock:game:5", 5*time.Second)
	require.NoError(t, err)

	// Прежний владелец освобождает уже чужую блокировку
	require.NoError(t, stale.Release(ctx))

	token, err := client.Get(ctx, "lock:game:5").Result()
	require.NoError(t, err, "Ключ нового владельца не удалён")
	assert.Equal(t, owner.(*redisLock).token, token)

	_, err = locker.Acquire(ctx, "lock:game:5", 5*time.Second)
	assert.ErrorIs(t, err, repository.ErrLockNotAcquired)

	require.NoError(t, owner.Release(ctx))
	assert.Equal(t, int64(0), client.Exists(ctx, "lock:game:5").Val())
}
