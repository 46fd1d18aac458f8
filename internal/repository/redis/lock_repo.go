package redis

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/yourusername/millionaire-api/internal/domain/repository"
)

// releaseScript удаляет ключ, только если в нём лежит токен владельца
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// Locker реализует repository.Locker на SET NX PX
type Locker struct {
	client redis.UniversalClient
}

// NewLocker создает распределённый locker
func NewLocker(client redis.UniversalClient) (*Locker, error) {
	if client == nil {
		return nil, fmt.Errorf("Redis client cannot be nil for Locker")
	}
	return &Locker{client: client}, nil
}

// Acquire захватывает блокировку с уникальным токеном
func (l *Locker) Acquire(ctx context.Context, key string, ttl time.Duration) (repository.Lock, error) {
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", key, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", repository.ErrLockNotAcquired, key)
	}
	return &redisLock{client: l.client, key: key, token: token}, nil
}

type redisLock struct {
	client redis.UniversalClient
	key    string
	token  string
}

// Release освобождает блокировку. Истёкшая или перехваченная блокировка не удаляется.
func (l *redisLock) Release(ctx context.Context) error {
	deleted, err := releaseScript.Run(ctx, l.client, []string{l.key}, l.token).Int()
	if err != nil {
		return fmt.Errorf("release lock %s: %w", l.key, err)
	}
	if deleted == 0 {
		log.Printf("[Locker] Блокировка %s уже истекла или принадлежит другому владельцу", l.key)
	}
	return nil
}
