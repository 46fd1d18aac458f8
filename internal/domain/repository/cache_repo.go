package repository

import (
	"context"
	"time"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	Delete(key string) error
	SetJSON(key string, value interface{}, expiration time.Duration) error
	// GetJSON возвращает apperrors.ErrNotFound, если ключа нет
	GetJSON(key string, dest interface{}) error
}

// Locker выдаёт распределённые блокировки с ограниченным временем жизни
type Locker interface {
	// Acquire пытается захватить блокировку key. Возвращает ErrLockNotAcquired, если она занята.
	Acquire(ctx context.Context, key string, ttl time.Duration) (Lock, error)
}

// Lock — захваченная блокировка
type Lock interface {
	// Release освобождает блокировку, только если она всё ещё принадлежит владельцу
	Release(ctx context.Context) error
}
