package repository

import "errors"

var (
	// ErrActiveGameExists означает, что у пользователя уже есть незавершённая игра.
	ErrActiveGameExists = errors.New("user already has an unfinished game")
	// ErrGameStateChanged означает, что игра изменилась между чтением и сохранением.
	ErrGameStateChanged = errors.New("game state changed concurrently")
	// ErrDuplicateEmail означает, что пользователь с таким email уже зарегистрирован.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrLockNotAcquired означает, что блокировка занята другим запросом.
	ErrLockNotAcquired = errors.New("lock is held by another request")
)
