package service

import (
	"errors"
	"fmt"

	"github.com/yourusername/millionaire-api/internal/domain/repository"
	apperrors "github.com/yourusername/millionaire-api/internal/pkg/errors"
)

// ConcurrentGameError возвращается при попытке начать игру, пока предыдущая не завершена
type ConcurrentGameError struct {
	ActiveGameID uint
}

func (e *ConcurrentGameError) Error() string {
	return fmt.Sprintf("user already has game #%d in progress", e.ActiveGameID)
}

// Unwrap позволяет проверять ошибку через errors.Is(err, apperrors.ErrConcurrentGame)
func (e *ConcurrentGameError) Unwrap() error {
	return apperrors.ErrConcurrentGame
}

// translateRepoError переводит ошибки репозиториев в ошибки приложения
func translateRepoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrGameStateChanged),
		errors.Is(err, repository.ErrLockNotAcquired),
		errors.Is(err, repository.ErrDuplicateEmail):
		return fmt.Errorf("%w: %v", apperrors.ErrConflict, err)
	case errors.Is(err, repository.ErrActiveGameExists):
		return fmt.Errorf("%w: %v", apperrors.ErrConcurrentGame, err)
	}
	return err
}
