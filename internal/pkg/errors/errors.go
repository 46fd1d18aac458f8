package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrUnauthorized используется для ошибок авторизации (неверный токен, нет прав).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden используется, когда у пользователя недостаточно прав для действия.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation используется для ошибок валидации входных данных.
	ErrValidation = errors.New("validation failed")

	// ErrConflict используется для конфликтов состояния (например, параллельное изменение одной игры).
	ErrConflict = errors.New("resource state conflict")
)

// Ошибки игрового ядра
var (
	// ErrConcurrentGame возвращается при попытке начать вторую незавершённую игру.
	ErrConcurrentGame = errors.New("user already has a game in progress")

	// ErrInvalidState возвращается при изменении завершённой игры
	// или при неверном ответе/подсказке во входных данных.
	ErrInvalidState = errors.New("invalid game state")

	// ErrInsufficientData возвращается, если в банке вопросов нет вопроса нужного уровня.
	ErrInsufficientData = errors.New("insufficient questions in the bank")
)
