package repository

import (
	"github.com/yourusername/millionaire-api/internal/domain/entity"
)

// GameRepository определяет методы для работы с играми
type GameRepository interface {
	// Create сохраняет игру вместе с игровыми вопросами.
	// Возвращает ErrActiveGameExists, если у пользователя уже есть незавершённая игра.
	Create(game *entity.Game) error
	// GetByID возвращает игру с вопросами, упорядоченными по уровню
	GetByID(id uint) (*entity.Game, error)
	// GetActiveByUser возвращает незавершённую игру пользователя
	GetActiveByUser(userID uint) (*entity.Game, error)
	// SaveState сохраняет изменения игры, сделанные после чтения на уровне expectedLevel.
	// question — изменённый игровой вопрос (подсказки), credit зачисляется на баланс владельца.
	// Возвращает ErrGameStateChanged, если игру успели изменить или завершить.
	SaveState(game *entity.Game, expectedLevel int, question *entity.GameQuestion, credit int64) error
	// ListByUser возвращает игры пользователя (новые первыми) и их общее количество
	ListByUser(userID uint, limit, offset int) ([]entity.Game, int64, error)
}
