package repository

import (
	"github.com/yourusername/millionaire-api/internal/domain/entity"
)

// QuestionRepository определяет методы для работы с банком вопросов
type QuestionRepository interface {
	Create(question *entity.Question) error
	CreateBatch(questions []entity.Question) error
	GetByID(id uint) (*entity.Question, error)
	Delete(id uint) error

	// GetRandomPerLevel возвращает по одному случайному вопросу на каждый уровень
	// из диапазона [fromLevel, toLevel], упорядоченные по уровню.
	// Уровни без вопросов пропускаются.
	GetRandomPerLevel(fromLevel, toLevel int) ([]entity.Question, error)

	// CountByLevel возвращает размер пула по уровням
	CountByLevel() (map[int]int64, error)
}
