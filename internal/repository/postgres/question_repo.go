package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/millionaire-api/internal/domain/entity"
	apperrors "github.com/yourusername/millionaire-api/internal/pkg/errors"
)

const questionBatchSize = 100

// QuestionRepo реализует repository.QuestionRepository
type QuestionRepo struct {
	db *gorm.DB
}

// NewQuestionRepo создает новый репозиторий вопросов
func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// Create создает новый вопрос
func (r *QuestionRepo) Create(question *entity.Question) error {
	return r.db.Create(question).Error
}

// CreateBatch создает пакет вопросов в одной транзакции
func (r *QuestionRepo) CreateBatch(questions []entity.Question) error {
	if len(questions) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(&questions, questionBatchSize).Error
	})
}

// GetByID возвращает вопрос по ID
func (r *QuestionRepo) GetByID(id uint) (*entity.Question, error) {
	var question entity.Question
	err := r.db.First(&question, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &question, nil
}

// Delete удаляет вопрос
func (r *QuestionRepo) Delete(id uint) error {
	result := r.db.Delete(&entity.Question{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// GetRandomPerLevel выбирает по одному случайному вопросу каждого уровня одним запросом
func (r *QuestionRepo) GetRandomPerLevel(fromLevel, toLevel int) ([]entity.Question, error) {
	var questions []entity.Question
	err := r.db.Raw(`
		SELECT DISTINCT ON (level) *
		FROM questions
		WHERE level BETWEEN ? AND ?
		ORDER BY level, RANDOM()
	`, fromLevel, toLevel).Scan(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// CountByLevel возвращает количество вопросов на каждом уровне
func (r *QuestionRepo) CountByLevel() (map[int]int64, error) {
	var rows []struct {
		Level int
		Count int64
	}
	err := r.db.Model(&entity.Question{}).
		Select("level, COUNT(*) AS count").
		Group("level").
		Order("level").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	byLevel := make(map[int]int64, len(rows))
	for _, row := range rows {
		byLevel[row.Level] = row.Count
	}
	return byLevel, nil
}
