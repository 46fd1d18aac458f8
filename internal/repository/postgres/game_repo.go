package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/millionaire-api/internal/domain/entity"
	"github.com/yourusername/millionaire-api/internal/domain/repository"
	apperrors "github.com/yourusername/millionaire-api/internal/pkg/errors"
)

// GameRepo реализует repository.GameRepository
type GameRepo struct {
	db *gorm.DB
}

// NewGameRepo создает новый репозиторий игр
func NewGameRepo(db *gorm.DB) *GameRepo {
	return &GameRepo{db: db}
}

// Create сохраняет игру и её вопросы в одной транзакции.
// Partial unique index idx_games_single_active гарантирует не более одной незавершённой игры на пользователя.
func (r *GameRepo) Create(game *entity.Game) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(game).Error; err != nil {
			return err
		}
		if len(game.GameQuestions) == 0 {
			return nil
		}
		for i := range game.GameQuestions {
			game.GameQuestions[i].GameID = game.ID
		}
		// Вопросы банка уже существуют, сохраняем только связи
		return tx.Omit(clause.Associations).Create(&game.GameQuestions).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: user #%d", repository.ErrActiveGameExists, game.UserID)
		}
		return fmt.Errorf("create game for user #%d failed: %w", game.UserID, err)
	}
	return nil
}

// GetByID возвращает игру вместе с вопросами
func (r *GameRepo) GetByID(id uint) (*entity.Game, error) {
	var game entity.Game
	err := r.db.
		Preload("GameQuestions", func(db *gorm.DB) *gorm.DB {
			return db.Order("game_questions.id")
		}).
		Preload("GameQuestions.Question").
		First(&game, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &game, nil
}

// GetActiveByUser возвращает незавершённую игру пользователя без вопросов
func (r *GameRepo) GetActiveByUser(userID uint) (*entity.Game, error) {
	var game entity.Game
	err := r.db.Where("user_id = ? AND finished_at IS NULL", userID).First(&game).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &game, nil
}

// SaveState атомарно сохраняет ход игры.
// - RowsAffected == 0 → игра уже завершена или уровень изменился (ErrGameStateChanged)
// - credit > 0 → баланс владельца увеличивается в той же транзакции, иначе ход откатывается
func (r *GameRepo) SaveState(game *entity.Game, expectedLevel int, question *entity.GameQuestion, credit int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entity.Game{}).
			Where("id = ? AND finished_at IS NULL AND current_level = ?", game.ID, expectedLevel).
			Updates(map[string]interface{}{
				"current_level":      game.CurrentLevel,
				"prize":              game.Prize,
				"is_failed":          game.IsFailed,
				"finished_at":        game.FinishedAt,
				"fifty_fifty_used":   game.FiftyFiftyUsed,
				"audience_help_used": game.AudienceHelpUsed,
				"friend_call_used":   game.FriendCallUsed,
				"updated_at":         game.UpdatedAt,
			})
		if result.Error != nil {
			return fmt.Errorf("save game #%d failed: %w", game.ID, result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: game #%d", repository.ErrGameStateChanged, game.ID)
		}

		if question != nil {
			err := tx.Model(&entity.GameQuestion{}).
				Where("id = ? AND game_id = ?", question.ID, game.ID).
				Update("help_hash", question.HelpHash).Error
			if err != nil {
				return fmt.Errorf("save help for game question #%d failed: %w", question.ID, err)
			}
		}

		if credit > 0 {
			result := tx.Model(&entity.User{}).
				Where("id = ?", game.UserID).
				UpdateColumn("balance", gorm.Expr("balance + ?", credit))
			if result.Error != nil {
				return fmt.Errorf("credit %d to user #%d failed: %w", credit, game.UserID, result.Error)
			}
			// Без зачисления игра не должна остаться завершённой, откатываем транзакцию
			if result.RowsAffected == 0 {
				return fmt.Errorf("credit %d to user #%d failed: %w", credit, game.UserID, apperrors.ErrNotFound)
			}
		}
		return nil
	})
}

// ListByUser возвращает игры пользователя с пагинацией, новые первыми
func (r *GameRepo) ListByUser(userID uint, limit, offset int) ([]entity.Game, int64, error) {
	var games []entity.Game
	var total int64

	query := r.db.Model(&entity.Game{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&games).Error
	if err != nil {
		return nil, 0, err
	}
	return games, total, nil
}
