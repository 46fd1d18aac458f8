package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/yourusername/millionaire-api/internal/domain/entity"
	"github.com/yourusername/millionaire-api/internal/domain/repository"
	"github.com/yourusername/millionaire-api/internal/handler/dto"
	apperrors "github.com/yourusername/millionaire-api/internal/pkg/errors"
)

const questionStatsCacheKey = "questions:stats"

// QuestionBankService выдаёт вопросы для новых игр и управляет банком вопросов
type QuestionBankService struct {
	questionRepo repository.QuestionRepository
	cacheRepo    repository.CacheRepository
	statsTTL     time.Duration
}

// NewQuestionBankService создает сервис банка вопросов. cacheRepo может быть nil.
func NewQuestionBankService(questionRepo repository.QuestionRepository, cacheRepo repository.CacheRepository, statsTTL time.Duration) *QuestionBankService {
	return &QuestionBankService{
		questionRepo: questionRepo,
		cacheRepo:    cacheRepo,
		statsTTL:     statsTTL,
	}
}

// SampleQuestions возвращает count разных вопросов уровней fromLevel..fromLevel+count-1,
// по одному случайному вопросу на уровень, упорядоченные по уровню.
func (s *QuestionBankService) SampleQuestions(count, fromLevel int) ([]entity.Question, error) {
	toLevel := fromLevel + count - 1
	if count <= 0 || fromLevel < entity.MinQuestionLevel || toLevel > entity.MaxQuestionLevel {
		return nil, fmt.Errorf("%w: invalid level range %d..%d", apperrors.ErrValidation, fromLevel, toLevel)
	}

	questions, err := s.questionRepo.GetRandomPerLevel(fromLevel, toLevel)
	if err != nil {
		log.Printf("[QuestionBank] Ошибка выборки вопросов уровней %d..%d: %v", fromLevel, toLevel, err)
		return nil, fmt.Errorf("failed to sample questions: %w", err)
	}

	if missing := missingLevels(questions, fromLevel, toLevel); len(missing) > 0 {
		log.Printf("[QuestionBank] Нет вопросов для уровней %v", missing)
		return nil, fmt.Errorf("%w: no questions for levels %v", apperrors.ErrInsufficientData, missing)
	}
	if len(questions) != count {
		return nil, fmt.Errorf("%w: expected %d questions, got %d", apperrors.ErrInsufficientData, count, len(questions))
	}
	return questions, nil
}

// BulkUpload проверяет и сохраняет пакет вопросов. Пакет сохраняется целиком или не сохраняется.
func (s *QuestionBankService) BulkUpload(questions []entity.Question) (int, error) {
	if len(questions) == 0 {
		return 0, fmt.Errorf("%w: no questions to upload", apperrors.ErrValidation)
	}
	for i := range questions {
		if err := questions[i].Validate(); err != nil {
			return 0, fmt.Errorf("question #%d: %w", i+1, err)
		}
	}

	if err := s.questionRepo.CreateBatch(questions); err != nil {
		log.Printf("[QuestionBank] Ошибка сохранения %d вопросов: %v", len(questions), err)
		return 0, fmt.Errorf("failed to save questions: %w", err)
	}

	if s.cacheRepo != nil {
		if err := s.cacheRepo.Delete(questionStatsCacheKey); err != nil {
			log.Printf("[QuestionBank] Не удалось сбросить кеш статистики: %v", err)
		}
	}

	log.Printf("[QuestionBank] Загружено %d вопросов", len(questions))
	return len(questions), nil
}

// Stats возвращает статистику банка вопросов по уровням
func (s *QuestionBankService) Stats() (*dto.QuestionPoolStatsResponse, error) {
	if s.cacheRepo != nil {
		var cached dto.QuestionPoolStatsResponse
		err := s.cacheRepo.GetJSON(questionStatsCacheKey, &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[QuestionBank] Ошибка чтения кеша статистики: %v", err)
		}
	}

	byLevel, err := s.questionRepo.CountByLevel()
	if err != nil {
		return nil, fmt.Errorf("failed to count questions: %w", err)
	}

	stats := &dto.QuestionPoolStatsResponse{
		ByLevel:       make(map[int]int64, entity.QuestionLevelCount),
		MissingLevels: []int{},
	}
	for level := entity.MinQuestionLevel; level <= entity.MaxQuestionLevel; level++ {
		count := byLevel[level]
		stats.ByLevel[level] = count
		stats.Total += count
		if count == 0 {
			stats.MissingLevels = append(stats.MissingLevels, level)
		}
	}
	stats.Playable = len(stats.MissingLevels) == 0

	if s.cacheRepo != nil {
		if err := s.cacheRepo.SetJSON(questionStatsCacheKey, stats, s.statsTTL); err != nil {
			log.Printf("[QuestionBank] Не удалось сохранить статистику в кеш: %v", err)
		}
	}
	return stats, nil
}

func missingLevels(questions []entity.Question, fromLevel, toLevel int) []int {
	present := make(map[int]bool, len(questions))
	for _, q := range questions {
		present[q.Level] = true
	}
	var missing []int
	for level := fromLevel; level <= toLevel; level++ {
		if !present[level] {
			missing = append(missing, level)
		}
	}
	return missing
}
