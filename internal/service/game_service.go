package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/yourusername/millionaire-api/internal/domain/entity"
	"github.com/yourusername/millionaire-api/internal/domain/repository"
	apperrors "github.com/yourusername/millionaire-api/internal/pkg/errors"
)

const gameLockKeyFormat = "lock:game:%d"

// QuestionSampler выдаёт набор вопросов для новой игры
type QuestionSampler interface {
	SampleQuestions(count, fromLevel int) ([]entity.Question, error)
}

// AnswerResult — результат ответа на вопрос
type AnswerResult struct {
	Game     *entity.Game
	Correct  bool
	Credited int64
}

// HintOutcome — результат применения подсказки
type HintOutcome struct {
	Game *entity.Game
	Hint *entity.HintResult
}

// lockedRand делает *rand.Rand безопасным для конкурентного использования
type lockedRand struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func (r *lockedRand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.Intn(n)
}

func (r *lockedRand) Perm(n int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.Perm(n)
}

// GameService управляет жизненным циклом игр
type GameService struct {
	gameRepo repository.GameRepository
	sampler  QuestionSampler
	locker   repository.Locker
	lockTTL  time.Duration

	now func() time.Time
	rnd entity.Randomizer
}

// GameServiceOption настраивает GameService
type GameServiceOption func(*GameService)

// WithClock подменяет источник текущего времени
func WithClock(now func() time.Time) GameServiceOption {
	return func(s *GameService) { s.now = now }
}

// WithRandom подменяет источник случайности
func WithRandom(rnd entity.Randomizer) GameServiceOption {
	return func(s *GameService) { s.rnd = rnd }
}

// NewGameService создает игровой сервис. Если locker равен nil, ходы защищены
// только проверкой состояния при сохранении.
func NewGameService(
	gameRepo repository.GameRepository,
	sampler QuestionSampler,
	locker repository.Locker,
	lockTTL time.Duration,
	opts ...GameServiceOption,
) *GameService {
	s := &GameService{
		gameRepo: gameRepo,
		sampler:  sampler,
		locker:   locker,
		lockTTL:  lockTTL,
		now:      time.Now,
		rnd:      &lockedRand{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateGame начинает новую игру пользователя
func (s *GameService) CreateGame(ctx context.Context, userID uint) (*entity.Game, error) {
	active, err := s.gameRepo.GetActiveByUser(userID)
	if err == nil && active != nil {
		return nil, &ConcurrentGameError{ActiveGameID: active.ID}
	}
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		log.Printf("[GameService] Ошибка проверки активной игры пользователя %d: %v", userID, err)
		return nil, fmt.Errorf("failed to check active game: %w", err)
	}

	questions, err := s.sampler.SampleQuestions(entity.QuestionLevelCount, entity.MinQuestionLevel)
	if err != nil {
		return nil, err
	}

	game, err := entity.NewGame(userID, questions, s.rnd, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.gameRepo.Create(game); err != nil {
		if errors.Is(err, repository.ErrActiveGameExists) {
			// Параллельный запрос успел создать игру между проверкой и вставкой
			if active, getErr := s.gameRepo.GetActiveByUser(userID); getErr == nil && active != nil {
				return nil, &ConcurrentGameError{ActiveGameID: active.ID}
			}
			return nil, translateRepoError(err)
		}
		log.Printf("[GameService] Ошибка создания игры для пользователя %d: %v", userID, err)
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	log.Printf("[GameService] Пользователь %d начал игру #%d", userID, game.ID)
	return game, nil
}

// GetGame возвращает игру, принадлежащую пользователю
func (s *GameService) GetGame(ctx context.Context, userID, gameID uint) (*entity.Game, error) {
	game, err := s.gameRepo.GetByID(gameID)
	if err != nil {
		return nil, err
	}
	if game.UserID != userID {
		return nil, fmt.Errorf("%w: game #%d belongs to another user", apperrors.ErrForbidden, gameID)
	}
	return game, nil
}

// GetActiveGame возвращает незавершённую игру пользователя вместе с вопросами.
// GetActiveByUser отдаёт только строку игры, поэтому игра перечитывается по ID.
func (s *GameService) GetActiveGame(ctx context.Context, userID uint) (*entity.Game, error) {
	active, err := s.gameRepo.GetActiveByUser(userID)
	if err != nil {
		return nil, err
	}
	return s.gameRepo.GetByID(active.ID)
}

// GetStatus возвращает статус игры без проверки владельца
func (s *GameService) GetStatus(ctx context.Context, gameID uint) (entity.GameStatus, error) {
	game, err := s.gameRepo.GetByID(gameID)
	if err != nil {
		return "", err
	}
	return game.Status(), nil
}

// SubmitAnswer принимает ответ на текущий вопрос
func (s *GameService) SubmitAnswer(ctx context.Context, userID, gameID uint, letter string) (*AnswerResult, error) {
	var result *AnswerResult
	err := s.withGameLock(ctx, gameID, func() error {
		game, err := s.GetGame(ctx, userID, gameID)
		if err != nil {
			return err
		}

		expectedLevel := game.CurrentLevel
		correct, credit, err := game.AnswerCurrentQuestion(letter, s.now())
		if err != nil {
			return err
		}

		if err := s.gameRepo.SaveState(game, expectedLevel, nil, credit); err != nil {
			log.Printf("[GameService] Ошибка сохранения ответа в игре #%d: %v", gameID, err)
			return translateRepoError(err)
		}

		if game.Finished() {
			log.Printf("[GameService] Игра #%d завершена со статусом %s, выигрыш %d", game.ID, game.Status(), game.Prize)
		}
		result = &AnswerResult{Game: game, Correct: correct, Credited: credit}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ApplyHint применяет подсказку к текущему вопросу
func (s *GameService) ApplyHint(ctx context.Context, userID, gameID uint, helpType string) (*HintOutcome, error) {
	kind, ok := entity.ParseHelpType(helpType)
	if !ok {
		return nil, fmt.Errorf("%w: unknown help type %q", apperrors.ErrInvalidState, helpType)
	}

	var outcome *HintOutcome
	err := s.withGameLock(ctx, gameID, func() error {
		game, err := s.GetGame(ctx, userID, gameID)
		if err != nil {
			return err
		}

		expectedLevel := game.CurrentLevel
		q := game.CurrentGameQuestion()
		alreadyStored := q != nil && q.HelpHash.Has(kind)

		hint, err := game.UseHelp(kind, s.rnd, s.now())
		if err != nil {
			return err
		}

		if !alreadyStored {
			if err := s.gameRepo.SaveState(game, expectedLevel, game.CurrentGameQuestion(), 0); err != nil {
				log.Printf("[GameService] Ошибка сохранения подсказки %s в игре #%d: %v", kind, gameID, err)
				return translateRepoError(err)
			}
		}

		outcome = &HintOutcome{Game: game, Hint: hint}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return outcome, nil
}

// CashOut завершает игру с выигрышем за последний пройденный вопрос
func (s *GameService) CashOut(ctx context.Context, userID, gameID uint) (*AnswerResult, error) {
	var result *AnswerResult
	err := s.withGameLock(ctx, gameID, func() error {
		game, err := s.GetGame(ctx, userID, gameID)
		if err != nil {
			return err
		}

		expectedLevel := game.CurrentLevel
		credit, err := game.TakeMoney(s.now())
		if err != nil {
			return err
		}

		if err := s.gameRepo.SaveState(game, expectedLevel, nil, credit); err != nil {
			log.Printf("[GameService] Ошибка сохранения выигрыша в игре #%d: %v", gameID, err)
			return translateRepoError(err)
		}

		log.Printf("[GameService] Игра #%d завершена со статусом %s, выигрыш %d", game.ID, game.Status(), credit)
		result = &AnswerResult{Game: game, Credited: credit}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListUserGames возвращает снимки игр пользователя, новые первыми
func (s *GameService) ListUserGames(userID uint, page, pageSize int) ([]entity.GameSnapshot, int64, error) {
	page, pageSize = normalizePage(page, pageSize)

	games, total, err := s.gameRepo.ListByUser(userID, pageSize, (page-1)*pageSize)
	if err != nil {
		log.Printf("[GameService] Ошибка получения истории игр пользователя %d: %v", userID, err)
		return nil, 0, err
	}

	snapshots := make([]entity.GameSnapshot, len(games))
	for i := range games {
		snapshots[i] = games[i].Snapshot()
	}
	return snapshots, total, nil
}

// Now возвращает текущее время сервиса
func (s *GameService) Now() time.Time {
	return s.now()
}

func (s *GameService) withGameLock(ctx context.Context, gameID uint, fn func() error) error {
	if s.locker == nil {
		return fn()
	}

	lock, err := s.locker.Acquire(ctx, fmt.Sprintf(gameLockKeyFormat, gameID), s.lockTTL)
	if err != nil {
		return translateRepoError(err)
	}
	defer func() {
		if err := lock.Release(context.Background()); err != nil {
			log.Printf("[GameService] Ошибка освобождения блокировки игры #%d: %v", gameID, err)
		}
	}()

	return fn()
}

// normalizePage приводит параметры пагинации к допустимым значениям
func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	} else if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}
