package entity

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/yourusername/millionaire-api/internal/pkg/errors"
)

// TimeLimit — время на всю игру. Ответ после истечения лимита завершает игру по таймауту.
const TimeLimit = time.Hour

// GameStatus — производный статус игры
type GameStatus string

// Статусы игры
const (
	GameStatusInProgress GameStatus = "in_progress"
	GameStatusWon        GameStatus = "won"
	GameStatusFail       GameStatus = "fail"
	GameStatusTimeout    GameStatus = "timeout"
	GameStatusMoney      GameStatus = "money"
)

// Game — одна попытка пользователя пройти 15 вопросов.
// CurrentLevel равен количеству правильных ответов и указывает на текущий вопрос.
// После установки FinishedAt поля CurrentLevel, Prize и IsFailed не меняются.
type Game struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	UserID           uint           `gorm:"not null;index" json:"user_id"`
	CurrentLevel     int            `gorm:"not null;default:0" json:"current_level"`
	Prize            int64          `gorm:"not null;default:0" json:"prize"`
	IsFailed         bool           `gorm:"not null;default:false" json:"is_failed"`
	FinishedAt       *time.Time     `gorm:"type:timestamptz" json:"finished_at,omitempty"`
	FiftyFiftyUsed   bool           `gorm:"not null;default:false" json:"fifty_fifty_used"`
	AudienceHelpUsed bool           `gorm:"not null;default:false" json:"audience_help_used"`
	FriendCallUsed   bool           `gorm:"not null;default:false" json:"friend_call_used"`
	GameQuestions    []GameQuestion `gorm:"foreignKey:GameID" json:"-"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Game) TableName() string {
	return "games"
}

// NewGame создаёт игру из 15 вопросов уровней 0..14 (questions[i].Level == i)
func NewGame(userID uint, questions []Question, rnd Randomizer, now time.Time) (*Game, error) {
	if len(questions) != QuestionLevelCount {
		return nil, fmt.Errorf("%w: expected %d questions, got %d", apperrors.ErrInsufficientData, QuestionLevelCount, len(questions))
	}

	game := &Game{
		UserID:        userID,
		GameQuestions: make([]GameQuestion, 0, QuestionLevelCount),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for i := range questions {
		if questions[i].Level != MinQuestionLevel+i {
			return nil, fmt.Errorf("%w: question #%d has level %d, expected %d", apperrors.ErrInsufficientData, questions[i].ID, questions[i].Level, MinQuestionLevel+i)
		}
		game.GameQuestions = append(game.GameQuestions, BuildGameQuestion(&questions[i], rnd))
	}
	return game, nil
}

// Finished проверяет, завершена ли игра
func (g *Game) Finished() bool {
	return g.FinishedAt != nil
}

// Status возвращает статус игры. Для завершённой игры статус зависит только от сохранённых полей:
// проигрыш после истечения TimeLimit считается таймаутом.
func (g *Game) Status() GameStatus {
	if !g.Finished() {
		return GameStatusInProgress
	}

	if g.IsFailed {
		if g.FinishedAt.Sub(g.CreatedAt) > TimeLimit {
			return GameStatusTimeout
		}
		return GameStatusFail
	}

	if g.CurrentLevel > MaxQuestionLevel {
		return GameStatusWon
	}
	return GameStatusMoney
}

// TimedOut проверяет, истекло ли время незавершённой игры к моменту now
func (g *Game) TimedOut(now time.Time) bool {
	return !g.Finished() && now.Sub(g.CreatedAt) > TimeLimit
}

// QuestionAtLevel возвращает игровой вопрос заданного уровня
func (g *Game) QuestionAtLevel(level int) *GameQuestion {
	for i := range g.GameQuestions {
		if g.GameQuestions[i].Level() == level {
			return &g.GameQuestions[i]
		}
	}
	return nil
}

// CurrentGameQuestion возвращает текущий вопрос или nil для завершённой игры
func (g *Game) CurrentGameQuestion() *GameQuestion {
	if g.Finished() {
		return nil
	}
	return g.QuestionAtLevel(g.CurrentLevel)
}

// PreviousLevel возвращает уровень последнего пройденного вопроса (-1, если таких нет)
func (g *Game) PreviousLevel() int {
	return g.CurrentLevel - 1
}

// PreviousGameQuestion возвращает последний пройденный вопрос
func (g *Game) PreviousGameQuestion() *GameQuestion {
	if g.CurrentLevel == 0 {
		return nil
	}
	return g.QuestionAtLevel(g.PreviousLevel())
}

// AnswerCurrentQuestion принимает ответ на текущий вопрос.
// Возвращает признак правильного ответа и сумму, которую нужно зачислить на баланс
// (ненулевую только если игра завершилась этим ответом).
func (g *Game) AnswerCurrentQuestion(letter string, now time.Time) (bool, int64, error) {
	if g.Finished() {
		return false, 0, fmt.Errorf("%w: game #%d is already finished", apperrors.ErrInvalidState, g.ID)
	}

	key, ok := normalizeAnswerKey(letter)
	if !ok {
		return false, 0, fmt.Errorf("%w: unknown answer %q", apperrors.ErrInvalidState, letter)
	}

	question := g.CurrentGameQuestion()
	if question == nil {
		return false, 0, fmt.Errorf("%w: game #%d has no question for level %d", apperrors.ErrInvalidState, g.ID, g.CurrentLevel)
	}

	if g.TimedOut(now) {
		return false, g.finish(FallbackPrize(g.CurrentLevel), true, now), nil
	}

	if !question.AnswerCorrect(key) {
		return false, g.finish(FallbackPrize(g.CurrentLevel), true, now), nil
	}

	g.CurrentLevel++
	if g.CurrentLevel > MaxQuestionLevel {
		return true, g.finish(Prizes[MaxQuestionLevel], false, now), nil
	}

	// Пока игра идёт, Prize показывает гарантированную (несгораемую) сумму
	g.Prize = FallbackPrize(g.CurrentLevel)
	g.UpdatedAt = now
	return true, 0, nil
}

// TakeMoney завершает игру с выигрышем за последний пройденный уровень.
// Возвращает сумму для зачисления на баланс.
func (g *Game) TakeMoney(now time.Time) (int64, error) {
	if g.Finished() {
		return 0, fmt.Errorf("%w: game #%d is already finished", apperrors.ErrInvalidState, g.ID)
	}

	if g.TimedOut(now) {
		return g.finish(FallbackPrize(g.CurrentLevel), true, now), nil
	}

	if g.CurrentLevel == 0 {
		return 0, fmt.Errorf("%w: nothing to take before the first correct answer", apperrors.ErrInvalidState)
	}

	return g.finish(Prizes[g.PreviousLevel()], false, now), nil
}

// UseHelp применяет подсказку к текущему вопросу. Каждая подсказка доступна один раз за игру;
// повторный запрос на том же вопросе возвращает сохранённый результат без изменений.
func (g *Game) UseHelp(kind HelpType, rnd Randomizer, now time.Time) (*HintResult, error) {
	if g.Finished() {
		return nil, fmt.Errorf("%w: game #%d is already finished", apperrors.ErrInvalidState, g.ID)
	}
	if g.TimedOut(now) {
		return nil, fmt.Errorf("%w: time for game #%d is over", apperrors.ErrInvalidState, g.ID)
	}
	if _, ok := ParseHelpType(string(kind)); !ok {
		return nil, fmt.Errorf("%w: unknown help type %q", apperrors.ErrInvalidState, kind)
	}

	question := g.CurrentGameQuestion()
	if question == nil {
		return nil, fmt.Errorf("%w: game #%d has no question for level %d", apperrors.ErrInvalidState, g.ID, g.CurrentLevel)
	}

	if stored := question.HelpHash.Result(kind); stored != nil {
		return stored, nil
	}
	if g.HelpUsed(kind) {
		return nil, fmt.Errorf("%w: %s has already been used", apperrors.ErrInvalidState, kind)
	}

	res := question.ApplyHelp(kind, rnd)
	g.setHelpUsed(kind)
	g.UpdatedAt = now
	return res, nil
}

// HelpUsed проверяет, использована ли подсказка в этой игре
func (g *Game) HelpUsed(kind HelpType) bool {
	switch kind {
	case HelpFiftyFifty:
		return g.FiftyFiftyUsed
	case HelpAudience:
		return g.AudienceHelpUsed
	case HelpFriendCall:
		return g.FriendCallUsed
	}
	return false
}

// UsedHelps возвращает список использованных подсказок
func (g *Game) UsedHelps() []HelpType {
	used := make([]HelpType, 0, len(HelpTypes))
	for _, t := range HelpTypes {
		if g.HelpUsed(t) {
			used = append(used, t)
		}
	}
	return used
}

func (g *Game) setHelpUsed(kind HelpType) {
	switch kind {
	case HelpFiftyFifty:
		g.FiftyFiftyUsed = true
	case HelpAudience:
		g.AudienceHelpUsed = true
	case HelpFriendCall:
		g.FriendCallUsed = true
	}
}

func (g *Game) finish(prize int64, failed bool, now time.Time) int64 {
	finishedAt := now
	g.FinishedAt = &finishedAt
	g.IsFailed = failed
	g.Prize = prize
	g.UpdatedAt = now
	return prize
}

func normalizeAnswerKey(letter string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(letter))
	for _, k := range AnswerKeys {
		if k == key {
			return key, true
		}
	}
	return "", false
}

// GameSnapshot — неизменяемое представление игры для истории и профиля пользователя
type GameSnapshot struct {
	ID           uint       `json:"id"`
	UserID       uint       `json:"user_id"`
	CurrentLevel int        `json:"current_level"`
	Prize        int64      `json:"prize"`
	Status       GameStatus `json:"status"`
	UsedHelps    []HelpType `json:"used_helps"`
	CreatedAt    time.Time  `json:"created_at"`
	FinishedAt   *time.Time `json:"finished_at,omitempty"`
}

// Snapshot возвращает копию состояния игры
func (g *Game) Snapshot() GameSnapshot {
	s := GameSnapshot{
		ID:           g.ID,
		UserID:       g.UserID,
		CurrentLevel: g.CurrentLevel,
		Prize:        g.Prize,
		Status:       g.Status(),
		UsedHelps:    g.UsedHelps(),
		CreatedAt:    g.CreatedAt,
	}
	if g.FinishedAt != nil {
		finishedAt := *g.FinishedAt
		s.FinishedAt = &finishedAt
	}
	return s
}
