package dto

import (
	"time"

	"github.com/yourusername/millionaire-api/internal/domain/entity"
	"github.com/yourusername/millionaire-api/internal/handler/helper"
)

// AnswerRequest — ответ игрока на текущий вопрос
type AnswerRequest struct {
	Letter string `json:"letter" binding:"required"`
}

// HelpRequest — запрос подсказки
type HelpRequest struct {
	HelpType string `json:"help_type" binding:"required"`
}

// GameQuestionResponse — вопрос игры без правильного ответа
type GameQuestionResponse struct {
	Level         int                   `json:"level"`
	Text          string                `json:"text"`
	Prize         int64                 `json:"prize"`
	Fireproof     bool                  `json:"fireproof"`
	Variants      []helper.AnswerOption `json:"variants"`
	Help          entity.HelpHash       `json:"help"`
	CorrectAnswer string                `json:"correct_answer,omitempty"` // буква правильного ответа, только для завершённой игры
}

// GameResponse — состояние игры для игрока
type GameResponse struct {
	ID             uint                  `json:"id"`
	Status         entity.GameStatus     `json:"status"`
	CurrentLevel   int                   `json:"current_level"`
	Prize          int64                 `json:"prize"`
	CashOutPrize   int64                 `json:"cash_out_prize"`
	FireproofPrize int64                 `json:"fireproof_prize"`
	Finished       bool                  `json:"finished"`
	TimeLeftSec    int64                 `json:"time_left_sec"`
	UsedHelps      []entity.HelpType     `json:"used_helps"`
	Question       *GameQuestionResponse `json:"question,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
	FinishedAt     *time.Time            `json:"finished_at,omitempty"`
}

// AnswerResponse — результат ответа
type AnswerResponse struct {
	Correct  bool          `json:"correct"`
	Credited int64         `json:"credited"`
	Game     *GameResponse `json:"game"`
}

// HintResponse — результат подсказки
type HintResponse struct {
	Hint *entity.HintResult `json:"hint"`
	Game *GameResponse      `json:"game"`
}

// GameStatusResponse — статус игры
type GameStatusResponse struct {
	ID     uint              `json:"id"`
	Status entity.GameStatus `json:"status"`
}

// GameSummaryResponse — строка истории игр
type GameSummaryResponse struct {
	ID           uint              `json:"id"`
	Status       entity.GameStatus `json:"status"`
	CurrentLevel int               `json:"current_level"`
	Prize        int64             `json:"prize"`
	UsedHelps    []entity.HelpType `json:"used_helps"`
	CreatedAt    time.Time         `json:"created_at"`
	FinishedAt   *time.Time        `json:"finished_at,omitempty"`
}

// NewGameResponse собирает ответ по игре на момент now
func NewGameResponse(game *entity.Game, now time.Time) *GameResponse {
	resp := &GameResponse{
		ID:             game.ID,
		Status:         game.Status(),
		CurrentLevel:   game.CurrentLevel,
		Prize:          game.Prize,
		FireproofPrize: entity.FallbackPrize(game.CurrentLevel),
		Finished:       game.Finished(),
		UsedHelps:      game.UsedHelps(),
		CreatedAt:      game.CreatedAt,
		FinishedAt:     game.FinishedAt,
	}

	if game.Finished() {
		// Для проигрыша и «забрать деньги» показываем правильный ответ на последний открытый вопрос
		if gq := game.QuestionAtLevel(game.CurrentLevel); gq != nil {
			resp.Question = newGameQuestionResponse(gq)
			resp.Question.CorrectAnswer = gq.CorrectAnswerKey()
		}
		return resp
	}

	resp.CashOutPrize = entity.PrizeForLevel(game.PreviousLevel())
	if left := entity.TimeLimit - now.Sub(game.CreatedAt); left > 0 {
		resp.TimeLeftSec = int64(left.Seconds())
	}
	if gq := game.CurrentGameQuestion(); gq != nil {
		resp.Question = newGameQuestionResponse(gq)
	}
	return resp
}

func newGameQuestionResponse(gq *entity.GameQuestion) *GameQuestionResponse {
	return &GameQuestionResponse{
		Level:     gq.Level(),
		Text:      gq.Text(),
		Prize:     entity.PrizeForLevel(gq.Level()),
		Fireproof: entity.IsFireproof(gq.Level()),
		Variants:  helper.ConvertVariants(gq),
		Help:      gq.HelpHash,
	}
}

// NewGameSummaryResponse преобразует снимок игры
func NewGameSummaryResponse(s entity.GameSnapshot) *GameSummaryResponse {
	return &GameSummaryResponse{
		ID:           s.ID,
		Status:       s.Status,
		CurrentLevel: s.CurrentLevel,
		Prize:        s.Prize,
		UsedHelps:    s.UsedHelps,
		CreatedAt:    s.CreatedAt,
		FinishedAt:   s.FinishedAt,
	}
}

// NewListGameSummaryResponse преобразует список снимков
func NewListGameSummaryResponse(snapshots []entity.GameSnapshot) []*GameSummaryResponse {
	out := make([]*GameSummaryResponse, len(snapshots))
	for i, s := range snapshots {
		out[i] = NewGameSummaryResponse(s)
	}
	return out
}
