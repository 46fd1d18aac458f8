package entity

import (
	"strings"
	"time"
)

// GameQuestion привязывает вопрос из банка к конкретной игре.
// Поля A..D хранят номер варианта вопроса (1..4, правильный имеет номер 1) для каждой буквы.
// Раскладка фиксируется при создании и больше не меняется.
type GameQuestion struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	GameID     uint      `gorm:"not null;index" json:"game_id"`
	QuestionID uint      `gorm:"not null;index" json:"question_id"`
	Question   *Question `gorm:"foreignKey:QuestionID" json:"-"`
	A          int       `gorm:"column:a;not null" json:"-"`
	B          int       `gorm:"column:b;not null" json:"-"`
	C          int       `gorm:"column:c;not null" json:"-"`
	D          int       `gorm:"column:d;not null" json:"-"`
	HelpHash   HelpHash  `gorm:"type:jsonb;not null;default:'{}'" json:"help_hash"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (GameQuestion) TableName() string {
	return "game_questions"
}

// BuildGameQuestion создаёт игровой вопрос со случайной раскладкой вариантов
func BuildGameQuestion(question *Question, rnd Randomizer) GameQuestion {
	perm := rnd.Perm(4)
	return GameQuestion{
		QuestionID: question.ID,
		Question:   question,
		A:          perm[0] + 1,
		B:          perm[1] + 1,
		C:          perm[2] + 1,
		D:          perm[3] + 1,
	}
}

// Text возвращает текст вопроса
func (gq *GameQuestion) Text() string {
	if gq.Question == nil {
		return ""
	}
	return gq.Question.Text
}

// Level возвращает уровень вопроса
func (gq *GameQuestion) Level() int {
	if gq.Question == nil {
		return -1
	}
	return gq.Question.Level
}

func (gq *GameQuestion) slots() map[string]int {
	return map[string]int{"a": gq.A, "b": gq.B, "c": gq.C, "d": gq.D}
}

// Variants возвращает тексты вариантов по буквам
func (gq *GameQuestion) Variants() map[string]string {
	res := make(map[string]string, len(AnswerKeys))
	for key, idx := range gq.slots() {
		if gq.Question != nil {
			res[key] = gq.Question.Answer(idx)
		}
	}
	return res
}

// AnswerCorrect проверяет, является ли вариант с буквой letter правильным
func (gq *GameQuestion) AnswerCorrect(letter string) bool {
	idx, ok := gq.slots()[strings.ToLower(strings.TrimSpace(letter))]
	return ok && idx == 1
}

// CorrectAnswerKey возвращает букву правильного варианта
func (gq *GameQuestion) CorrectAnswerKey() string {
	for _, key := range AnswerKeys {
		if gq.slots()[key] == 1 {
			return key
		}
	}
	return ""
}

// CorrectAnswer возвращает текст правильного ответа
func (gq *GameQuestion) CorrectAnswer() string {
	if gq.Question == nil {
		return ""
	}
	return gq.Question.CorrectAnswer
}

// keysToUseInHelp — варианты, оставшиеся после «50/50», либо все четыре
func (gq *GameQuestion) keysToUseInHelp() []string {
	if gq.HelpHash.FiftyFifty != nil {
		return gq.HelpHash.FiftyFifty
	}
	return AnswerKeys
}

// AddAudienceHelp применяет «помощь зала». Повторный вызов возвращает сохранённый результат.
func (gq *GameQuestion) AddAudienceHelp(rnd Randomizer) map[string]int {
	if gq.HelpHash.AudienceHelp == nil {
		gq.HelpHash.AudienceHelp = audienceDistribution(gq.keysToUseInHelp(), gq.CorrectAnswerKey(), rnd)
	}
	return copyDistribution(gq.HelpHash.AudienceHelp)
}

// AddFiftyFifty убирает два неправильных варианта
func (gq *GameQuestion) AddFiftyFifty(rnd Randomizer) []string {
	if gq.HelpHash.FiftyFifty == nil {
		gq.HelpHash.FiftyFifty = fiftyFifty(gq.CorrectAnswerKey(), rnd)
	}
	return append([]string(nil), gq.HelpHash.FiftyFifty...)
}

// AddFriendCall применяет «звонок другу»
func (gq *GameQuestion) AddFriendCall(rnd Randomizer) string {
	if gq.HelpHash.FriendCall == "" {
		gq.HelpHash.FriendCall = friendCall(gq.keysToUseInHelp(), gq.CorrectAnswerKey(), rnd)
	}
	return gq.HelpHash.FriendCall
}

// ApplyHelp применяет подсказку указанного вида и возвращает её результат
func (gq *GameQuestion) ApplyHelp(kind HelpType, rnd Randomizer) *HintResult {
	switch kind {
	case HelpAudience:
		gq.AddAudienceHelp(rnd)
	case HelpFiftyFifty:
		gq.AddFiftyFifty(rnd)
	case HelpFriendCall:
		gq.AddFriendCall(rnd)
	default:
		return nil
	}
	return gq.HelpHash.Result(kind)
}
