package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/yourusername/millionaire-api/internal/pkg/errors"
)

// Уровни вопросов: 0..14, по одному вопросу каждого уровня в игре
const (
	MinQuestionLevel   = 0
	MaxQuestionLevel   = 14
	QuestionLevelCount = MaxQuestionLevel - MinQuestionLevel + 1

	// WrongAnswersCount — количество неправильных вариантов у вопроса
	WrongAnswersCount = 3
)

// StringArray - пользовательский тип для работы с JSONB
type StringArray []string

// Scan реализует интерфейс sql.Scanner для StringArray
// Используется GORM для чтения JSONB данных из базы
func (o *StringArray) Scan(value interface{}) error {
	if value == nil {
		*o = StringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	if len(bytes) == 0 {
		*o = StringArray{}
		return nil
	}

	return json.Unmarshal(bytes, o)
}

// Value реализует интерфейс driver.Valuer для StringArray
func (o StringArray) Value() (driver.Value, error) {
	if len(o) == 0 {
		return []byte("[]"), nil // Пустой JSON массив вместо null
	}
	return json.Marshal(o)
}

// Question представляет вопрос из банка вопросов.
// Во время игры вопрос не изменяется.
type Question struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	Level         int         `gorm:"not null;index" json:"level"`
	Text          string      `gorm:"size:500;not null" json:"text"`
	CorrectAnswer string      `gorm:"size:255;not null" json:"-"` // Скрыто от клиента
	WrongAnswers  StringArray `gorm:"type:jsonb;not null" json:"-"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}

// Answer возвращает текст варианта по номеру 1..4. Номер 1 соответствует правильному ответу
func (q *Question) Answer(idx int) string {
	if idx == 1 {
		return q.CorrectAnswer
	}
	if idx >= 2 && idx-2 < len(q.WrongAnswers) {
		return q.WrongAnswers[idx-2]
	}
	return ""
}

// Validate проверяет вопрос перед загрузкой в банк
func (q *Question) Validate() error {
	if q.Level < MinQuestionLevel || q.Level > MaxQuestionLevel {
		return fmt.Errorf("%w: level %d out of range %d..%d", apperrors.ErrValidation, q.Level, MinQuestionLevel, MaxQuestionLevel)
	}
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("%w: question text is empty", apperrors.ErrValidation)
	}
	if strings.TrimSpace(q.CorrectAnswer) == "" {
		return fmt.Errorf("%w: correct answer is empty", apperrors.ErrValidation)
	}
	if len(q.WrongAnswers) != WrongAnswersCount {
		return fmt.Errorf("%w: expected %d wrong answers, got %d", apperrors.ErrValidation, WrongAnswersCount, len(q.WrongAnswers))
	}

	seen := map[string]bool{q.CorrectAnswer: true}
	for _, a := range q.WrongAnswers {
		if strings.TrimSpace(a) == "" {
			return fmt.Errorf("%w: wrong answer is empty", apperrors.ErrValidation)
		}
		if seen[a] {
			return fmt.Errorf("%w: duplicate answer %q", apperrors.ErrValidation, a)
		}
		seen[a] = true
	}
	return nil
}
