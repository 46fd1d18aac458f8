package dto

import (
	"github.com/yourusername/millionaire-api/internal/domain/entity"
)

// CreateQuestionRequest — вопрос для загрузки в банк
type CreateQuestionRequest struct {
	Level         int      `json:"level" binding:"min=0,max=14"`
	Text          string   `json:"text" binding:"required"`
	CorrectAnswer string   `json:"correct_answer" binding:"required"`
	WrongAnswers  []string `json:"wrong_answers" binding:"required,len=3"`
}

// BulkUploadRequest — пакетная загрузка вопросов
type BulkUploadRequest struct {
	Questions []CreateQuestionRequest `json:"questions" binding:"required,min=1,dive"`
}

// BulkUploadResponse — результат загрузки
type BulkUploadResponse struct {
	Total   int         `json:"total"`
	ByLevel map[int]int `json:"by_level"`
}

// QuestionPoolStatsResponse — статистика банка вопросов
type QuestionPoolStatsResponse struct {
	Total         int64         `json:"total"`
	ByLevel       map[int]int64 `json:"by_level"`
	MissingLevels []int         `json:"missing_levels"`
	Playable      bool          `json:"playable"` // на каждом уровне есть хотя бы один вопрос
}

// ToEntities преобразует запрос в вопросы
func (r *BulkUploadRequest) ToEntities() []entity.Question {
	questions := make([]entity.Question, len(r.Questions))
	for i, q := range r.Questions {
		questions[i] = entity.Question{
			Level:         q.Level,
			Text:          q.Text,
			CorrectAnswer: q.CorrectAnswer,
			WrongAnswers:  entity.StringArray(q.WrongAnswers),
		}
	}
	return questions
}
