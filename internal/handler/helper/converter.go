package helper

import (
	"github.com/yourusername/millionaire-api/internal/domain/entity"
)

// AnswerOption представляет вариант ответа для фронтенда
type AnswerOption struct {
	Key     string `json:"key"`
	Text    string `json:"text"`
	Removed bool   `json:"removed,omitempty"` // убран подсказкой «50/50»
}

// ConvertVariants возвращает варианты игрового вопроса в порядке a, b, c, d.
// Варианты, убранные «50/50», отдаются без текста.
func ConvertVariants(gq *entity.GameQuestion) []AnswerOption {
	variants := gq.Variants()

	var kept map[string]bool
	if gq.HelpHash.FiftyFifty != nil {
		kept = make(map[string]bool, len(gq.HelpHash.FiftyFifty))
		for _, k := range gq.HelpHash.FiftyFifty {
			kept[k] = true
		}
	}

	options := make([]AnswerOption, 0, len(entity.AnswerKeys))
	for _, key := range entity.AnswerKeys {
		opt := AnswerOption{Key: key, Text: variants[key]}
		if kept != nil && !kept[key] {
			opt.Text = ""
			opt.Removed = true
		}
		if opt.Text == "" && !opt.Removed {
			opt.Text = "(пустой вариант)"
		}
		options = append(options, opt)
	}
	return options
}
