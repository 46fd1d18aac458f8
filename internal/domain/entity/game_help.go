package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Randomizer — источник случайности для перемешивания вариантов и подсказок.
// *rand.Rand удовлетворяет интерфейсу; в тестах подставляется детерминированный источник.
type Randomizer interface {
	Intn(n int) int
	Perm(n int) []int
}

// AnswerKeys — буквы вариантов ответа в порядке отображения
var AnswerKeys = []string{"a", "b", "c", "d"}

// HelpType — вид подсказки
type HelpType string

// Виды подсказок
const (
	HelpFiftyFifty   HelpType = "fifty_fifty"
	HelpAudience     HelpType = "audience_help"
	HelpFriendCall   HelpType = "friend_call"
	friendCallPhrase          = "считает, что это вариант"
)

// HelpTypes — все доступные подсказки
var HelpTypes = []HelpType{HelpFiftyFifty, HelpAudience, HelpFriendCall}

// Вероятности (в процентах) того, что подсказка укажет на правильный ответ
const (
	audienceAccuracyPercent   = 85
	friendCallAccuracyPercent = 80
)

var friendNames = []string{
	"Василий Петрович",
	"Анна Сергеевна",
	"Дядя Миша",
	"Ирина",
	"Сосед Семён",
	"Бабушка Зина",
}

// ParseHelpType проверяет строку и возвращает вид подсказки
func ParseHelpType(s string) (HelpType, bool) {
	for _, t := range HelpTypes {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// HelpHash хранит результаты применённых к вопросу подсказок (JSONB)
type HelpHash struct {
	AudienceHelp map[string]int `json:"audience_help,omitempty"`
	FiftyFifty   []string       `json:"fifty_fifty,omitempty"`
	FriendCall   string         `json:"friend_call,omitempty"`
}

// Has проверяет, сохранён ли результат подсказки
func (h HelpHash) Has(kind HelpType) bool {
	switch kind {
	case HelpAudience:
		return h.AudienceHelp != nil
	case HelpFiftyFifty:
		return h.FiftyFifty != nil
	case HelpFriendCall:
		return h.FriendCall != ""
	}
	return false
}

// Result возвращает сохранённый результат подсказки
func (h HelpHash) Result(kind HelpType) *HintResult {
	if !h.Has(kind) {
		return nil
	}
	res := &HintResult{Kind: kind}
	switch kind {
	case HelpAudience:
		res.AudienceHelp = copyDistribution(h.AudienceHelp)
	case HelpFiftyFifty:
		res.FiftyFifty = append([]string(nil), h.FiftyFifty...)
	case HelpFriendCall:
		res.FriendCall = h.FriendCall
	}
	return res
}

// Scan реализует sql.Scanner для HelpHash
func (h *HelpHash) Scan(value interface{}) error {
	if value == nil {
		*h = HelpHash{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to unmarshal help hash: expected []byte")
	}
	if len(bytes) == 0 {
		*h = HelpHash{}
		return nil
	}
	return json.Unmarshal(bytes, h)
}

// Value реализует driver.Valuer для HelpHash
func (h HelpHash) Value() (driver.Value, error) {
	return json.Marshal(h)
}

// HintResult — результат подсказки, отдаваемый клиенту
type HintResult struct {
	Kind         HelpType       `json:"help_type"`
	AudienceHelp map[string]int `json:"audience_help,omitempty"`
	FiftyFifty   []string       `json:"fifty_fifty,omitempty"`
	FriendCall   string         `json:"friend_call,omitempty"`
}

// audienceDistribution распределяет 100% голосов зала между вариантами.
// Голоса получают только варианты из allowed, остальные получают 0.
func audienceDistribution(allowed []string, correctKey string, rnd Randomizer) map[string]int {
	res := make(map[string]int, len(AnswerKeys))
	for _, k := range AnswerKeys {
		res[k] = 0
	}

	favored := correctKey
	if rnd.Intn(100) >= audienceAccuracyPercent {
		if others := without(allowed, correctKey); len(others) > 0 {
			favored = others[rnd.Intn(len(others))]
		}
	}

	rest := without(allowed, favored)
	if len(rest) == 0 {
		res[favored] = 100
		return res
	}

	share := 40 + rnd.Intn(41)
	res[favored] = share
	remaining := 100 - share

	weights := make([]int, len(rest))
	total := 0
	for i := range rest {
		weights[i] = 1 + rnd.Intn(100)
		total += weights[i]
	}

	given := 0
	for i, k := range rest {
		if i == len(rest)-1 {
			res[k] = remaining - given
			break
		}
		v := remaining * weights[i] / total
		res[k] = v
		given += v
	}
	return res
}

// fiftyFifty оставляет правильный вариант и один случайный неправильный
func fiftyFifty(correctKey string, rnd Randomizer) []string {
	wrong := without(AnswerKeys, correctKey)
	keep := []string{correctKey, wrong[rnd.Intn(len(wrong))]}
	sort.Strings(keep)
	return keep
}

// friendCall формирует ответ друга. Друг чаще всего прав, но не всегда.
func friendCall(allowed []string, correctKey string, rnd Randomizer) string {
	name := friendNames[rnd.Intn(len(friendNames))]
	key := correctKey
	if rnd.Intn(100) >= friendCallAccuracyPercent {
		if others := without(allowed, correctKey); len(others) > 0 {
			key = others[rnd.Intn(len(others))]
		}
	}
	return fmt.Sprintf("%s %s %s", name, friendCallPhrase, strings.ToUpper(key))
}

func without(keys []string, exclude string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if k != exclude {
			out = append(out, k)
		}
	}
	return out
}

func copyDistribution(src map[string]int) map[string]int {
	dst := make(map[string]int, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
