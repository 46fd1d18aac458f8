package entity

// Prizes — выигрыш за каждый уровень (индекс = уровень вопроса)
var Prizes = [QuestionLevelCount]int64{
	100, 200, 300, 500, 1000,
	2000, 4000, 8000, 16000, 32000,
	64000, 125000, 250000, 500000, 1000000,
}

// FireproofLevels — несгораемые уровни. Их выигрыш сохраняется при проигрыше.
var FireproofLevels = []int{4, 9, 14}

// PrizeForLevel возвращает выигрыш за уровень или 0 для уровня вне таблицы
func PrizeForLevel(level int) int64 {
	if level < MinQuestionLevel || level > MaxQuestionLevel {
		return 0
	}
	return Prizes[level]
}

// IsFireproof проверяет, является ли уровень несгораемым
func IsFireproof(level int) bool {
	for _, l := range FireproofLevels {
		if l == level {
			return true
		}
	}
	return false
}

// FallbackPrize возвращает несгораемую сумму для игрока, дошедшего до reachedLevel.
// Учитываются только пройденные уровни (строго меньше reachedLevel).
func FallbackPrize(reachedLevel int) int64 {
	best := -1
	for _, l := range FireproofLevels {
		if l < reachedLevel && l > best {
			best = l
		}
	}
	if best < 0 {
		return 0
	}
	return Prizes[best]
}
