package entity

import (
	"fmt"
	"time"
)

// scriptedRand — детерминированный Randomizer: Intn отдаёт заранее заданные значения
// (по модулю n, после исчерпания 0), Perm отдаёт perm или тождественную перестановку.
type scriptedRand struct {
	ints []int
	perm []int
}

func (r *scriptedRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

func (r *scriptedRand) Perm(n int) []int {
	if len(r.perm) == n {
		return append([]int(nil), r.perm...)
	}
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return p
}

func testQuestions() []Question {
	questions := make([]Question, QuestionLevelCount)
	for i := range questions {
		questions[i] = Question{
			ID:            uint(i + 1),
			Level:         i,
			Text:          fmt.Sprintf("Вопрос уровня %d", i),
			CorrectAnswer: fmt.Sprintf("correct-%d", i),
			WrongAnswers: StringArray{
				fmt.Sprintf("wrong-%d-1", i),
				fmt.Sprintf("wrong-%d-2", i),
				fmt.Sprintf("wrong-%d-3", i),
			},
		}
	}
	return questions
}

// newTestGame создаёт игру, в которой правильный ответ на каждый вопрос "a"
func newTestGame(now time.Time) *Game {
	game, err := NewGame(7, testQuestions(), &scriptedRand{}, now)
	if err != nil {
		panic(err)
	}
	game.ID = 1
	return game
}

// cloneGame делает глубокую копию игры для сравнения состояний
func cloneGame(g *Game) Game {
	c := *g
	if g.FinishedAt != nil {
		finishedAt := *g.FinishedAt
		c.FinishedAt = &finishedAt
	}
	c.GameQuestions = make([]GameQuestion, len(g.GameQuestions))
	for i, gq := range g.GameQuestions {
		h := HelpHash{FriendCall: gq.HelpHash.FriendCall}
		if gq.HelpHash.AudienceHelp != nil {
			h.AudienceHelp = copyDistribution(gq.HelpHash.AudienceHelp)
		}
		if gq.HelpHash.FiftyFifty != nil {
			h.FiftyFifty = append([]string(nil), gq.HelpHash.FiftyFifty...)
		}
		gq.HelpHash = h
		c.GameQuestions[i] = gq
	}
	return c
}
