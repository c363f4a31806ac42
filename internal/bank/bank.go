package bank

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/samber/lo"

	"lifeline-backend-V1.0/internal/model"
)

// ErrEmptyBank means a difficulty level has no builtin questions. This is
// a content bug and halts startup.
var ErrEmptyBank = errors.New("question bank has no questions for a difficulty level")

// Bank is the static, read-only question set shared across sessions.
type Bank struct {
	questions    []model.Question
	byDifficulty map[model.Difficulty][]model.Question
}

// New builds the bank from the builtin content and verifies the startup
// invariant that every difficulty level is non-empty.
func New() (*Bank, error) {
	return FromQuestions(builtinQuestions())
}

// FromQuestions builds a bank from an explicit question set.
func FromQuestions(questions []model.Question) (*Bank, error) {
	b := &Bank{
		questions:    questions,
		byDifficulty: make(map[model.Difficulty][]model.Question),
	}
	for _, q := range questions {
		b.byDifficulty[q.Difficulty] = append(b.byDifficulty[q.Difficulty], q)
	}
	for d := model.MinDifficulty; d <= model.MaxDifficulty; d++ {
		if len(b.byDifficulty[d]) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrEmptyBank, d)
		}
	}
	return b, nil
}

// Size returns the number of questions in the bank.
func (b *Bank) Size() int { return len(b.questions) }

// Topics returns the distinct topics present in the bank.
func (b *Bank) Topics() []string {
	return lo.Uniq(lo.Map(b.questions, func(q model.Question, _ int) string {
		return q.Topic
	}))
}

// Pick draws a random question at the requested difficulty, preferring
// the given topic and skipping already-asked question IDs. Constraints
// are widened rather than failing: first the topic filter is dropped,
// then the nearest difficulty with unused questions is taken, and as a
// last resort an already-asked question is repeated.
func (b *Bank) Pick(rng *rand.Rand, difficulty model.Difficulty, topic string, asked map[string]bool) model.Question {
	difficulty = difficulty.Clamp()

	if topic != "" {
		if q, ok := b.pickFrom(rng, b.byDifficulty[difficulty], topic, asked); ok {
			return q
		}
	}
	if q, ok := b.pickFrom(rng, b.byDifficulty[difficulty], "", asked); ok {
		return q
	}
	for _, d := range nearestLevels(difficulty) {
		if q, ok := b.pickFrom(rng, b.byDifficulty[d], "", asked); ok {
			return q
		}
	}
	// Bank exhausted for this session; repeats are allowed from here.
	pool := b.byDifficulty[difficulty]
	return pool[rng.Intn(len(pool))]
}

func (b *Bank) pickFrom(rng *rand.Rand, pool []model.Question, topic string, asked map[string]bool) (model.Question, bool) {
	candidates := lo.Filter(pool, func(q model.Question, _ int) bool {
		if asked[q.ID] {
			return false
		}
		return topic == "" || q.Topic == topic
	})
	if len(candidates) == 0 {
		return model.Question{}, false
	}
	return candidates[rng.Intn(len(candidates))], true
}

// nearestLevels lists the other difficulty levels ordered by distance
// from d, closer-and-easier first on ties.
func nearestLevels(d model.Difficulty) []model.Difficulty {
	var out []model.Difficulty
	for dist := 1; dist <= int(model.MaxDifficulty)-int(model.MinDifficulty); dist++ {
		if lower := d - model.Difficulty(dist); lower >= model.MinDifficulty {
			out = append(out, lower)
		}
		if upper := d + model.Difficulty(dist); upper <= model.MaxDifficulty {
			out = append(out, upper)
		}
	}
	return out
}
