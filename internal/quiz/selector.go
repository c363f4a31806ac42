package quiz

import (
	"sort"

	"github.com/samber/lo"

	"lifeline-backend-V1.0/internal/model"
)

// Params are the adaptive-difficulty tuning knobs. They are configuration
// rather than constants; DefaultParams mirrors the builtin game.
type Params struct {
	RoundLength        int
	Baseline           model.Difficulty
	StreakLength       int
	HistoryWindow      int
	WeakTopicThreshold float64
}

func DefaultParams() Params {
	return Params{
		RoundLength:        10,
		Baseline:           model.Medium,
		StreakLength:       2,
		HistoryWindow:      3,
		WeakTopicThreshold: 0.5,
	}
}

// NextDifficulty computes the difficulty for the upcoming question from
// the answer history. Pure function: identical history and current level
// always yield the same result.
//
// Rule: StreakLength consecutive correct answers raise the level by one
// (capped), the same streak of incorrect answers lowers it by one
// (floored), anything else holds.
func NextDifficulty(history []model.AnswerRecord, current model.Difficulty, p Params) model.Difficulty {
	if len(history) == 0 {
		return p.Baseline.Clamp()
	}
	if len(history) < p.StreakLength {
		return current.Clamp()
	}

	tail := history[len(history)-p.StreakLength:]
	allCorrect := lo.EveryBy(tail, func(r model.AnswerRecord) bool { return r.Correct })
	allWrong := lo.EveryBy(tail, func(r model.AnswerRecord) bool { return !r.Correct })

	switch {
	case allCorrect:
		return (current + 1).Clamp()
	case allWrong:
		return (current - 1).Clamp()
	default:
		return current.Clamp()
	}
}

type topicStat struct {
	asked     int
	correct   int
	lastAsked int // Seq of the most recent record for the topic
}

func (t topicStat) accuracy() float64 {
	if t.asked == 0 {
		return 1
	}
	return float64(t.correct) / float64(t.asked)
}

// NextTopic picks the topic for the upcoming question: worst session
// accuracy first, ties broken by least-recently-asked, then by name so
// the choice is deterministic. Topics never asked count as accuracy 1.
// Returns "" when there is nothing to prefer.
func NextTopic(history []model.AnswerRecord, topics []string) string {
	if len(topics) == 0 {
		return ""
	}
	stats := topicStats(history)

	ranked := append([]string(nil), topics...)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := stats[ranked[i]], stats[ranked[j]]
		if a.accuracy() != b.accuracy() {
			return a.accuracy() < b.accuracy()
		}
		if a.lastAsked != b.lastAsked {
			return a.lastAsked < b.lastAsked
		}
		return ranked[i] < ranked[j]
	})

	if len(history) == 0 {
		// Nothing answered yet: no preference.
		return ""
	}
	return ranked[0]
}

// WeakTopics returns the topics whose session accuracy is below the
// threshold, sorted alphabetically.
func WeakTopics(history []model.AnswerRecord, threshold float64) []string {
	stats := topicStats(history)
	weak := lo.FilterMap(lo.Keys(stats), func(topic string, _ int) (string, bool) {
		return topic, stats[topic].accuracy() < threshold
	})
	sort.Strings(weak)
	return weak
}

// TopicAccuracy computes the session accuracy for one topic. Topics with
// no records count as 1.
func TopicAccuracy(history []model.AnswerRecord, topic string) float64 {
	return topicStats(history)[topic].accuracy()
}

func topicStats(history []model.AnswerRecord) map[string]topicStat {
	stats := make(map[string]topicStat)
	for _, r := range history {
		s := stats[r.Topic]
		s.asked++
		if r.Correct {
			s.correct++
		}
		if r.Seq > s.lastAsked {
			s.lastAsked = r.Seq
		}
		stats[r.Topic] = s
	}
	return stats
}
