package model

import "time"

// Difficulty is the ordered scale questions are tagged with.
type Difficulty int

const (
	Easy Difficulty = iota + 1
	Medium
	Hard
)

const (
	MinDifficulty = Easy
	MaxDifficulty = Hard
)

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	}
	return "unknown"
}

// Clamp returns d forced into the valid difficulty range.
func (d Difficulty) Clamp() Difficulty {
	if d < MinDifficulty {
		return MinDifficulty
	}
	if d > MaxDifficulty {
		return MaxDifficulty
	}
	return d
}

type Question struct {
	ID          string     `json:"id"`
	Prompt      string     `json:"prompt"`
	Choices     []string   `json:"choices"`
	Answer      int        `json:"-"` // index into Choices, never serialized to clients
	Difficulty  Difficulty `json:"difficulty"`
	Topic       string     `json:"topic"`
	Tip         string     `json:"tip"`
	AIGenerated bool       `json:"ai_generated,omitempty"`
}

// AnswerRecord captures one submitted answer. Immutable once appended
// to the session history.
type AnswerRecord struct {
	QuestionID string     `json:"question_id"`
	Topic      string     `json:"topic"`
	Difficulty Difficulty `json:"difficulty"`
	Choice     int        `json:"choice"`
	Correct    bool       `json:"correct"`
	Seq        int        `json:"seq"` // 1-based order within the session
	AnsweredAt time.Time  `json:"answered_at"`
}

// Feedback is emitted after every accepted answer for the presentation
// layer to render.
type Feedback struct {
	Correct             bool   `json:"correct"`
	Message             string `json:"message"`
	Tip                 string `json:"tip"`
	CorrectChoice       string `json:"correct_choice"`
	ExplanationEligible bool   `json:"explanation_eligible"`
}

// TopicAccuracy is one row of the per-topic breakdown in a summary.
type TopicAccuracy struct {
	Topic    string  `json:"topic"`
	Asked    int     `json:"asked"`
	Correct  int     `json:"correct"`
	Accuracy float64 `json:"accuracy"`
}

// Summary is available only once a session has completed.
type Summary struct {
	SessionID       string          `json:"session_id"`
	TotalQuestions  int             `json:"total_questions"`
	TotalCorrect    int             `json:"total_correct"`
	Accuracy        float64         `json:"accuracy"`
	FinalDifficulty Difficulty      `json:"final_difficulty"`
	Topics          []TopicAccuracy `json:"topics"`
	WeakTopics      []string        `json:"weak_topics"`
	Message         string          `json:"message"`
}

// GenerateRequest describes the question the AI advisor is asked to
// produce.
type GenerateRequest struct {
	Difficulty Difficulty `json:"difficulty"`
	WeakTopics []string   `json:"weak_topics"`
}

// AdvisorNotice is the non-blocking notification published when an AI
// call fails and the session fell back to builtin content.
type AdvisorNotice struct {
	Operation string    `json:"operation"`
	Detail    string    `json:"detail"`
	At        time.Time `json:"at"`
}
