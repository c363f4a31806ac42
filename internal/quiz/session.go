package quiz

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"lifeline-backend-V1.0/internal/bank"
	"lifeline-backend-V1.0/internal/model"
)

// State is the session lifecycle phase.
type State int

const (
	NotStarted State = iota
	InProgress
	Completed
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case InProgress:
		return "in_progress"
	case Completed:
		return "completed"
	}
	return "unknown"
}

// QuestionGenerator is the slice of the AI advisor the session itself
// needs. Generation failures never fail the session; the bank question
// already on screen simply stays.
type QuestionGenerator interface {
	Available() bool
	GenerateQuestion(ctx context.Context, req model.GenerateRequest) (model.Question, error)
}

// SessionConfig carries everything a session needs at construction time.
type SessionConfig struct {
	ID        string
	Bank      *bank.Bank
	Generator QuestionGenerator // nil disables AI personalization
	Params    Params
	AIMode    bool

	// WeakTopicHints seeds topic preference before any answers exist,
	// e.g. the weak topics of the player's previous round.
	WeakTopicHints []string

	// Seed fixes the random source; 0 means time-based.
	Seed int64

	// GenerateTimeout bounds one AI question-generation call.
	GenerateTimeout time.Duration

	// Notify receives non-blocking advisor notices. May be nil.
	Notify func(model.AdvisorNotice)
}

// Session is the quiz round state machine. It is owned by exactly one
// caller at a time; the repository serializes access for the HTTP layer.
// AI results cross goroutines only through the mailbox.
type Session struct {
	id     string
	bank   *bank.Bank
	gen    QuestionGenerator
	params Params
	aiMode bool
	hints  []string
	rng    *rand.Rand
	notify func(model.AdvisorNotice)

	genTimeout time.Duration
	mailbox    Mailbox[model.Question]

	state      State
	difficulty model.Difficulty
	current    *model.Question
	records    []model.AnswerRecord
	asked      map[string]bool

	lastFeedback *model.Feedback
	lastAnswered *answered

	studyPlan    string
	studyPlanSet bool
}

type answered struct {
	question model.Question
	choice   int
}

// NewSession builds a session in the NotStarted state.
func NewSession(cfg SessionConfig) *Session {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if cfg.Params.RoundLength <= 0 {
		cfg.Params = DefaultParams()
	}
	if cfg.GenerateTimeout <= 0 {
		cfg.GenerateTimeout = 4 * time.Second
	}
	return &Session{
		id:         cfg.ID,
		bank:       cfg.Bank,
		gen:        cfg.Generator,
		params:     cfg.Params,
		aiMode:     cfg.AIMode,
		hints:      cfg.WeakTopicHints,
		rng:        rand.New(rand.NewSource(seed)),
		notify:     cfg.Notify,
		genTimeout: cfg.GenerateTimeout,
		state:      NotStarted,
		asked:      make(map[string]bool),
	}
}

func (s *Session) ID() string                   { return s.id }
func (s *Session) State() State                 { return s.state }
func (s *Session) Difficulty() model.Difficulty { return s.difficulty }
func (s *Session) RoundLength() int             { return s.params.RoundLength }
func (s *Session) AIMode() bool                 { return s.aiMode }

// Records returns a copy of the answer history.
func (s *Session) Records() []model.AnswerRecord {
	return append([]model.AnswerRecord(nil), s.records...)
}

// Progress reports answered count and round length.
func (s *Session) Progress() (answered, total int) {
	return len(s.records), s.params.RoundLength
}

// Start moves NotStarted → InProgress and draws the first question at the
// baseline difficulty.
func (s *Session) Start() error {
	if s.state != NotStarted {
		return ErrAlreadyStarted
	}
	s.state = InProgress
	s.difficulty = s.params.Baseline.Clamp()
	s.draw()
	return nil
}

// CurrentQuestion returns the question awaiting an answer, or nil.
func (s *Session) CurrentQuestion() *model.Question {
	if s.current == nil {
		return nil
	}
	q := *s.current
	q.Choices = append([]string(nil), s.current.Choices...)
	return &q
}

// LastFeedback returns the feedback for the most recent accepted answer.
func (s *Session) LastFeedback() *model.Feedback {
	if s.lastFeedback == nil {
		return nil
	}
	fb := *s.lastFeedback
	return &fb
}

// LastAnswered returns the most recently answered question and the chosen
// index, for AI explanations.
func (s *Session) LastAnswered() (model.Question, int, bool) {
	if s.lastAnswered == nil {
		return model.Question{}, 0, false
	}
	return s.lastAnswered.question, s.lastAnswered.choice, true
}

// SubmitAnswer validates and records an answer, emits feedback, and
// either advances to the next question or completes the round.
func (s *Session) SubmitAnswer(choice int) (model.Feedback, error) {
	switch s.state {
	case NotStarted:
		return model.Feedback{}, ErrSessionNotStarted
	case Completed:
		return model.Feedback{}, ErrSessionCompleted
	}

	q := *s.current
	if choice < 0 || choice >= len(q.Choices) {
		return model.Feedback{}, fmt.Errorf("%w: got %d, question has %d choices", ErrInvalidChoice, choice, len(q.Choices))
	}

	correct := choice == q.Answer
	s.records = append(s.records, model.AnswerRecord{
		QuestionID: q.ID,
		Topic:      q.Topic,
		Difficulty: q.Difficulty,
		Choice:     choice,
		Correct:    correct,
		Seq:        len(s.records) + 1,
		AnsweredAt: time.Now(),
	})
	s.lastAnswered = &answered{question: q, choice: choice}

	fb := model.Feedback{
		Correct:             correct,
		Tip:                 q.Tip,
		CorrectChoice:       q.Choices[q.Answer],
		ExplanationEligible: !correct && s.gen != nil && s.gen.Available(),
	}
	if correct {
		fb.Message = fmt.Sprintf("Correct! %s", q.Tip)
	} else {
		fb.Message = fmt.Sprintf("Incorrect. The correct answer is: %s", q.Choices[q.Answer])
	}
	s.lastFeedback = &fb

	if len(s.records) >= s.params.RoundLength {
		s.state = Completed
		s.current = nil
		s.mailbox.Clear()
		return fb, nil
	}

	s.advance()
	return fb, nil
}

// draw selects the next question from the bank and, when the advisor is
// live and the chosen topic looks weak, dispatches an AI generation for
// the same slot.
func (s *Session) draw() {
	topic := s.preferredTopic()
	q := s.bank.Pick(s.rng, s.difficulty, topic, s.asked)
	s.current = &q
	s.asked[q.ID] = true

	if s.shouldPersonalize(topic) {
		s.dispatchGenerate(len(s.records)+1, topic)
	}
}

func (s *Session) advance() {
	s.difficulty = NextDifficulty(s.records, s.difficulty, s.params)
	s.draw()
}

func (s *Session) preferredTopic() string {
	if topic := NextTopic(s.records, s.bank.Topics()); topic != "" {
		return topic
	}
	if len(s.hints) > 0 {
		return s.hints[s.rng.Intn(len(s.hints))]
	}
	return ""
}

func (s *Session) shouldPersonalize(topic string) bool {
	if !s.aiMode || s.gen == nil || !s.gen.Available() {
		return false
	}
	if len(s.records) == 0 {
		// First question: personalize only when carrying hints from a
		// previous round.
		return len(s.hints) > 0
	}
	return topic != "" && TopicAccuracy(s.records, topic) < s.params.WeakTopicThreshold
}

func (s *Session) dispatchGenerate(seq int, topic string) {
	req := model.GenerateRequest{
		Difficulty: s.difficulty,
		WeakTopics: s.weakTopicsWithHints(),
	}
	if topic != "" {
		req.WeakTopics = append([]string{topic}, req.WeakTopics...)
	}
	gen := s.gen
	timeout := s.genTimeout
	mb := &s.mailbox
	notify := s.notify

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		q, err := gen.GenerateQuestion(ctx, req)
		if err != nil {
			if notify != nil {
				notify(model.AdvisorNotice{
					Operation: "generate_question",
					Detail:    err.Error(),
					At:        time.Now(),
				})
			}
			return
		}
		mb.Put(seq, q)
	}()
}

func (s *Session) weakTopicsWithHints() []string {
	weak := WeakTopics(s.records, s.params.WeakTopicThreshold)
	for _, h := range s.hints {
		found := false
		for _, w := range weak {
			if w == h {
				found = true
				break
			}
		}
		if !found {
			weak = append(weak, h)
		}
	}
	return weak
}

// PollAI swaps in an AI-generated question for the current slot when one
// has arrived in time. Results for past slots, or arriving after
// completion, are dropped. Returns true when the current question changed.
func (s *Session) PollAI() bool {
	if s.state != InProgress {
		s.mailbox.Clear()
		return false
	}
	seq := len(s.records) + 1
	q, ok := s.mailbox.Take(seq)
	if !ok {
		return false
	}
	if q.Prompt == "" || len(q.Choices) < 2 || q.Answer < 0 || q.Answer >= len(q.Choices) {
		return false
	}
	q.AIGenerated = true
	s.current = &q
	s.asked[q.ID] = true
	return true
}

// Summary is available only once the round has completed.
func (s *Session) Summary() (model.Summary, error) {
	if s.state != Completed {
		return model.Summary{}, ErrNotCompleted
	}

	total := len(s.records)
	correct := 0
	for _, r := range s.records {
		if r.Correct {
			correct++
		}
	}
	accuracy := float64(correct) / float64(total)

	stats := topicStats(s.records)
	topics := make([]model.TopicAccuracy, 0, len(stats))
	for topic, st := range stats {
		topics = append(topics, model.TopicAccuracy{
			Topic:    topic,
			Asked:    st.asked,
			Correct:  st.correct,
			Accuracy: st.accuracy(),
		})
	}
	sortTopicAccuracy(topics)

	return model.Summary{
		SessionID:       s.id,
		TotalQuestions:  total,
		TotalCorrect:    correct,
		Accuracy:        accuracy,
		FinalDifficulty: s.difficulty,
		Topics:          topics,
		WeakTopics:      WeakTopics(s.records, s.params.WeakTopicThreshold),
		Message:         performanceMessage(accuracy),
	}, nil
}

// SetStudyPlan attaches the AI study plan. At most one per session, only
// after completion.
func (s *Session) SetStudyPlan(plan string) error {
	if s.state != Completed {
		return ErrNotCompleted
	}
	if s.studyPlanSet {
		return ErrPlanExists
	}
	s.studyPlan = plan
	s.studyPlanSet = true
	return nil
}

// StudyPlan returns the attached plan, if any.
func (s *Session) StudyPlan() (string, bool) {
	return s.studyPlan, s.studyPlanSet
}

func performanceMessage(accuracy float64) string {
	switch {
	case accuracy >= 0.8:
		return "Excellent! You have strong first-aid knowledge!"
	case accuracy >= 0.5:
		return "Good job! Review your weak areas for improvement."
	default:
		return "Keep practicing! Consider the AI study plan."
	}
}

func sortTopicAccuracy(topics []model.TopicAccuracy) {
	sort.SliceStable(topics, func(i, j int) bool {
		if topics[i].Accuracy != topics[j].Accuracy {
			return topics[i].Accuracy < topics[j].Accuracy
		}
		return topics[i].Topic < topics[j].Topic
	})
}
