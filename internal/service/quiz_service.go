package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"lifeline-backend-V1.0/internal/bank"
	"lifeline-backend-V1.0/internal/config"
	"lifeline-backend-V1.0/internal/llm"
	"lifeline-backend-V1.0/internal/model"
	"lifeline-backend-V1.0/internal/quiz"
	"lifeline-backend-V1.0/internal/repository"
	logger "lifeline-backend-V1.0/pkg/logging"
	"lifeline-backend-V1.0/utilities"
)

// SessionInfo is returned when a session is created.
type SessionInfo struct {
	SessionID   string `json:"session_id"`
	Token       string `json:"token"`
	AIMode      bool   `json:"ai_mode"`
	RoundLength int    `json:"round_length"`
}

// QuestionView is the client-facing projection of the current question.
// It never carries the correct choice index.
type QuestionView struct {
	SessionID   string   `json:"session_id"`
	Seq         int      `json:"seq"`
	Total       int      `json:"total"`
	Prompt      string   `json:"prompt"`
	Choices     []string `json:"choices"`
	Difficulty  string   `json:"difficulty"`
	Topic       string   `json:"topic"`
	AIGenerated bool     `json:"ai_generated"`
}

// AnswerResult bundles the feedback event with what comes next.
type AnswerResult struct {
	Feedback  model.Feedback `json:"feedback"`
	Completed bool           `json:"completed"`
	Next      *QuestionView  `json:"next,omitempty"`
}

// TextResult is an AI-derived text with its provenance: "ai" when the
// advisor produced it, "fallback" when builtin content stood in.
type TextResult struct {
	Text   string `json:"text"`
	Source string `json:"source"`
}

type QuizService interface {
	CreateSession(aiMode bool, previousSessionID string) (*SessionInfo, error)
	StartSession(id string) (*QuestionView, error)
	CurrentQuestion(id string) (*QuestionView, error)
	SubmitAnswer(id string, choice int) (*AnswerResult, error)
	Explain(ctx context.Context, id string) (*TextResult, error)
	Summary(id string) (*model.Summary, error)
	StudyPlan(ctx context.Context, id string) (*TextResult, error)
	StudyPlanPDF(ctx context.Context, id string) ([]byte, error)
	AdvisorAvailable() bool
}

type quizService struct {
	repo        repository.SessionRepository
	bank        *bank.Bank
	advisor     llm.Advisor
	bus         *utilities.EventBus
	params      quiz.Params
	callTimeout time.Duration
}

func NewQuizService(repo repository.SessionRepository, b *bank.Bank, advisor llm.Advisor, cfg *config.APIConfig, bus *utilities.EventBus) QuizService {
	params := quiz.Params{
		RoundLength:        cfg.Quiz.RoundLength,
		Baseline:           model.Difficulty(cfg.Quiz.BaselineDifficulty),
		StreakLength:       cfg.Quiz.StreakLength,
		HistoryWindow:      cfg.Quiz.HistoryWindow,
		WeakTopicThreshold: cfg.Quiz.WeakTopicThreshold,
	}
	timeout := time.Duration(cfg.THIRD_PARTY.CallTimeoutMS) * time.Millisecond
	if timeout <= 0 {
		timeout = 4 * time.Second
	}
	return &quizService{
		repo:        repo,
		bank:        b,
		advisor:     advisor,
		bus:         bus,
		params:      params,
		callTimeout: timeout,
	}
}

func (s *quizService) AdvisorAvailable() bool { return s.advisor.Available() }

// CreateSession builds a fresh session. A previous session ID may be
// given on retake; its weak topics seed the new round's personalization.
func (s *quizService) CreateSession(aiMode bool, previousSessionID string) (*SessionInfo, error) {
	var hints []string
	if previousSessionID != "" {
		_ = s.repo.With(previousSessionID, func(prev *quiz.Session) error {
			if sum, err := prev.Summary(); err == nil {
				hints = sum.WeakTopics
			}
			return nil
		})
	}

	session := quiz.NewSession(quiz.SessionConfig{
		ID:              uuid.NewString(),
		Bank:            s.bank,
		Generator:       s.advisor,
		Params:          s.params,
		AIMode:          aiMode && s.advisor.Available(),
		WeakTopicHints:  hints,
		GenerateTimeout: s.callTimeout,
		Notify:          s.publishNotice,
	})
	s.repo.Save(session)

	logger.Info("session %s created (ai_mode=%v, hints=%v)", session.ID(), session.AIMode(), hints)
	return &SessionInfo{
		SessionID:   session.ID(),
		AIMode:      session.AIMode(),
		RoundLength: session.RoundLength(),
	}, nil
}

func (s *quizService) StartSession(id string) (*QuestionView, error) {
	var view *QuestionView
	err := s.repo.With(id, func(session *quiz.Session) error {
		if err := session.Start(); err != nil {
			return err
		}
		view = s.questionView(session)
		return nil
	})
	return view, err
}

func (s *quizService) CurrentQuestion(id string) (*QuestionView, error) {
	var view *QuestionView
	err := s.repo.With(id, func(session *quiz.Session) error {
		if session.State() == quiz.NotStarted {
			return quiz.ErrSessionNotStarted
		}
		if session.State() == quiz.Completed {
			return quiz.ErrSessionCompleted
		}
		if session.PollAI() {
			logger.Debug("session %s: swapped in AI-generated question", id)
		}
		view = s.questionView(session)
		return nil
	})
	return view, err
}

func (s *quizService) SubmitAnswer(id string, choice int) (*AnswerResult, error) {
	var result *AnswerResult
	err := s.repo.With(id, func(session *quiz.Session) error {
		fb, err := session.SubmitAnswer(choice)
		if err != nil {
			return err
		}
		result = &AnswerResult{
			Feedback:  fb,
			Completed: session.State() == quiz.Completed,
		}
		if !result.Completed {
			result.Next = s.questionView(session)
		} else if sum, err := session.Summary(); err == nil {
			s.bus.Publish(utilities.EventSessionCompleted, sum)
		}
		return nil
	})
	return result, err
}

// Explain produces the AI explanation for the last incorrect answer. On
// advisor failure the question's builtin tip stands in and a notice is
// published; the session is never faulted.
func (s *quizService) Explain(ctx context.Context, id string) (*TextResult, error) {
	var question model.Question
	var chosen int
	err := s.repo.With(id, func(session *quiz.Session) error {
		q, choice, ok := session.LastAnswered()
		if !ok || choice == q.Answer {
			return quiz.ErrNoWrongAnswer
		}
		question, chosen = q, choice
		return nil
	})
	if err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()
	text, aiErr := s.advisor.Explain(callCtx, question, chosen)
	if aiErr != nil {
		s.noticeFromError("explain", aiErr)
		return &TextResult{
			Text:   fallbackExplanation(question),
			Source: "fallback",
		}, nil
	}
	return &TextResult{Text: text, Source: "ai"}, nil
}

func (s *quizService) Summary(id string) (*model.Summary, error) {
	var sum model.Summary
	err := s.repo.With(id, func(session *quiz.Session) error {
		var err error
		sum, err = session.Summary()
		return err
	})
	if err != nil {
		return nil, err
	}
	return &sum, nil
}

// StudyPlan generates the AI study plan for a completed session, at most
// once. With no weak topics a canned congratulation is used without
// calling the advisor. Advisor failure does not consume the single shot.
func (s *quizService) StudyPlan(ctx context.Context, id string) (*TextResult, error) {
	var sum model.Summary
	var existing string

	err := s.repo.With(id, func(session *quiz.Session) error {
		if plan, ok := session.StudyPlan(); ok {
			existing = plan
			return nil
		}
		var err error
		sum, err = session.Summary()
		return err
	})
	if err != nil {
		return nil, err
	}
	if existing != "" {
		return &TextResult{Text: existing, Source: "ai"}, nil
	}

	if len(sum.WeakTopics) == 0 {
		const plan = "You did great! No specific weak areas were identified. Keep up the good work!"
		err := s.repo.With(id, func(session *quiz.Session) error {
			return session.SetStudyPlan(plan)
		})
		if err != nil {
			return nil, err
		}
		return &TextResult{Text: plan, Source: "fallback"}, nil
	}

	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()
	plan, aiErr := s.advisor.StudyPlan(callCtx, sum)
	if aiErr != nil {
		s.noticeFromError("study_plan", aiErr)
		return &TextResult{
			Text:   "Study plan unavailable right now. Focus areas to review: " + strings.Join(sum.WeakTopics, ", "),
			Source: "fallback",
		}, nil
	}

	err = s.repo.With(id, func(session *quiz.Session) error {
		return session.SetStudyPlan(plan)
	})
	if err != nil {
		return nil, err
	}
	return &TextResult{Text: plan, Source: "ai"}, nil
}

func (s *quizService) questionView(session *quiz.Session) *QuestionView {
	q := session.CurrentQuestion()
	if q == nil {
		return nil
	}
	answeredCount, total := session.Progress()
	return &QuestionView{
		SessionID:   session.ID(),
		Seq:         answeredCount + 1,
		Total:       total,
		Prompt:      q.Prompt,
		Choices:     q.Choices,
		Difficulty:  q.Difficulty.String(),
		Topic:       q.Topic,
		AIGenerated: q.AIGenerated,
	}
}

func (s *quizService) publishNotice(n model.AdvisorNotice) {
	logger.Warn("advisor notice: %s: %s", n.Operation, n.Detail)
	s.bus.Publish(utilities.EventAdvisorNotice, n)
}

func (s *quizService) noticeFromError(op string, err error) {
	s.publishNotice(model.AdvisorNotice{
		Operation: op,
		Detail:    err.Error(),
		At:        time.Now(),
	})
}

func fallbackExplanation(q model.Question) string {
	if q.Tip != "" {
		return "The correct answer is: " + q.Choices[q.Answer] + ". " + q.Tip
	}
	return "The correct answer is: " + q.Choices[q.Answer] + "."
}

