package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"lifeline-backend-V1.0/internal/config"
	"lifeline-backend-V1.0/internal/model"
	logger "lifeline-backend-V1.0/pkg/logging"
)

// LLMClient is the narrow contract every text-generation backend
// implements.
type LLMClient interface {
	Name() string
	GenerateResponse(ctx context.Context, prompt string) (string, error)
}

// Advisor is the AI boundary the quiz engine depends on. Every call is an
// optional enhancement: all failures are AIErrors and the quiz plays on
// without them.
type Advisor interface {
	Available() bool
	GenerateQuestion(ctx context.Context, req model.GenerateRequest) (model.Question, error)
	Explain(ctx context.Context, q model.Question, chosen int) (string, error)
	StudyPlan(ctx context.Context, summary model.Summary) (string, error)
}

type advisor struct {
	client  LLMClient
	limiter *rate.Limiter
}

// NewAdvisor wraps a backend client with rate limiting, one retry, and
// the quiz prompt/parsing layer.
func NewAdvisor(client LLMClient, ratePerMinute float64) Advisor {
	if ratePerMinute <= 0 {
		ratePerMinute = 30
	}
	return &advisor{
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(ratePerMinute/60), 1),
	}
}

// New builds the advisor the configuration asks for. A missing API key or
// unknown provider yields the no-op advisor: the quiz runs fully without
// AI, and every call reports Unavailable synchronously.
func New(tp config.ThirdPartyConfig, apiKey string) Advisor {
	switch strings.ToLower(tp.Provider) {
	case "gemini":
		if apiKey == "" {
			logger.Warn("GEMINI_API_KEY not set; AI features disabled, quiz runs in regular mode")
			return NewNoop()
		}
		client, err := NewGeminiClient(apiKey, tp.GeminiModel)
		if err != nil {
			logger.Error("failed to initialize Gemini client: %v", err)
			return NewNoop()
		}
		logger.Info("AI advisor initialized: gemini (%s)", tp.GeminiModel)
		return NewAdvisor(client, tp.RatePerMinute)
	case "ollama":
		if tp.OllamaURL == "" {
			logger.Warn("OLLAMA_URL not set; AI features disabled")
			return NewNoop()
		}
		logger.Info("AI advisor initialized: ollama (%s)", tp.OllamaURL)
		return NewAdvisor(NewOllamaClient(tp.OllamaURL, ""), tp.RatePerMinute)
	case "openai":
		if apiKey == "" {
			logger.Warn("OPENAI_API_KEY not set; AI features disabled")
			return NewNoop()
		}
		client, err := NewOpenAIClient(apiKey, tp.OpenAIModel)
		if err != nil {
			logger.Error("failed to initialize OpenAI client: %v", err)
			return NewNoop()
		}
		logger.Info("AI advisor initialized: openai (%s)", tp.OpenAIModel)
		return NewAdvisor(client, tp.RatePerMinute)
	default:
		logger.Warn("no AI provider configured; quiz runs in regular mode")
		return NewNoop()
	}
}

func (a *advisor) Available() bool { return true }

// call runs one prompt through the backend with rate limiting and a
// single retry. Calls are idempotent-safe to retry once; the second
// failure is final.
func (a *advisor) call(ctx context.Context, op, prompt string) (string, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return "", classify(op, err)
	}

	text, err := a.client.GenerateResponse(ctx, prompt)
	if err == nil {
		return text, nil
	}
	if ctx.Err() != nil {
		return "", classify(op, ctx.Err())
	}

	logger.Warn("%s via %s failed, retrying once: %v", op, a.client.Name(), err)
	text, err = a.client.GenerateResponse(ctx, prompt)
	if err != nil {
		return "", classify(op, err)
	}
	return text, nil
}

type generatedQuestion struct {
	Question   string   `json:"question"`
	Options    []string `json:"options"`
	Answer     int      `json:"answer"`
	Tip        string   `json:"tip"`
	Difficulty int      `json:"difficulty"`
}

func (a *advisor) GenerateQuestion(ctx context.Context, req model.GenerateRequest) (model.Question, error) {
	const op = "generate_question"

	text, err := a.call(ctx, op, generateQuestionPrompt(req))
	if err != nil {
		return model.Question{}, err
	}

	raw, ok := extractJSONObject(text)
	if !ok {
		return model.Question{}, malformed(op, fmt.Errorf("no JSON object in response: %.80q", text))
	}
	var gq generatedQuestion
	if err := json.Unmarshal([]byte(raw), &gq); err != nil {
		return model.Question{}, malformed(op, err)
	}
	if gq.Question == "" || len(gq.Options) < 2 || gq.Answer < 0 || gq.Answer >= len(gq.Options) {
		return model.Question{}, malformed(op, fmt.Errorf("incomplete question payload"))
	}

	difficulty := model.Difficulty(gq.Difficulty).Clamp()
	if gq.Difficulty == 0 {
		difficulty = req.Difficulty.Clamp()
	}
	return model.Question{
		ID:          "ai-" + uuid.NewString(),
		Prompt:      gq.Question,
		Choices:     gq.Options,
		Answer:      gq.Answer,
		Difficulty:  difficulty,
		Topic:       "ai_generated",
		Tip:         gq.Tip,
		AIGenerated: true,
	}, nil
}

func (a *advisor) Explain(ctx context.Context, q model.Question, chosen int) (string, error) {
	const op = "explain"

	if chosen < 0 || chosen >= len(q.Choices) {
		return "", malformed(op, fmt.Errorf("chosen index %d out of range", chosen))
	}
	text, err := a.call(ctx, op, explainPrompt(q, chosen))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func (a *advisor) StudyPlan(ctx context.Context, summary model.Summary) (string, error) {
	const op = "study_plan"

	text, err := a.call(ctx, op, studyPlanPrompt(summary))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// noopAdvisor is used when no backend is configured. Every call reports
// Unavailable synchronously, so callers handle absence and failure the
// same way.
type noopAdvisor struct{}

func NewNoop() Advisor { return noopAdvisor{} }

func (noopAdvisor) Available() bool { return false }

func (noopAdvisor) GenerateQuestion(context.Context, model.GenerateRequest) (model.Question, error) {
	return model.Question{}, unavailable("generate_question")
}

func (noopAdvisor) Explain(context.Context, model.Question, int) (string, error) {
	return "", unavailable("explain")
}

func (noopAdvisor) StudyPlan(context.Context, model.Summary) (string, error) {
	return "", unavailable("study_plan")
}

// extractJSONObject pulls the outermost JSON object out of a model
// response that may be wrapped in markdown fences or prose.
func extractJSONObject(text string) (string, bool) {
	if strings.Contains(text, "```json") {
		parts := strings.SplitN(text, "```json", 2)
		text = strings.SplitN(parts[1], "```", 2)[0]
	}
	text = strings.TrimSpace(text)
	if json.Valid([]byte(text)) && strings.HasPrefix(text, "{") {
		return text, true
	}
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return "", false
	}
	candidate := text[start : end+1]
	if !json.Valid([]byte(candidate)) {
		return "", false
	}
	return candidate, true
}
