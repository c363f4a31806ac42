package llm

import (
	"context"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// OpenAIClient is the langchaingo-backed OpenAI backend.
type OpenAIClient struct {
	llm *openai.LLM
}

func NewOpenAIClient(apiKey, model string) (*OpenAIClient, error) {
	if model == "" {
		model = "gpt-4o-mini"
	}
	llm, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithModel(model),
	)
	if err != nil {
		return nil, err
	}
	return &OpenAIClient{llm: llm}, nil
}

func (o *OpenAIClient) Name() string { return "openai" }

func (o *OpenAIClient) GenerateResponse(ctx context.Context, prompt string) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, o.llm, prompt, llms.WithTemperature(0.7))
}
