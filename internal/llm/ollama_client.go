package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	logger "lifeline-backend-V1.0/pkg/logging"
)

// OllamaClient talks to a local Ollama instance over its generate API.
type OllamaClient struct {
	ollamaURL string
	model     string
	client    *http.Client
}

func NewOllamaClient(url, model string) *OllamaClient {
	if model == "" {
		model = "mistral"
	}
	return &OllamaClient{
		ollamaURL: url,
		model:     model,
		client: &http.Client{
			Timeout: 600 * time.Second, // per-call deadlines come from ctx
		},
	}
}

func (o *OllamaClient) Name() string { return "ollama" }

func (o *OllamaClient) GenerateResponse(ctx context.Context, prompt string) (string, error) {
	requestBody, _ := json.Marshal(map[string]interface{}{
		"model":  o.model,
		"prompt": prompt,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.ollamaURL, bytes.NewBuffer(requestBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	fullBody := string(bodyBytes)

	// Ollama streams the answer as newline-separated JSON objects unless
	// streaming is disabled; aggregate them when that happens.
	if strings.Contains(fullBody, "\n") {
		return AggregateStreamedResponse(fullBody), nil
	}

	var result map[string]interface{}
	if err := json.Unmarshal(bodyBytes, &result); err != nil {
		return "", err
	}
	if responseText, ok := result["response"].(string); ok {
		return responseText, nil
	}

	return "", errors.New("invalid response from Ollama")
}

type llmResponseChunk struct {
	Model     string `json:"model"`
	CreatedAt string `json:"created_at"`
	Response  string `json:"response"`
	Done      bool   `json:"done"`
}

// AggregateStreamedResponse concatenates the "response" fields of a
// newline-separated stream of JSON chunks into one string.
func AggregateStreamedResponse(body string) string {
	lines := strings.Split(body, "\n")
	var builder strings.Builder
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		var chunk llmResponseChunk
		if err := json.Unmarshal([]byte(trimmed), &chunk); err != nil {
			logger.Warn("skipping unparseable stream chunk: %v", err)
			continue
		}
		builder.WriteString(chunk.Response)
	}
	return builder.String()
}
