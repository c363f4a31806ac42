package config

import (
	"encoding/xml"
	"io"
	"os"
	"sync"
)

var (
	cfg     *APIConfig
	loadErr error
	once    sync.Once
)

// APIConfig represents the root element.
type APIConfig struct {
	XMLName     xml.Name             `xml:"API"`
	RequestDump bool                 `xml:"REQUEST_DUMP,attr"`
	Context     ContextConfig        `xml:"CONTEXT"`
	Auth        AuthenticationConfig `xml:"AUTHENTICATION"`
	Quiz        QuizConfig           `xml:"QUIZ"`
	THIRD_PARTY ThirdPartyConfig     `xml:"THIRD_PARTY"`
}

// ContextConfig holds basic server settings.
type ContextConfig struct {
	Port     int    `xml:"PORT"`
	Host     string `xml:"HOST"`
	Path     string `xml:"PATH"`
	TimeZone string `xml:"TIME_ZONE"`
}

// AuthenticationConfig holds session-token settings.
type AuthenticationConfig struct {
	TokenSecret       string `xml:"TOKEN_SECRET"`
	SessionTimeoutMin int    `xml:"SESSION_TIMEOUT"`
}

// QuizConfig holds the adaptive-quiz tuning knobs. The exact thresholds
// are deliberately configuration, not constants.
type QuizConfig struct {
	RoundLength        int     `xml:"ROUND_LENGTH"`
	BaselineDifficulty int     `xml:"BASELINE_DIFFICULTY"`
	StreakLength       int     `xml:"STREAK_LENGTH"`
	HistoryWindow      int     `xml:"HISTORY_WINDOW"`
	WeakTopicThreshold float64 `xml:"WEAK_TOPIC_THRESHOLD"`
}

// ThirdPartyConfig holds settings for the generative-AI backends. API
// keys themselves come from the environment, not from this file.
type ThirdPartyConfig struct {
	Provider      string  `xml:"AI_PROVIDER"` // gemini | ollama | openai | ""
	GeminiModel   string  `xml:"GEMINI_MODEL"`
	OllamaURL     string  `xml:"OLLAMA_URL"`
	OpenAIModel   string  `xml:"OPENAI_MODEL"`
	CallTimeoutMS int     `xml:"AI_CALL_TIMEOUT_MS"`
	RatePerMinute float64 `xml:"AI_RATE_PER_MINUTE"`
}

// LoadConfig loads and parses the XML configuration from the given file.
// A missing file is not fatal: the quiz runs on defaults.
func LoadConfig(xmlPath string) (*APIConfig, error) {
	once.Do(func() {
		data, err := os.ReadFile(xmlPath)
		if err != nil {
			if os.IsNotExist(err) {
				cfg = DefaultConfig()
				return
			}
			loadErr = err
			return
		}

		newCfg := DefaultConfig()
		if err := xml.Unmarshal(data, newCfg); err != nil {
			loadErr = err
			return
		}
		cfg = newCfg
	})

	if loadErr != nil {
		return nil, loadErr
	}
	if cfg == nil {
		return nil, io.ErrUnexpectedEOF
	}
	return cfg, nil
}

// GetConfig returns the loaded configuration.
func GetConfig() *APIConfig {
	return cfg
}

// DefaultConfig returns the configuration used when no config.xml is
// present. Values mirror the builtin game defaults.
func DefaultConfig() *APIConfig {
	return &APIConfig{
		Context: ContextConfig{
			Port: 8080,
			Host: "0.0.0.0",
		},
		Auth: AuthenticationConfig{
			TokenSecret:       "lifeline-dev-secret",
			SessionTimeoutMin: 120,
		},
		Quiz: QuizConfig{
			RoundLength:        10,
			BaselineDifficulty: 2,
			StreakLength:       2,
			HistoryWindow:      3,
			WeakTopicThreshold: 0.5,
		},
		THIRD_PARTY: ThirdPartyConfig{
			Provider:      "gemini",
			GeminiModel:   "gemini-1.5-flash",
			OllamaURL:     "http://localhost:11434/api/generate",
			OpenAIModel:   "gpt-4o-mini",
			CallTimeoutMS: 4000,
			RatePerMinute: 30,
		},
	}
}
