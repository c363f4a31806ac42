package main

import (
	"fmt"
	"os"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"lifeline-backend-V1.0/internal/bank"
	"lifeline-backend-V1.0/internal/config"
	"lifeline-backend-V1.0/internal/controller"
	"lifeline-backend-V1.0/internal/llm"
	"lifeline-backend-V1.0/internal/repository"
	"lifeline-backend-V1.0/internal/service"
	logger "lifeline-backend-V1.0/pkg/logging"
	"lifeline-backend-V1.0/pkg/middleware"
	"lifeline-backend-V1.0/utilities"
)

func main() {
	printStartUpBanner()

	// Optional .env holds the AI API key; its absence is fine.
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, reading keys from the environment")
	}

	// Load XML configuration from file (defaults apply when missing).
	cfg, err := config.LoadConfig("config.xml")
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init("logs", cfg.RequestDump)

	// Builtin content check is the only fatal startup error.
	questionBank, err := bank.New()
	if err != nil {
		logger.Error("question bank failed startup check: %v", err)
		os.Exit(1)
	}
	logger.Info("question bank loaded: %d questions, %d topics", questionBank.Size(), len(questionBank.Topics()))

	advisor := llm.New(cfg.THIRD_PARTY, advisorAPIKey(cfg.THIRD_PARTY.Provider))

	sessionRepo := repository.NewSessionRepository()
	quizService := service.NewQuizService(sessionRepo, questionBank, advisor, cfg, utilities.GlobalEventBus)
	service.InitSessionEventListeners(utilities.GlobalEventBus)

	tokenSecret := []byte(cfg.Auth.TokenSecret)
	tokenTTL := time.Duration(cfg.Auth.SessionTimeoutMin) * time.Minute
	quizCtrl := controller.NewQuizController(quizService, tokenSecret, tokenTTL, utilities.GlobalEventBus)

	// Initialize Gin router.
	r := gin.Default()

	if cfg.RequestDump {
		r.Use(middleware.RequestDumpMiddleware())
	}

	// CORS configuration.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	controller.RegisterRoutes(r, quizCtrl, tokenSecret)

	// Start server on the host and port specified in the XML config.
	addr := fmt.Sprintf("%s:%d", cfg.Context.Host, cfg.Context.Port)
	logger.Info("listening on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Error("server stopped: %v", err)
		os.Exit(1)
	}
}

// advisorAPIKey picks the environment secret matching the configured
// provider. Ollama is keyless.
func advisorAPIKey(provider string) string {
	switch provider {
	case "openai":
		return os.Getenv("OPENAI_API_KEY")
	case "ollama":
		return ""
	default:
		return os.Getenv("GEMINI_API_KEY")
	}
}

func printStartUpBanner() {
	myFigure := figure.NewFigure("LIFELINE", "", true)
	myFigure.Print()

	fmt.Println("======================================================")
	fmt.Printf("LIFELINE QUIZ API (v%s)\n\n", "1.0.0-FirstAid")
}
