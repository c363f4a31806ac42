package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"lifeline-backend-V1.0/internal/bank"
	"lifeline-backend-V1.0/internal/config"
	"lifeline-backend-V1.0/internal/llm"
	"lifeline-backend-V1.0/internal/repository"
	"lifeline-backend-V1.0/internal/service"
	"lifeline-backend-V1.0/internal/telegram"
	logger "lifeline-backend-V1.0/pkg/logging"
	"lifeline-backend-V1.0/utilities"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, reading keys from the environment")
	}

	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		fmt.Println("TELEGRAM_BOT_TOKEN environment variable is required")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig("config.xml")
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger.Init("logs", false)

	questionBank, err := bank.New()
	if err != nil {
		logger.Error("question bank failed startup check: %v", err)
		os.Exit(1)
	}

	advisor := llm.New(cfg.THIRD_PARTY, os.Getenv("GEMINI_API_KEY"))
	quizService := service.NewQuizService(repository.NewSessionRepository(), questionBank, advisor, cfg, utilities.GlobalEventBus)

	bot, err := telegram.NewBot(token, quizService)
	if err != nil {
		logger.Error("failed to create bot: %v", err)
		os.Exit(1)
	}

	logger.Info("bot is starting...")
	bot.Start()
}
