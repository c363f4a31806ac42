package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"lifeline-backend-V1.0/internal/service"
	logger "lifeline-backend-V1.0/pkg/logging"
)

// Bot is a thin Telegram front-end over the same quiz engine the HTTP
// API serves. One session per chat.
type Bot struct {
	api         *tgbotapi.BotAPI
	quizService service.QuizService
	sessions    map[int64]string // chat ID -> session ID
}

func NewBot(token string, quizService service.QuizService) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &Bot{
		api:         api,
		quizService: quizService,
		sessions:    make(map[int64]string),
	}, nil
}

func (b *Bot) Start() {
	logger.Info("authorised on account: %s", b.api.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		if update.Message != nil {
			switch update.Message.Command() {
			case "start":
				b.sendMainMenu(update.Message.Chat.ID)
			case "quiz":
				b.startQuiz(update.Message.Chat.ID, false)
			case "aiquiz":
				b.startQuiz(update.Message.Chat.ID, true)
			default:
				b.sendMessage(update.Message.Chat.ID, "Unknown command. Try /start")
			}
		}
		if update.CallbackQuery != nil {
			b.handleCallback(update.CallbackQuery)
		}
	}
}

func (b *Bot) handleCallback(callback *tgbotapi.CallbackQuery) {
	chatID := callback.Message.Chat.ID
	data := callback.Data

	callbackConfig := tgbotapi.NewCallback(callback.ID, "")
	if _, err := b.api.Request(callbackConfig); err != nil {
		logger.Warn("error answering callback: %v", err)
	}

	switch {
	case data == "start_quiz":
		b.startQuiz(chatID, false)
	case data == "start_ai_quiz":
		b.startQuiz(chatID, true)
	case strings.HasPrefix(data, "ans_"):
		b.handleQuizAnswer(chatID, data)
	case data == "study_plan":
		b.sendStudyPlan(chatID)
	case data == "back_to_menu":
		b.sendMainMenu(chatID)
	default:
		b.sendMessage(chatID, "Unknown action")
	}
}

func (b *Bot) sendMainMenu(chatID int64) {
	msg := tgbotapi.NewMessage(chatID, "🚑 *First-Aid Quiz*\nLearn life-saving skills, one question at a time.")
	msg.ParseMode = "Markdown"

	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Start Quiz", "start_quiz"),
		),
	}
	if b.quizService.AdvisorAvailable() {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🤖 AI Adaptive Mode", "start_ai_quiz"),
		))
	}
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	if _, err := b.api.Send(msg); err != nil {
		logger.Warn("error sending menu: %v", err)
	}
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		logger.Warn("error sending message: %v", err)
	}
}

func (b *Bot) startQuiz(chatID int64, aiMode bool) {
	previous := b.sessions[chatID]
	info, err := b.quizService.CreateSession(aiMode, previous)
	if err != nil {
		b.sendMessage(chatID, "Could not create a quiz right now, try again later.")
		return
	}
	b.sessions[chatID] = info.SessionID

	view, err := b.quizService.StartSession(info.SessionID)
	if err != nil {
		b.sendMessage(chatID, "Could not start the quiz, try again later.")
		return
	}
	b.sendQuestion(chatID, view)
}

func (b *Bot) sendQuestion(chatID int64, view *service.QuestionView) {
	text := fmt.Sprintf("❓ *Question %d/%d* (%s)\n\n%s", view.Seq, view.Total, view.Difficulty, view.Prompt)
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"

	var rows [][]tgbotapi.InlineKeyboardButton
	for i, choice := range view.Choices {
		callbackData := fmt.Sprintf("ans_%d_%d", view.Seq, i)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(choice, callbackData),
		))
	}
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)

	if _, err := b.api.Send(msg); err != nil {
		logger.Warn("error sending question: %v", err)
	}
}

func (b *Bot) handleQuizAnswer(chatID int64, data string) {
	sessionID, ok := b.sessions[chatID]
	if !ok {
		b.sendMainMenu(chatID)
		return
	}

	parts := strings.Split(data, "_")
	if len(parts) != 3 {
		return
	}
	seq, _ := strconv.Atoi(parts[1])
	choice, _ := strconv.Atoi(parts[2])

	// Ignore taps on an already-answered question.
	if current, err := b.quizService.CurrentQuestion(sessionID); err == nil && current.Seq != seq {
		return
	}

	result, err := b.quizService.SubmitAnswer(sessionID, choice)
	if err != nil {
		b.sendMessage(chatID, "That answer could not be accepted.")
		return
	}

	icon := "✅"
	if !result.Feedback.Correct {
		icon = "❌"
	}
	b.sendMessage(chatID, fmt.Sprintf("%s %s", icon, result.Feedback.Message))

	if result.Completed {
		b.sendSummary(chatID, sessionID)
		return
	}
	b.sendQuestion(chatID, result.Next)
}

func (b *Bot) sendSummary(chatID int64, sessionID string) {
	sum, err := b.quizService.Summary(sessionID)
	if err != nil {
		b.sendMessage(chatID, "Could not load your results.")
		return
	}

	text := fmt.Sprintf("🏁 *Quiz Complete!*\nScore: %d/%d\n%s",
		sum.TotalCorrect, sum.TotalQuestions, sum.Message)
	if len(sum.WeakTopics) > 0 {
		text += "\nFocus areas: " + strings.Join(sum.WeakTopics, ", ")
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"

	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Retake Quiz", "start_quiz"),
		),
	}
	if b.quizService.AdvisorAvailable() {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📚 Get AI Study Plan", "study_plan"),
		))
	}
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	if _, err := b.api.Send(msg); err != nil {
		logger.Warn("error sending summary: %v", err)
	}
}

func (b *Bot) sendStudyPlan(chatID int64) {
	sessionID, ok := b.sessions[chatID]
	if !ok {
		b.sendMainMenu(chatID)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	plan, err := b.quizService.StudyPlan(ctx, sessionID)
	if err != nil {
		b.sendMessage(chatID, "Could not build a study plan right now.")
		return
	}
	b.sendMessage(chatID, "📚 Your Study Plan\n\n"+plan.Text)
}
