package controller

import (
	"github.com/gin-gonic/gin"

	"lifeline-backend-V1.0/utilities"
)

// RegisterRoutes registers all route groups and their endpoints.
func RegisterRoutes(r *gin.Engine, quizCtrl *QuizController, tokenSecret []byte) {
	r.GET("/health", quizCtrl.Health)
	r.GET("/notices", quizCtrl.GetNotices)
	r.POST("/sessions", quizCtrl.CreateSession)

	sessionRoutes := r.Group("/sessions/:id")
	sessionRoutes.Use(utilities.SessionAuthMiddleware(tokenSecret))
	{
		sessionRoutes.POST("/start", quizCtrl.StartSession)
		sessionRoutes.GET("/question", quizCtrl.GetQuestion)
		sessionRoutes.POST("/answers", quizCtrl.SubmitAnswer)
		sessionRoutes.GET("/explanation", quizCtrl.GetExplanation)
		sessionRoutes.GET("/summary", quizCtrl.GetSummary)
		sessionRoutes.POST("/study-plan", quizCtrl.CreateStudyPlan)
		sessionRoutes.GET("/study-plan.pdf", quizCtrl.DownloadStudyPlanPDF)
	}
}
