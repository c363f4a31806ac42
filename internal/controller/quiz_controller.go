package controller

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"lifeline-backend-V1.0/internal/model"
	"lifeline-backend-V1.0/internal/quiz"
	"lifeline-backend-V1.0/internal/repository"
	"lifeline-backend-V1.0/internal/service"
	"lifeline-backend-V1.0/utilities"
)

type QuizController struct {
	quizService service.QuizService
	tokenSecret []byte
	tokenTTL    time.Duration
	notices     *noticeStore
}

func NewQuizController(quizService service.QuizService, tokenSecret []byte, tokenTTL time.Duration, bus *utilities.EventBus) *QuizController {
	qc := &QuizController{
		quizService: quizService,
		tokenSecret: tokenSecret,
		tokenTTL:    tokenTTL,
		notices:     newNoticeStore(50),
	}
	bus.Subscribe(utilities.EventAdvisorNotice, func(data interface{}) {
		if n, ok := data.(model.AdvisorNotice); ok {
			qc.notices.add(n)
		}
	})
	return qc
}

func (qc *QuizController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":            "ok",
		"advisor_available": qc.quizService.AdvisorAvailable(),
	})
}

func (qc *QuizController) CreateSession(c *gin.Context) {
	var req struct {
		AIMode            bool   `json:"ai_mode"`
		PreviousSessionID string `json:"previous_session_id"`
	}
	// An empty body means a plain non-AI session.
	_ = c.ShouldBindJSON(&req)

	info, err := qc.quizService.CreateSession(req.AIMode, req.PreviousSessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	token, err := utilities.GenerateSessionToken(info.SessionID, qc.tokenSecret, qc.tokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue session token"})
		return
	}
	info.Token = token
	c.JSON(http.StatusCreated, info)
}

func (qc *QuizController) StartSession(c *gin.Context) {
	view, err := qc.quizService.StartSession(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (qc *QuizController) GetQuestion(c *gin.Context) {
	view, err := qc.quizService.CurrentQuestion(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (qc *QuizController) SubmitAnswer(c *gin.Context) {
	var req struct {
		ChoiceIndex *int `json:"choice_index" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: choice_index is required"})
		return
	}

	result, err := qc.quizService.SubmitAnswer(c.Param("id"), *req.ChoiceIndex)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (qc *QuizController) GetExplanation(c *gin.Context) {
	result, err := qc.quizService.Explain(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (qc *QuizController) GetSummary(c *gin.Context) {
	sum, err := qc.quizService.Summary(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

func (qc *QuizController) CreateStudyPlan(c *gin.Context) {
	result, err := qc.quizService.StudyPlan(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (qc *QuizController) DownloadStudyPlanPDF(c *gin.Context) {
	data, err := qc.quizService.StudyPlanPDF(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="study_plan.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

// GetNotices drains pending non-blocking advisor notices. The
// presentation layer polls this to show a subtle hint, never a dialog.
func (qc *QuizController) GetNotices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"notices": qc.notices.drain()})
}

func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, repository.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, quiz.ErrInvalidChoice), errors.Is(err, quiz.ErrNoWrongAnswer):
		status = http.StatusBadRequest
	case errors.Is(err, quiz.ErrSessionCompleted),
		errors.Is(err, quiz.ErrSessionNotStarted),
		errors.Is(err, quiz.ErrAlreadyStarted),
		errors.Is(err, quiz.ErrNotCompleted),
		errors.Is(err, quiz.ErrPlanExists):
		status = http.StatusConflict
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// noticeStore keeps a bounded backlog of advisor notices until the
// presentation layer collects them.
type noticeStore struct {
	mu      sync.Mutex
	max     int
	pending []model.AdvisorNotice
}

func newNoticeStore(max int) *noticeStore {
	return &noticeStore{max: max}
}

func (ns *noticeStore) add(n model.AdvisorNotice) {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	ns.pending = append(ns.pending, n)
	if len(ns.pending) > ns.max {
		ns.pending = ns.pending[len(ns.pending)-ns.max:]
	}
}

func (ns *noticeStore) drain() []model.AdvisorNotice {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	out := ns.pending
	ns.pending = nil
	if out == nil {
		out = []model.AdvisorNotice{}
	}
	return out
}
