package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"lifeline-backend-V1.0/internal/model"
	logger "lifeline-backend-V1.0/pkg/logging"
	"lifeline-backend-V1.0/utilities"
)

// StudyPlanPDF renders the session's study plan as a downloadable PDF.
// It reuses StudyPlan, so the at-most-once generation rule holds.
func (s *quizService) StudyPlanPDF(ctx context.Context, id string) ([]byte, error) {
	plan, err := s.StudyPlan(ctx, id)
	if err != nil {
		return nil, err
	}
	sum, err := s.Summary(id)
	if err != nil {
		return nil, err
	}
	return BuildStudyPlanPDF(*sum, plan.Text)
}

// BuildStudyPlanPDF lays out the round summary and study plan on A4.
func BuildStudyPlanPDF(sum model.Summary, plan string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "First-Aid Study Plan")
	pdf.Ln(14)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Score: %d/%d (%.0f%%)", sum.TotalCorrect, sum.TotalQuestions, sum.Accuracy*100))
	pdf.Ln(8)
	pdf.Cell(0, 8, "Final difficulty: "+sum.FinalDifficulty.String())
	pdf.Ln(8)
	if len(sum.WeakTopics) > 0 {
		pdf.MultiCell(0, 8, "Focus areas: "+strings.Join(sum.WeakTopics, ", "), "", "L", false)
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 11)
	for _, line := range strings.Split(plan, "\n") {
		pdf.MultiCell(0, 6, line, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// InitSessionEventListeners wires the engine's completion events to the
// log, mirroring how the presentation layer consumes the same bus.
func InitSessionEventListeners(bus *utilities.EventBus) {
	bus.Subscribe(utilities.EventSessionCompleted, func(data interface{}) {
		sum, ok := data.(model.Summary)
		if !ok {
			return
		}
		logger.Info("session %s completed: %d/%d correct, final difficulty %s",
			sum.SessionID, sum.TotalCorrect, sum.TotalQuestions, sum.FinalDifficulty)
	})
}
