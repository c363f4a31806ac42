package llm

import (
	"fmt"
	"strings"

	"lifeline-backend-V1.0/internal/model"
)

func generateQuestionPrompt(req model.GenerateRequest) string {
	focus := "general first aid"
	if len(req.WeakTopics) > 0 {
		focus = strings.Join(req.WeakTopics, ", ")
	}
	return fmt.Sprintf(`Create a practical, scenario-based first-aid quiz question.
Difficulty level: %d (1=basic, 2=intermediate, 3=advanced).
Focus on: %s.

Format your response as a single, clean JSON object. Do not include any other text or markdown.
The JSON object must be in this exact format:
{
   "question": "Your question text here.",
   "options": ["Option A", "Option B", "Option C", "Option D"],
   "answer": 0,
   "tip": "A brief, helpful tip related to the correct answer.",
   "difficulty": %d
}
`, int(req.Difficulty), focus, int(req.Difficulty))
}

func explainPrompt(q model.Question, chosen int) string {
	return fmt.Sprintf(`You are a calm and encouraging first-aid instructor. A student answered a quiz question incorrectly.

Question: %q
Student's incorrect choice: %q
The correct answer was: %q

Please provide a clear, educational explanation in 2-3 sentences. Structure your response to:
1. Explain why the student's answer is incorrect or less ideal.
2. Explain why the correct answer is the best course of action.
3. Provide a simple, practical tip to help remember this for the future.

Keep your tone positive and focus on learning.`, q.Prompt, q.Choices[chosen], q.Choices[q.Answer])
}

func studyPlanPrompt(summary model.Summary) string {
	weak := "General improvement needed"
	if len(summary.WeakTopics) > 0 {
		weak = strings.Join(summary.WeakTopics, ", ")
	}
	return fmt.Sprintf(`Create a concise, personalized first-aid study plan for a student who scored %d/%d on a quiz.

Their identified weak areas are: %s.

Provide the plan with these sections, using markdown for clarity:
- **Top 3 Priority Topics:** List the three most important topics to study.
- **Practice Activities:** Suggest 2-3 practical, simple activities they can do.
- **Key Concepts to Review:** Mention 2-3 core principles they should focus on.

Keep the tone encouraging and the advice actionable.`, summary.TotalCorrect, summary.TotalQuestions, weak)
}
