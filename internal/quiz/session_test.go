package quiz

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"lifeline-backend-V1.0/internal/bank"
	"lifeline-backend-V1.0/internal/model"
)

type fakeGenerator struct {
	mu        sync.Mutex
	available bool
	question  model.Question
	err       error
	release   chan struct{} // when non-nil, GenerateQuestion blocks on it
	calls     int
}

func (f *fakeGenerator) Available() bool { return f.available }

func (f *fakeGenerator) GenerateQuestion(ctx context.Context, req model.GenerateRequest) (model.Question, error) {
	f.mu.Lock()
	f.calls++
	release := f.release
	q, err := f.question, f.err
	f.mu.Unlock()

	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return model.Question{}, ctx.Err()
		}
	}
	return q, err
}

func (f *fakeGenerator) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func testBank(t *testing.T) *bank.Bank {
	t.Helper()
	b, err := bank.New()
	if err != nil {
		t.Fatalf("bank.New() failed: %v", err)
	}
	return b
}

func newTestSession(t *testing.T, cfg SessionConfig) *Session {
	t.Helper()
	if cfg.Bank == nil {
		cfg.Bank = testBank(t)
	}
	if cfg.ID == "" {
		cfg.ID = "test-session"
	}
	if cfg.Seed == 0 {
		cfg.Seed = 42
	}
	return NewSession(cfg)
}

// answerCurrent submits a correct or incorrect answer for whatever
// question is on screen.
func answerCurrent(t *testing.T, s *Session, correct bool) model.Feedback {
	t.Helper()
	q := s.CurrentQuestion()
	if q == nil {
		t.Fatal("no current question")
	}
	choice := q.Answer
	if !correct {
		choice = (q.Answer + 1) % len(q.Choices)
	}
	fb, err := s.SubmitAnswer(choice)
	if err != nil {
		t.Fatalf("SubmitAnswer failed: %v", err)
	}
	return fb
}

func TestSessionLifecycle(t *testing.T) {
	s := newTestSession(t, SessionConfig{})

	if s.State() != NotStarted {
		t.Fatalf("new session state = %s", s.State())
	}
	if _, err := s.SubmitAnswer(0); !errors.Is(err, ErrSessionNotStarted) {
		t.Fatalf("submit before start: expected ErrSessionNotStarted, got %v", err)
	}

	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if s.State() != InProgress {
		t.Fatalf("state after start = %s", s.State())
	}
	if s.CurrentQuestion() == nil {
		t.Fatal("no current question after start")
	}
	if s.Difficulty() != model.Medium {
		t.Errorf("first question difficulty = %s, want baseline medium", s.Difficulty())
	}
	if err := s.Start(); !errors.Is(err, ErrAlreadyStarted) {
		t.Fatalf("second Start: expected ErrAlreadyStarted, got %v", err)
	}
}

func TestRecordCountMatchesCompletion(t *testing.T) {
	s := newTestSession(t, SessionConfig{})
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < s.RoundLength(); i++ {
		if len(s.Records()) >= s.RoundLength() {
			t.Fatalf("record count reached round length before completion at answer %d", i)
		}
		answerCurrent(t, s, i%2 == 0)
	}

	if s.State() != Completed {
		t.Fatalf("state after full round = %s", s.State())
	}
	if got := len(s.Records()); got != s.RoundLength() {
		t.Fatalf("completed session has %d records, want %d", got, s.RoundLength())
	}
	if s.CurrentQuestion() != nil {
		t.Error("completed session still has a current question")
	}
}

func TestSubmitAfterCompletedFails(t *testing.T) {
	s := newTestSession(t, SessionConfig{})
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < s.RoundLength(); i++ {
		answerCurrent(t, s, true)
	}

	if _, err := s.SubmitAnswer(0); !errors.Is(err, ErrSessionCompleted) {
		t.Fatalf("expected ErrSessionCompleted, got %v", err)
	}
	if got := len(s.Records()); got != s.RoundLength() {
		t.Fatalf("rejected submit changed records: %d", got)
	}
}

func TestInvalidChoiceLeavesStateUnchanged(t *testing.T) {
	s := newTestSession(t, SessionConfig{})
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}

	before := s.CurrentQuestion()
	for _, choice := range []int{-1, len(before.Choices), 99} {
		if _, err := s.SubmitAnswer(choice); !errors.Is(err, ErrInvalidChoice) {
			t.Fatalf("choice %d: expected ErrInvalidChoice, got %v", choice, err)
		}
	}

	if len(s.Records()) != 0 {
		t.Error("invalid submits were recorded")
	}
	after := s.CurrentQuestion()
	if before.ID != after.ID {
		t.Error("invalid submit changed the current question")
	}
}

func TestFeedbackMessages(t *testing.T) {
	s := newTestSession(t, SessionConfig{})
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}

	q := s.CurrentQuestion()
	fb := answerCurrent(t, s, true)
	if !fb.Correct {
		t.Fatal("correct answer marked incorrect")
	}
	if !strings.HasPrefix(fb.Message, "Correct! ") || !strings.Contains(fb.Message, q.Tip) {
		t.Errorf("correct feedback = %q", fb.Message)
	}
	if fb.ExplanationEligible {
		t.Error("correct answer should not offer an explanation")
	}

	q = s.CurrentQuestion()
	fb = answerCurrent(t, s, false)
	if fb.Correct {
		t.Fatal("incorrect answer marked correct")
	}
	want := "Incorrect. The correct answer is: " + q.Choices[q.Answer]
	if fb.Message != want {
		t.Errorf("incorrect feedback = %q, want %q", fb.Message, want)
	}
	if fb.ExplanationEligible {
		t.Error("explanation offered with no advisor configured")
	}
}

func TestExplanationEligibleOnlyWithLiveAdvisor(t *testing.T) {
	gen := &fakeGenerator{available: true}
	s := newTestSession(t, SessionConfig{Generator: gen})
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}

	fb := answerCurrent(t, s, false)
	if !fb.ExplanationEligible {
		t.Error("wrong answer with live advisor should be explanation-eligible")
	}
}

// Difficulty path for the answer sequence [correct, correct, correct,
// incorrect, incorrect] under the two-in-a-row rule with baseline medium:
// questions run Medium, Medium, Hard, Hard, Hard, then drop to Medium.
func TestDifficultyPathScenario(t *testing.T) {
	s := newTestSession(t, SessionConfig{})
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}

	answers := []bool{true, true, true, false, false}
	wantPath := []model.Difficulty{model.Medium, model.Medium, model.Hard, model.Hard, model.Hard, model.Medium}

	var gotPath []model.Difficulty
	for _, correct := range answers {
		gotPath = append(gotPath, s.CurrentQuestion().Difficulty)
		answerCurrent(t, s, correct)
	}
	gotPath = append(gotPath, s.CurrentQuestion().Difficulty)

	for i := range wantPath {
		if gotPath[i] != wantPath[i] {
			t.Fatalf("difficulty path %v, want %v", gotPath, wantPath)
		}
	}
}

func TestSummaryAfterFullRound(t *testing.T) {
	s := newTestSession(t, SessionConfig{})
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}

	if _, err := s.Summary(); !errors.Is(err, ErrNotCompleted) {
		t.Fatalf("summary before completion: expected ErrNotCompleted, got %v", err)
	}

	answers := []bool{true, true, true, false, false, true, true, true, true, true}
	for _, correct := range answers {
		answerCurrent(t, s, correct)
	}

	sum, err := s.Summary()
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if sum.TotalQuestions != 10 {
		t.Errorf("TotalQuestions = %d, want 10", sum.TotalQuestions)
	}
	if sum.TotalCorrect != 8 {
		t.Errorf("TotalCorrect = %d, want 8", sum.TotalCorrect)
	}
	if sum.Accuracy != 0.8 {
		t.Errorf("Accuracy = %v, want 0.8", sum.Accuracy)
	}
	if sum.FinalDifficulty != model.Hard {
		t.Errorf("FinalDifficulty = %s, want hard", sum.FinalDifficulty)
	}
	if sum.Message != "Excellent! You have strong first-aid knowledge!" {
		t.Errorf("Message = %q", sum.Message)
	}

	var asked int
	for _, ta := range sum.Topics {
		asked += ta.Asked
	}
	if asked != 10 {
		t.Errorf("per-topic asked counts sum to %d, want 10", asked)
	}
}

func TestFullRoundWithoutAdvisor(t *testing.T) {
	// AI mode requested but the generator reports unavailable: the round
	// still completes entirely on bank content.
	gen := &fakeGenerator{available: false}
	s := newTestSession(t, SessionConfig{Generator: gen, AIMode: true})
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < s.RoundLength(); i++ {
		q := s.CurrentQuestion()
		if q.Prompt == "" {
			t.Fatalf("question %d has an empty prompt", i+1)
		}
		if q.AIGenerated {
			t.Fatalf("question %d claims to be AI-generated", i+1)
		}
		answerCurrent(t, s, false)
	}

	if s.State() != Completed {
		t.Fatalf("state = %s, want completed", s.State())
	}
	if _, err := s.Summary(); err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if gen.callCount() != 0 {
		t.Errorf("unavailable generator was called %d times", gen.callCount())
	}
}

func TestFullRoundWithFailingGenerator(t *testing.T) {
	var notices []model.AdvisorNotice
	var mu sync.Mutex
	gen := &fakeGenerator{available: true, err: context.DeadlineExceeded}

	s := newTestSession(t, SessionConfig{
		Generator:      gen,
		AIMode:         true,
		WeakTopicHints: []string{"CPR"},
		Notify: func(n model.AdvisorNotice) {
			mu.Lock()
			notices = append(notices, n)
			mu.Unlock()
		},
	})
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < s.RoundLength(); i++ {
		s.PollAI()
		q := s.CurrentQuestion()
		if q == nil || q.Prompt == "" {
			t.Fatalf("question %d missing or empty", i+1)
		}
		if q.AIGenerated {
			t.Fatalf("question %d is AI-generated despite generator failures", i+1)
		}
		answerCurrent(t, s, false)
	}

	if s.State() != Completed {
		t.Fatalf("state = %s, want completed", s.State())
	}
}

func TestPollAISwapsInGeneratedQuestion(t *testing.T) {
	aiQ := model.Question{
		ID:         "ai-1",
		Prompt:     "AI scenario question",
		Choices:    []string{"a", "b", "c", "d"},
		Answer:     1,
		Difficulty: model.Medium,
		Topic:      "ai_generated",
		Tip:        "ai tip",
	}
	gen := &fakeGenerator{available: true, question: aiQ}

	// Hints make the very first draw dispatch a generation.
	s := newTestSession(t, SessionConfig{
		Generator:      gen,
		AIMode:         true,
		WeakTopicHints: []string{"CPR"},
	})
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}

	swapped := false
	for i := 0; i < 200; i++ {
		if s.PollAI() {
			swapped = true
			break
		}
		time.Sleep(time.Millisecond)
	}
	if !swapped {
		t.Fatal("AI question never swapped in")
	}

	q := s.CurrentQuestion()
	if !q.AIGenerated || q.Prompt != aiQ.Prompt {
		t.Fatalf("current question = %+v, want the generated one", q)
	}

	// Answering the swapped-in question works like any other.
	fb, err := s.SubmitAnswer(aiQ.Answer)
	if err != nil {
		t.Fatalf("SubmitAnswer on AI question failed: %v", err)
	}
	if !fb.Correct {
		t.Error("correct AI answer marked incorrect")
	}
}

func TestStaleGeneratedQuestionIsDropped(t *testing.T) {
	release := make(chan struct{})
	aiQ := model.Question{
		ID:      "ai-stale",
		Prompt:  "late AI question",
		Choices: []string{"a", "b"},
		Answer:  0,
	}
	gen := &fakeGenerator{available: true, question: aiQ, release: release}

	s := newTestSession(t, SessionConfig{
		Generator:       gen,
		AIMode:          true,
		WeakTopicHints:  []string{"CPR"},
		GenerateTimeout: time.Second,
	})
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}

	// Answer before the generation completes, then let it finish.
	answerCurrent(t, s, true)
	close(release)
	time.Sleep(20 * time.Millisecond)

	if s.PollAI() {
		t.Fatal("stale AI question was swapped in")
	}
	if q := s.CurrentQuestion(); q.AIGenerated {
		t.Fatal("current question replaced by a stale AI result")
	}
}

func TestStudyPlanAtMostOnce(t *testing.T) {
	s := newTestSession(t, SessionConfig{})
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}

	if err := s.SetStudyPlan("early"); !errors.Is(err, ErrNotCompleted) {
		t.Fatalf("expected ErrNotCompleted, got %v", err)
	}

	for i := 0; i < s.RoundLength(); i++ {
		answerCurrent(t, s, false)
	}

	if err := s.SetStudyPlan("plan A"); err != nil {
		t.Fatalf("SetStudyPlan failed: %v", err)
	}
	if err := s.SetStudyPlan("plan B"); !errors.Is(err, ErrPlanExists) {
		t.Fatalf("expected ErrPlanExists, got %v", err)
	}

	plan, ok := s.StudyPlan()
	if !ok || plan != "plan A" {
		t.Fatalf("StudyPlan() = %q, %v", plan, ok)
	}
}

func TestLastAnswered(t *testing.T) {
	s := newTestSession(t, SessionConfig{})
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}

	if _, _, ok := s.LastAnswered(); ok {
		t.Fatal("LastAnswered set before any answer")
	}

	q := s.CurrentQuestion()
	wrong := (q.Answer + 1) % len(q.Choices)
	if _, err := s.SubmitAnswer(wrong); err != nil {
		t.Fatal(err)
	}

	gotQ, gotChoice, ok := s.LastAnswered()
	if !ok || gotQ.ID != q.ID || gotChoice != wrong {
		t.Fatalf("LastAnswered() = %s, %d, %v; want %s, %d", gotQ.ID, gotChoice, ok, q.ID, wrong)
	}
}
