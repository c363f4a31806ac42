package bank

import (
	"errors"
	"math/rand"
	"testing"

	"lifeline-backend-V1.0/internal/model"
)

func TestBuiltinBankPassesStartupCheck(t *testing.T) {
	b, err := New()
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	if b.Size() != 15 {
		t.Errorf("expected 15 builtin questions, got %d", b.Size())
	}
	if len(b.Topics()) == 0 {
		t.Error("expected at least one topic")
	}
}

func TestEmptyDifficultyFailsStartup(t *testing.T) {
	questions := []model.Question{
		{ID: "q1", Prompt: "p", Choices: []string{"a", "b"}, Difficulty: model.Easy, Topic: "t"},
		{ID: "q2", Prompt: "p", Choices: []string{"a", "b"}, Difficulty: model.Hard, Topic: "t"},
	}
	_, err := FromQuestions(questions)
	if !errors.Is(err, ErrEmptyBank) {
		t.Fatalf("expected ErrEmptyBank, got %v", err)
	}
}

func TestPickPrefersRequestedTopicAndDifficulty(t *testing.T) {
	b, err := New()
	if err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewSource(1))

	q := b.Pick(rng, model.Medium, "CPR", map[string]bool{})
	if q.Difficulty != model.Medium || q.Topic != "CPR" {
		t.Errorf("expected medium CPR question, got %s %q", q.Difficulty, q.Topic)
	}
}

func TestPickDropsTopicFilterWhenExhausted(t *testing.T) {
	b, err := New()
	if err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewSource(1))

	// Only one medium CPR question exists; once asked, the topic filter
	// must be dropped rather than failing.
	asked := map[string]bool{"fa-008": true}
	q := b.Pick(rng, model.Medium, "CPR", asked)
	if q.Difficulty != model.Medium {
		t.Errorf("expected a medium question, got %s", q.Difficulty)
	}
	if q.ID == "fa-008" {
		t.Error("asked question was repeated while alternatives remained")
	}
}

func TestPickWidensToNearestDifficulty(t *testing.T) {
	b, err := New()
	if err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewSource(1))

	// Exhaust every hard question; a hard request should fall back to
	// the nearest level with unused questions.
	asked := map[string]bool{}
	for _, q := range builtinQuestions() {
		if q.Difficulty == model.Hard {
			asked[q.ID] = true
		}
	}
	q := b.Pick(rng, model.Hard, "", asked)
	if q.Difficulty != model.Medium {
		t.Errorf("expected fallback to medium, got %s", q.Difficulty)
	}
}

func TestPickRepeatsOnlyWhenBankExhausted(t *testing.T) {
	b, err := New()
	if err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewSource(1))

	asked := map[string]bool{}
	for _, q := range builtinQuestions() {
		asked[q.ID] = true
	}
	q := b.Pick(rng, model.Medium, "", asked)
	if q.Prompt == "" {
		t.Fatal("exhausted bank returned an empty question")
	}
	if !asked[q.ID] {
		t.Error("expected a repeated question from the exhausted bank")
	}
}

func TestPickNeverRepeatsWithinSession(t *testing.T) {
	b, err := New()
	if err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewSource(7))

	asked := map[string]bool{}
	for i := 0; i < b.Size(); i++ {
		q := b.Pick(rng, model.Medium, "", asked)
		if asked[q.ID] {
			t.Fatalf("question %s repeated before bank exhaustion", q.ID)
		}
		asked[q.ID] = true
	}
}

func TestPickClampsDifficulty(t *testing.T) {
	b, err := New()
	if err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewSource(1))

	q := b.Pick(rng, model.Difficulty(99), "", map[string]bool{})
	if q.Difficulty != model.Hard {
		t.Errorf("expected clamp to hard, got %s", q.Difficulty)
	}
}
