package repository

import (
	"errors"
	"sync"
	"testing"

	"lifeline-backend-V1.0/internal/bank"
	"lifeline-backend-V1.0/internal/quiz"
)

func newSession(t *testing.T, id string) *quiz.Session {
	t.Helper()
	b, err := bank.New()
	if err != nil {
		t.Fatalf("bank.New() failed: %v", err)
	}
	return quiz.NewSession(quiz.SessionConfig{ID: id, Bank: b, Seed: 1})
}

func TestSaveAndWith(t *testing.T) {
	repo := NewSessionRepository()
	repo.Save(newSession(t, "s1"))

	var gotID string
	err := repo.With("s1", func(s *quiz.Session) error {
		gotID = s.ID()
		return nil
	})
	if err != nil {
		t.Fatalf("With failed: %v", err)
	}
	if gotID != "s1" {
		t.Errorf("session ID = %q, want s1", gotID)
	}
	if repo.Count() != 1 {
		t.Errorf("Count = %d, want 1", repo.Count())
	}
}

func TestWithUnknownSession(t *testing.T) {
	repo := NewSessionRepository()
	err := repo.With("missing", func(*quiz.Session) error { return nil })
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestWithPropagatesCallbackError(t *testing.T) {
	repo := NewSessionRepository()
	repo.Save(newSession(t, "s1"))

	sentinel := errors.New("callback failed")
	if err := repo.With("s1", func(*quiz.Session) error { return sentinel }); !errors.Is(err, sentinel) {
		t.Fatalf("expected callback error, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	repo := NewSessionRepository()
	repo.Save(newSession(t, "s1"))
	repo.Delete("s1")

	if repo.Count() != 0 {
		t.Errorf("Count after delete = %d", repo.Count())
	}
	if err := repo.With("s1", func(*quiz.Session) error { return nil }); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after delete, got %v", err)
	}
}

func TestConcurrentAccessToOneSession(t *testing.T) {
	repo := NewSessionRepository()
	s := newSession(t, "s1")
	repo.Save(s)

	if err := repo.With("s1", func(s *quiz.Session) error { return s.Start() }); err != nil {
		t.Fatal(err)
	}

	// Concurrent submits against one session must serialize: exactly the
	// round length of answers is accepted across all goroutines.
	var wg sync.WaitGroup
	var mu sync.Mutex
	accepted := 0
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 5; i++ {
				_ = repo.With("s1", func(s *quiz.Session) error {
					if _, err := s.SubmitAnswer(0); err == nil {
						mu.Lock()
						accepted++
						mu.Unlock()
					}
					return nil
				})
			}
		}()
	}
	wg.Wait()

	if accepted != s.RoundLength() {
		t.Errorf("accepted %d answers, want %d", accepted, s.RoundLength())
	}
}
