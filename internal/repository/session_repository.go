package repository

import (
	"errors"
	"sync"

	"lifeline-backend-V1.0/internal/quiz"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionRepository holds live quiz sessions. Sessions are not persisted;
// a round lives and dies in memory.
//
// quiz.Session is owned by one caller at a time, so access goes through
// With, which runs the callback under the session's lock.
type SessionRepository interface {
	Save(session *quiz.Session)
	With(id string, fn func(*quiz.Session) error) error
	Delete(id string)
	Count() int
}

type sessionEntry struct {
	mu      sync.Mutex
	session *quiz.Session
}

type inMemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*sessionEntry
}

func NewSessionRepository() SessionRepository {
	return &inMemorySessionRepository{
		sessions: make(map[string]*sessionEntry),
	}
}

func (r *inMemorySessionRepository) Save(session *quiz.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID()] = &sessionEntry{session: session}
}

func (r *inMemorySessionRepository) With(id string, fn func(*quiz.Session) error) error {
	r.mu.RLock()
	entry, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return ErrSessionNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return fn(entry.session)
}

func (r *inMemorySessionRepository) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

func (r *inMemorySessionRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
