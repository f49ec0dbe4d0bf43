// Package sessionstore provides session.Repo implementations: an in-memory
// store for development and tests, and a bbolt-backed store so sessions
// survive restarts.
package sessionstore

import (
	"sync"

	"github.com/swiftship/courier-web/session"
)

// InMemory is a mutex-guarded map of session records.
type InMemory struct {
	mu       sync.RWMutex
	sessions map[string]session.Session
}

var _ session.Repo = (*InMemory)(nil)

func NewInMemory() *InMemory {
	return &InMemory{sessions: make(map[string]session.Session)}
}

func (r *InMemory) Upsert(sessionID string, s session.Session) error {
	if sessionID == "" {
		return session.NotFoundErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[sessionID] = s
	return nil
}

func (r *InMemory) Get(sessionID string) (session.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[sessionID]
	if !ok {
		return session.Session{}, session.NotFoundErr
	}
	return s, nil
}

func (r *InMemory) Delete(sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionID)
	return nil
}
