package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Dteebaba/Survey-Agent/dataset"
	"github.com/Dteebaba/Survey-Agent/engine"
	"github.com/Dteebaba/Survey-Agent/plan"
	"github.com/Dteebaba/Survey-Agent/profile"
)

// Session holds one uploaded dataset and the latest analysis over it.
type Session struct {
	ID       string
	FileName string
	Uploaded time.Time

	Dataset *dataset.Dataset
	Profile *profile.Profile
	Summary string

	Plan   *plan.Plan
	Result *engine.ExecutionResult
}

// SessionStore is an in-memory session map. Uploads are kept for the life
// of the process; there is no persistence.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessionStore creates an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*Session)}
}

// Create registers a new session for an uploaded dataset.
func (s *SessionStore) Create(fileName string, ds *dataset.Dataset, prof *profile.Profile, summary string) *Session {
	sess := &Session{
		ID:       uuid.NewString(),
		FileName: fileName,
		Uploaded: time.Now(),
		Dataset:  ds,
		Profile:  prof,
		Summary:  summary,
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return sess
}

// Get returns the session by ID.
func (s *SessionStore) Get(id string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

// SetResult records the latest plan and execution result for a session.
func (s *SessionStore) SetResult(id string, p *plan.Plan, result *engine.ExecutionResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[id]; ok {
		sess.Plan = p
		sess.Result = result
	}
}

// Result returns the latest plan and execution result for a session. Plan
// and Result are the only session fields written after Create, so readers
// go through here rather than touching the fields directly.
func (s *SessionStore) Result(id string) (*plan.Plan, *engine.ExecutionResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok || sess.Result == nil {
		return nil, nil, false
	}
	return sess.Plan, sess.Result, true
}
