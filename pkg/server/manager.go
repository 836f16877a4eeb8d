package server

import (
	"context"
	"log/slog"
	"sync"
)

// SessionManager tracks the open sessions.
type SessionManager struct {
	sessions map[string]*Session
	mu       sync.RWMutex

	// limit is the session limit; 0 means none.
	limit int

	logger *slog.Logger
}

// NewSessionManager creates a manager that allows at most limit sessions.
func NewSessionManager(limit int, logger *slog.Logger) *SessionManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionManager{
		sessions: make(map[string]*Session),
		limit:    limit,
		logger:   logger.With("component", "session_manager"),
	}
}

func (sm *SessionManager) add(s *Session) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sm.limit > 0 && len(sm.sessions) >= sm.limit {
		return ErrMaxSessionsReached
	}
	sm.sessions[s.ID] = s
	return nil
}

func (sm *SessionManager) remove(id string) {
	sm.mu.Lock()
	delete(sm.sessions, id)
	sm.mu.Unlock()
}

// Get returns the session with id, or nil.
func (sm *SessionManager) Get(id string) *Session {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.sessions[id]
}

// Count returns the number of open sessions.
func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}

// Full reports whether the session limit is reached.
func (sm *SessionManager) Full() bool {
	if sm.limit <= 0 {
		return false
	}
	return sm.Count() >= sm.limit
}

// Shutdown closes every session and waits for their loops to exit, or for
// ctx to be done.
func (sm *SessionManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	sessions := make([]*Session, 0, len(sm.sessions))
	for _, s := range sm.sessions {
		sessions = append(sessions, s)
	}
	sm.mu.Unlock()

	var wg sync.WaitGroup
	for _, session := range sessions {
		wg.Add(1)
		go func(s *Session) {
			defer wg.Done()
			s.Close()
			s.Wait()
		}(session)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		sm.logger.Info("session manager shutdown", "closed_sessions", len(sessions))
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
